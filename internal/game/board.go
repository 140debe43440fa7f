package game

var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (c Cell) Valid() bool {
	return c >= 0 && c < CellCount
}

func (c Cell) RowCol() (row, col int) {
	return int(c) / BoardSize, int(c) % BoardSize
}

func CellAt(row, col int) (Cell, bool) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return 0, false
	}
	return Cell(row*BoardSize + col), true
}

// Neighbors8 returns the in-bounds cells around c in row-major order.
func (c Cell) Neighbors8() []Cell {
	row, col := c.RowCol()
	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		if n, ok := CellAt(row+d[0], col+d[1]); ok {
			out = append(out, n)
		}
	}
	return out
}
