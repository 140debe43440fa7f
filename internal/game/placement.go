package game

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidShape     = errors.New("invalid ship shape")
	ErrFleetComposition = errors.New("wrong fleet composition")
	ErrOverlap          = errors.New("ships overlap")
	ErrAdjacent         = errors.New("ships touch")
)

// PlacementError explains why a proposed fleet was rejected.
type PlacementError struct {
	Reason error
	Detail string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%v: %s", e.Reason, e.Detail)
}

func (e *PlacementError) Unwrap() error {
	return e.Reason
}

func reject(reason error, format string, args ...any) error {
	return &PlacementError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ValidateFleet checks a proposed fleet, one group of cell indexes per ship, and builds
// the Fleet when every rule holds.
func ValidateFleet(groups [][]int) (*Fleet, error) {
	ships := make([]*Ship, 0, len(groups))
	owner := make(map[Cell]int, FleetCells)
	remaining := FleetRule

	for i, group := range groups {
		cells, err := shipCells(group)
		if err != nil {
			return nil, err
		}

		next, ok := remaining.Take(len(cells))
		if !ok {
			return nil, reject(ErrFleetComposition, "unexpected ship of length %d", len(cells))
		}
		remaining = next

		for _, c := range cells {
			if _, taken := owner[c]; taken {
				return nil, reject(ErrOverlap, "cell %s is used by more than one ship", c)
			}
			owner[c] = i
		}
		ships = append(ships, newShip(cells))
	}

	if !remaining.Empty() {
		return nil, reject(ErrFleetComposition, "%d ship(s) missing", remaining.Ships())
	}

	for c, i := range owner {
		for _, n := range c.Neighbors8() {
			if j, ok := owner[n]; ok && j != i {
				return nil, reject(ErrAdjacent, "ship at %s touches ship at %s", c, n)
			}
		}
	}

	return newFleet(ships), nil
}

// shipCells converts one group to cells and checks that it is a straight contiguous run.
func shipCells(group []int) ([]Cell, error) {
	if len(group) == 0 {
		return nil, reject(ErrInvalidShape, "empty ship")
	}
	cells := make([]Cell, len(group))
	for i, v := range group {
		c := Cell(v)
		if !c.Valid() {
			return nil, reject(ErrInvalidShape, "cell %d is off the board", v)
		}
		cells[i] = c
	}
	slices.Sort(cells)
	if len(slices.Compact(slices.Clone(cells))) != len(cells) {
		return nil, reject(ErrInvalidShape, "ship repeats a cell")
	}
	if len(cells) == 1 {
		return cells, nil
	}

	firstRow, firstCol := cells[0].RowCol()
	horizontal, vertical := true, true
	for i, c := range cells {
		row, col := c.RowCol()
		if row != firstRow || col != firstCol+i {
			horizontal = false
		}
		if col != firstCol || row != firstRow+i {
			vertical = false
		}
	}
	if !horizontal && !vertical {
		return nil, reject(ErrInvalidShape, "ship starting at %s is not a straight line", cells[0])
	}
	return cells, nil
}
