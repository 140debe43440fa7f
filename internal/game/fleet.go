package game

import (
	"slices"
)

// Ship is a straight run of cells. Its shape is fixed once placed; only hits grow.
type Ship struct {
	cells []Cell
	hits  map[Cell]struct{}
}

func newShip(cells []Cell) *Ship {
	sorted := slices.Clone(cells)
	slices.Sort(sorted)
	return &Ship{
		cells: sorted,
		hits:  make(map[Cell]struct{}, len(sorted)),
	}
}

func (s *Ship) Cells() []Cell {
	return slices.Clone(s.cells)
}

func (s *Ship) Len() int {
	return len(s.cells)
}

func (s *Ship) Contains(c Cell) bool {
	_, found := slices.BinarySearch(s.cells, c)
	return found
}

func (s *Ship) Sunk() bool {
	return len(s.hits) == len(s.cells)
}

// hit records a hit on c. It reports false if c is not part of the ship.
func (s *Ship) hit(c Cell) bool {
	if !s.Contains(c) {
		return false
	}
	s.hits[c] = struct{}{}
	return true
}

// Fleet is one participant's complete set of ships.
type Fleet struct {
	ships []*Ship
	index map[Cell]*Ship
}

func newFleet(ships []*Ship) *Fleet {
	f := &Fleet{
		ships: ships,
		index: make(map[Cell]*Ship, FleetCells),
	}
	for _, s := range ships {
		for _, c := range s.cells {
			f.index[c] = s
		}
	}
	return f
}

func (f *Fleet) Ships() []*Ship {
	return slices.Clone(f.ships)
}

func (f *Fleet) ShipAt(c Cell) (*Ship, bool) {
	s, ok := f.index[c]
	return s, ok
}

func (f *Fleet) Occupied(c Cell) bool {
	_, ok := f.index[c]
	return ok
}

func (f *Fleet) AllSunk() bool {
	for _, s := range f.ships {
		if !s.Sunk() {
			return false
		}
	}
	return true
}

// Remaining returns the number of ships not yet sunk.
func (f *Fleet) Remaining() int {
	n := 0
	for _, s := range f.ships {
		if !s.Sunk() {
			n++
		}
	}
	return n
}

// Halo returns the cells around s that hold no ship of this fleet, sorted ascending.
func (f *Fleet) Halo(s *Ship) []Cell {
	seen := make(map[Cell]struct{})
	var out []Cell
	for _, c := range s.cells {
		for _, n := range c.Neighbors8() {
			if f.Occupied(n) {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
