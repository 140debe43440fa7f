package game

import (
	"fmt"
)

const (
	BoardSize = 10
	CellCount = BoardSize * BoardSize
)

// Cell is a linear board index: row = index / 10, column = index % 10.
type Cell int

type Seat int

const (
	Seat0 Seat = 0
	Seat1 Seat = 1
)

func (s Seat) Valid() bool {
	return s == Seat0 || s == Seat1
}

func (s Seat) Opponent() Seat {
	return 1 - s
}

// Number is the 1-based player number used in status texts.
func (s Seat) Number() int {
	return int(s) + 1
}

type Phase int

const (
	PhaseAwaitingParticipants Phase = iota
	PhasePlacingFleets
	PhaseInProgress
	PhaseConcluded
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingParticipants:
		return "AwaitingParticipants"
	case PhasePlacingFleets:
		return "PlacingFleets"
	case PhaseInProgress:
		return "InProgress"
	case PhaseConcluded:
		return "Concluded"
	default:
		return "Unknown"
	}
}

// FleetRule is the required number of ships per length.
var FleetRule = Quota{4: 1, 3: 2, 2: 3, 1: 4}

// FleetCells is the number of cells a complete fleet occupies.
const FleetCells = 20

// Quota counts the ships still required per length (index = length).
// It is a value type; Take returns a new Quota and never modifies the receiver.
type Quota [5]int

func (q Quota) Take(length int) (Quota, bool) {
	if length < 1 || length >= len(q) || q[length] == 0 {
		return q, false
	}
	q[length]--
	return q, true
}

func (q Quota) Empty() bool {
	return q == Quota{}
}

func (q Quota) Ships() int {
	n := 0
	for _, c := range q {
		n += c
	}
	return n
}

// String formats the cell the way players read it, e.g. "A1" for 0 and "J10" for 99.
func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("cell(%d)", int(c))
	}
	row, col := c.RowCol()
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}
