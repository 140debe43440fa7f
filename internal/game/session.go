package game

import (
	"errors"
	"fmt"
)

var (
	ErrWrongPhase         = errors.New("not allowed in the current phase")
	ErrInvalidSeat        = errors.New("invalid seat")
	ErrSeatTaken          = errors.New("seat already filled")
	ErrFleetAlreadyPlaced = errors.New("fleet already placed")
)

// EndReason says how a session reached PhaseConcluded.
type EndReason string

const (
	EndFleetSunk EndReason = "fleet_sunk"
	EndResigned  EndReason = "resigned"
	EndAbandoned EndReason = "abandoned"
)

// Outcome describes a concluded session.
type Outcome struct {
	Winner    Seat
	HasWinner bool
	Reason    EndReason
}

// Session is the state of one game between the two seated participants.
// It is not safe for concurrent use; a single owner goroutine drives it.
type Session struct {
	phase   Phase
	filled  [2]bool
	fleets  [2]*Fleet
	shots   [2]map[Cell]struct{}
	turn    Seat
	outcome Outcome
}

func NewSession() *Session {
	return &Session{
		phase: PhaseAwaitingParticipants,
		shots: [2]map[Cell]struct{}{{}, {}},
	}
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Turn() Seat {
	return s.turn
}

func (s *Session) HasFleet(seat Seat) bool {
	return seat.Valid() && s.fleets[seat] != nil
}

// Fleet returns the accepted fleet of seat, or nil.
func (s *Session) Fleet(seat Seat) *Fleet {
	if !seat.Valid() {
		return nil
	}
	return s.fleets[seat]
}

// Outcome reports the result once the session has concluded.
func (s *Session) Outcome() (Outcome, bool) {
	return s.outcome, s.phase == PhaseConcluded
}

// Fill marks seat as occupied. Filling the second seat starts fleet placement.
func (s *Session) Fill(seat Seat) error {
	if !seat.Valid() {
		return ErrInvalidSeat
	}
	if s.phase != PhaseAwaitingParticipants {
		return ErrWrongPhase
	}
	if s.filled[seat] {
		return ErrSeatTaken
	}
	s.filled[seat] = true
	if s.filled[Seat0] && s.filled[Seat1] {
		s.phase = PhasePlacingFleets
	}
	return nil
}

// PlaceFleet validates and stores the fleet of seat. A seat keeps its first accepted
// fleet; later submissions are rejected. started reports whether this submission
// completed placement and began the game.
func (s *Session) PlaceFleet(seat Seat, groups [][]int) (started bool, err error) {
	if !seat.Valid() {
		return false, ErrInvalidSeat
	}
	if s.phase != PhasePlacingFleets {
		return false, ErrWrongPhase
	}
	if s.fleets[seat] != nil {
		return false, ErrFleetAlreadyPlaced
	}
	fleet, err := ValidateFleet(groups)
	if err != nil {
		return false, fmt.Errorf("seat %d: %w", seat, err)
	}
	s.fleets[seat] = fleet
	if s.fleets[seat.Opponent()] != nil {
		s.phase = PhaseInProgress
		s.turn = Seat0
		return true, nil
	}
	return false, nil
}

// Resign concludes a game in progress with seat as the loser.
func (s *Session) Resign(seat Seat) (Outcome, bool) {
	if !seat.Valid() || s.phase != PhaseInProgress {
		return Outcome{}, false
	}
	s.conclude(Outcome{Winner: seat.Opponent(), HasWinner: true, Reason: EndResigned})
	return s.outcome, true
}

// Abandon handles the departure of seat. Before both seats are filled it only frees
// the seat. During placement or play the session concludes and the remaining seat,
// if still filled, wins.
func (s *Session) Abandon(seat Seat) (Outcome, bool) {
	if !seat.Valid() || !s.filled[seat] {
		return Outcome{}, false
	}
	s.filled[seat] = false
	switch s.phase {
	case PhaseAwaitingParticipants:
		return Outcome{}, false
	case PhasePlacingFleets, PhaseInProgress:
		out := Outcome{Reason: EndAbandoned}
		if s.filled[seat.Opponent()] {
			out.Winner = seat.Opponent()
			out.HasWinner = true
		}
		s.conclude(out)
		return s.outcome, true
	default:
		return Outcome{}, false
	}
}

func (s *Session) conclude(out Outcome) {
	s.phase = PhaseConcluded
	s.outcome = out
}
