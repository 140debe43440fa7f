package game

// ShotResult is the resolution of one accepted shot.
type ShotResult struct {
	Shooter Seat
	Target  Cell
	Hit     bool
	Sunk    bool
	// ShipCells and Halo are set only when the shot sank a ship.
	ShipCells []Cell
	Halo      []Cell
	// GameOver is set when the shot sank the last ship; Shooter is the winner.
	GameOver bool
	NextTurn Seat
}

// Shoot resolves a shot by seat at target. Shots out of phase, out of turn, off the
// board or repeated by the same seat are dropped: ok is false and nothing changes.
func (s *Session) Shoot(seat Seat, target Cell) (res ShotResult, ok bool) {
	if s.phase != PhaseInProgress || seat != s.turn || !target.Valid() {
		return ShotResult{}, false
	}
	if _, dup := s.shots[seat][target]; dup {
		return ShotResult{}, false
	}
	s.shots[seat][target] = struct{}{}

	opponent := seat.Opponent()
	fleet := s.fleets[opponent]
	res = ShotResult{Shooter: seat, Target: target}

	ship, hit := fleet.ShipAt(target)
	if hit {
		ship.hit(target)
		res.Hit = true
		if ship.Sunk() {
			res.Sunk = true
			res.ShipCells = ship.Cells()
			res.Halo = fleet.Halo(ship)
			if fleet.AllSunk() {
				res.GameOver = true
				res.NextTurn = seat
				s.conclude(Outcome{Winner: seat, HasWinner: true, Reason: EndFleetSunk})
				return res, true
			}
		}
	}

	s.turn = opponent
	res.NextTurn = opponent
	return res, true
}
