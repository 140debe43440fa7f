package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/krishanu7/sea-battle/internal/game"
	"go.uber.org/zap"
)

// Dispatcher turns session transitions into outbound messages. Delivery is
// best-effort; connections whose send fails are collected for the arena to drop.
type Dispatcher struct {
	reg    *Registry
	log    *zap.Logger
	failed []string
}

func NewDispatcher(reg *Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		reg: reg,
		log: log,
	}
}

func (d *Dispatcher) send(c Conn, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		d.log.Error("failed to marshal outbound message", zap.Error(err))
		return
	}
	if !c.Send(payload) {
		d.log.Warn("send failed, dropping connection", zap.String("conn", c.ID()))
		d.failed = append(d.failed, c.ID())
	}
}

func (d *Dispatcher) toSeat(seat game.Seat, msg any) {
	if c, ok := d.reg.Occupant(seat); ok {
		d.send(c, msg)
	}
}

func (d *Dispatcher) toObservers(msg any) {
	for _, c := range d.reg.Observers() {
		d.send(c, msg)
	}
}

// Failed returns the connections whose sends failed since the last call.
func (d *Dispatcher) Failed() []string {
	ids := d.failed
	d.failed = nil
	return ids
}

func (d *Dispatcher) Status(c Conn, text string) {
	d.send(c, newGameStatus(text))
}

// Seated tells a newly seated participant where things stand, and both players when
// the table is now full.
func (d *Dispatcher) Seated(c Conn) {
	if d.reg.Session().Phase() == game.PhasePlacingFleets {
		msg := newGameStatus("Place your ships!")
		d.toSeat(game.Seat0, msg)
		d.toSeat(game.Seat1, msg)
		d.toObservers(msg)
		return
	}
	d.Status(c, "Waiting for opponent...")
}

func (d *Dispatcher) FleetAccepted(seat game.Seat, started bool) {
	if !started {
		d.toSeat(seat, newGameStatus("Ships placed! Waiting for opponent..."))
		return
	}
	d.toSeat(game.Seat0, newGameStatus("Game started! Your turn!"))
	d.toSeat(game.Seat1, newGameStatus("Game started! Waiting for opponent..."))
	d.toObservers(newGameStatus("Game started!"))
}

func (d *Dispatcher) FleetRejected(c Conn, err error) {
	d.send(c, PlacementRejected{
		Type:    TypePlacementRejected,
		Reason:  rejectionReason(err),
		Message: err.Error(),
	})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidShape):
		return "shape"
	case errors.Is(err, game.ErrFleetComposition):
		return "composition"
	case errors.Is(err, game.ErrOverlap):
		return "overlap"
	case errors.Is(err, game.ErrAdjacent):
		return "adjacency"
	case errors.Is(err, game.ErrFleetAlreadyPlaced):
		return "already_placed"
	case errors.Is(err, game.ErrWrongPhase):
		return "wrong_phase"
	default:
		return "invalid"
	}
}

// Shot reports a resolved shot: the shooter learns hit or miss, the target's owner
// sees where the shot landed, and a sinking discloses the halo to both.
func (d *Dispatcher) Shot(res game.ShotResult) {
	pos := int(res.Target)
	if res.Hit {
		d.toSeat(res.Shooter, ShotReport{Type: TypeHit, Position: pos, Sunk: res.Sunk})
	} else {
		d.toSeat(res.Shooter, ShotReport{Type: TypeMiss, Position: pos})
	}
	d.toSeat(res.Shooter.Opponent(), OpponentMove{Type: TypeOpponentMove, Position: pos, Hit: res.Hit})

	if res.Sunk && len(res.Halo) > 0 {
		positions := make([]int, len(res.Halo))
		for i, c := range res.Halo {
			positions[i] = int(c)
		}
		d.toSeat(res.Shooter, MarkAdjacent{Type: TypeMarkAdjacent, Positions: positions, BoardType: BoardOpponent})
		d.toSeat(res.Shooter.Opponent(), MarkAdjacent{Type: TypeMarkAdjacent, Positions: positions, BoardType: BoardPlayer})
	}

	result := "miss"
	switch {
	case res.Sunk:
		result = "sunk"
	case res.Hit:
		result = "hit"
	}
	d.toObservers(newGameStatus(fmt.Sprintf("Player %d fires at %s: %s", res.Shooter.Number(), res.Target, result)))
}

// Concluded announces the end of the game.
func (d *Dispatcher) Concluded(out game.Outcome) {
	if !out.HasWinner {
		d.toObservers(newGameStatus("Game ended."))
		return
	}
	if out.Reason == game.EndAbandoned {
		d.toSeat(out.Winner, newGameStatus("Opponent disconnected. Game ended."))
		d.toObservers(newGameStatus("Opponent disconnected. Game ended."))
	}
	d.toSeat(out.Winner, newGameResult(true))
	d.toSeat(out.Winner.Opponent(), newGameResult(false))
	d.toObservers(newGameStatus(fmt.Sprintf("Player %d wins!", out.Winner.Number())))
}

func (d *Dispatcher) Chat(from string, text string) {
	for _, c := range d.reg.Joined(from) {
		d.send(c, Chat{Type: TypeChat, Message: text})
	}
}
