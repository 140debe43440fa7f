package ws

import (
	"context"
	"time"

	"github.com/krishanu7/sea-battle/internal/events"
	"github.com/krishanu7/sea-battle/internal/game"
	"go.uber.org/zap"
)

// Msg is one of Connect, Received, Disconnect or GetState.
type Msg interface{ isArenaMsg() }

type Connect struct {
	Conn     Conn
	PlayerID string
}

type Received struct {
	ConnID string
	Data   []byte
}

type Disconnect struct {
	ConnID string
}

// GetState asks for a snapshot of the arena; used by tests and health reporting.
type GetState struct {
	Reply chan View
}

func (Connect) isArenaMsg()    {}
func (Received) isArenaMsg()   {}
func (Disconnect) isArenaMsg() {}
func (GetState) isArenaMsg()   {}

type View struct {
	SessionID string
	Phase     game.Phase
	Turn      game.Seat
	Seats     [2]string
	// ShipsLeft counts each seat's unsunk ships; -1 until the seat's fleet is placed.
	ShipsLeft [2]int
	Observers int
	Members   int
}

// Notifier receives lifecycle events. It must not block.
type Notifier interface {
	Notify(ev events.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(events.Event) {}

// Arena runs the single game table. One goroutine (Run) owns the registry and the
// session and handles one message at a time, so no handler ever interleaves another.
type Arena struct {
	inbox    chan Msg
	done     chan struct{}
	reg      *Registry
	dispatch *Dispatcher
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewArena(log *zap.Logger, notifier Notifier) *Arena {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	reg := NewRegistry()
	return &Arena{
		inbox:    make(chan Msg, 64),
		done:     make(chan struct{}),
		reg:      reg,
		dispatch: NewDispatcher(reg, log),
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Submit hands msg to the arena. It reports false once the arena has stopped.
func (a *Arena) Submit(msg Msg) bool {
	select {
	case <-a.done:
		return false
	default:
	}
	select {
	case a.inbox <- msg:
		return true
	case <-a.done:
		return false
	}
}

// State returns a snapshot, or false if the arena stopped first.
func (a *Arena) State(ctx context.Context) (View, bool) {
	reply := make(chan View, 1)
	if !a.Submit(GetState{Reply: reply}) {
		return View{}, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-ctx.Done():
		return View{}, false
	case <-a.done:
		return View{}, false
	}
}

// Run processes messages until ctx is done, then closes every connection.
func (a *Arena) Run(ctx context.Context) error {
	defer close(a.done)
	a.log.Info("arena started", zap.String("session", a.reg.SessionID()))
	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil
		case m := <-a.inbox:
			a.handle(m)
			a.dropFailed()
		}
	}
}

func (a *Arena) handle(m Msg) {
	switch msg := m.(type) {
	case Connect:
		a.reg.Add(msg.Conn, msg.PlayerID)
		a.log.Info("connection opened", zap.String("conn", msg.Conn.ID()), zap.String("player", msg.PlayerID))

	case Received:
		a.receive(msg.ConnID, msg.Data)

	case Disconnect:
		a.disconnect(msg.ConnID)

	case GetState:
		msg.Reply <- a.view()
	}
}

func (a *Arena) view() View {
	v := View{
		SessionID: a.reg.SessionID(),
		Phase:     a.reg.Session().Phase(),
		Turn:      a.reg.Session().Turn(),
		Observers: len(a.reg.Observers()),
		Members:   a.reg.Len(),
	}
	for _, seat := range []game.Seat{game.Seat0, game.Seat1} {
		if c, ok := a.reg.Occupant(seat); ok {
			v.Seats[seat] = c.ID()
		}
		v.ShipsLeft[seat] = -1
		if a.reg.Session().HasFleet(seat) {
			v.ShipsLeft[seat] = a.reg.Session().Fleet(seat).Remaining()
		}
	}
	return v
}

func (a *Arena) receive(id string, data []byte) {
	if !a.reg.Has(id) {
		return
	}
	log := a.log.With(zap.String("conn", id))

	msg, err := DecodeClientMessage(data)
	if err != nil {
		log.Debug("dropping message", zap.Error(err))
		return
	}

	switch msg := msg.(type) {
	case StartMsg:
		a.join(id, log)
	case ShipsPlacedMsg:
		a.placeShips(id, msg.Ships, log)
	case MoveMsg:
		a.move(id, game.Cell(msg.Position), log)
	case GameOverMsg:
		a.resign(id, log)
	case ChatMsg:
		if a.reg.Role(id) != RoleIdle {
			a.dispatch.Chat(id, msg.Message)
		}
	}
}

func (a *Arena) join(id string, log *zap.Logger) {
	role, seat, err := a.reg.Join(id)
	if err != nil {
		log.Debug("dropping start", zap.Error(err))
		return
	}
	c, _ := a.conn(id)
	switch role {
	case RolePlayer:
		log.Info("seated", zap.Int("seat", int(seat)), zap.String("phase", a.reg.Session().Phase().String()))
		a.dispatch.Seated(c)
	case RoleObserver:
		log.Info("observing")
		a.dispatch.Status(c, "Observing game...")
	}
}

func (a *Arena) placeShips(id string, ships [][]int, log *zap.Logger) {
	seat, ok := a.reg.SeatOf(id)
	if !ok {
		log.Debug("dropping placement from unseated connection")
		return
	}
	started, err := a.reg.Session().PlaceFleet(seat, ships)
	if err != nil {
		log.Info("fleet rejected", zap.Int("seat", int(seat)), zap.Error(err))
		c, _ := a.conn(id)
		a.dispatch.FleetRejected(c, err)
		return
	}

	log.Info("fleet accepted", zap.Int("seat", int(seat)), zap.Bool("started", started))
	a.dispatch.FleetAccepted(seat, started)
	a.publish(events.ShipsPlaced, func(ev *events.Event) { ev.Seat = events.IntPtr(int(seat)) })
	if started {
		a.publish(events.GameStarted, nil)
	}
}

func (a *Arena) move(id string, target game.Cell, log *zap.Logger) {
	seat, ok := a.reg.SeatOf(id)
	if !ok {
		return
	}
	res, ok := a.reg.Session().Shoot(seat, target)
	if !ok {
		log.Debug("dropping shot", zap.Int("seat", int(seat)), zap.Int("position", int(target)))
		return
	}
	log.Debug("shot resolved",
		zap.Int("seat", int(seat)), zap.Stringer("target", res.Target),
		zap.Bool("hit", res.Hit), zap.Bool("sunk", res.Sunk))
	a.dispatch.Shot(res)

	if res.GameOver {
		if out, ok := a.reg.Session().Outcome(); ok {
			a.conclude(out)
		}
	}
}

func (a *Arena) resign(id string, log *zap.Logger) {
	seat, ok := a.reg.SeatOf(id)
	if !ok {
		return
	}
	out, ok := a.reg.Session().Resign(seat)
	if !ok {
		log.Debug("dropping gameOver outside of play", zap.Int("seat", int(seat)))
		return
	}
	a.conclude(out)
}

func (a *Arena) disconnect(id string) {
	c, ok := a.conn(id)
	if !ok {
		return
	}
	seat, seated, _ := a.reg.Remove(id)
	c.Close()
	a.log.Info("connection closed", zap.String("conn", id), zap.Bool("seated", seated))
	if !seated {
		return
	}
	if out, concluded := a.reg.Session().Abandon(seat); concluded {
		a.conclude(out)
	}
}

// conclude announces the outcome, reports it and replaces the session.
func (a *Arena) conclude(out game.Outcome) {
	a.log.Info("game over",
		zap.String("session", a.reg.SessionID()),
		zap.Bool("has_winner", out.HasWinner),
		zap.Int("winner", int(out.Winner)),
		zap.String("reason", string(out.Reason)))

	a.dispatch.Concluded(out)
	a.publish(events.GameOver, func(ev *events.Event) {
		ev.Reason = string(out.Reason)
		if out.HasWinner {
			ev.Winner = events.IntPtr(int(out.Winner))
		}
	})
	a.reg.Reset()
}

func (a *Arena) publish(t events.Type, fill func(*events.Event)) {
	ev := events.Event{
		Type:      t,
		SessionID: a.reg.SessionID(),
		Players:   a.reg.Players(),
		At:        a.now().UTC(),
	}
	if fill != nil {
		fill(&ev)
	}
	a.notifier.Notify(ev)
}

// dropFailed treats every connection a send failed on as disconnected. Dropping one
// may produce further notifications and failures, so it repeats until none are left.
func (a *Arena) dropFailed() {
	for ids := a.dispatch.Failed(); len(ids) > 0; ids = a.dispatch.Failed() {
		for _, id := range ids {
			a.disconnect(id)
		}
	}
}

func (a *Arena) conn(id string) (Conn, bool) {
	m, ok := a.reg.members[id]
	if !ok {
		return nil, false
	}
	return m.conn, true
}

func (a *Arena) shutdown() {
	for _, m := range a.reg.members {
		m.conn.Close()
	}
	a.log.Info("arena stopped")
}
