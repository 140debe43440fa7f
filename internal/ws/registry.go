package ws

import (
	"errors"

	"github.com/google/uuid"
	"github.com/krishanu7/sea-battle/internal/game"
)

var (
	ErrUnknownConn   = errors.New("unknown connection")
	ErrAlreadyJoined = errors.New("connection already joined")
)

// Conn is the arena's view of a client connection.
type Conn interface {
	ID() string
	// Send queues a message without blocking; false means it could not be delivered.
	Send(msg []byte) bool
	Close()
}

type Role int

const (
	// RoleIdle connections are open but have not sent start, or were released when
	// their game ended.
	RoleIdle Role = iota
	RolePlayer
	RoleObserver
)

func (r Role) String() string {
	switch r {
	case RoleIdle:
		return "idle"
	case RolePlayer:
		return "player"
	case RoleObserver:
		return "observer"
	default:
		return "unknown"
	}
}

type member struct {
	conn     Conn
	playerID string
	role     Role
	seat     game.Seat
}

// Registry binds connections to seats and owns the single current session.
// A third participant is admitted as an observer. Only the arena goroutine uses it.
type Registry struct {
	members   map[string]*member
	seats     [2]*member
	players   [2]string
	session   *game.Session
	sessionID string
	newID     func() string
}

func NewRegistry() *Registry {
	r := &Registry{
		members: make(map[string]*member),
		newID:   uuid.NewString,
	}
	r.Reset()
	return r
}

func (r *Registry) Session() *game.Session {
	return r.session
}

func (r *Registry) SessionID() string {
	return r.sessionID
}

// Reset discards the current session, releases both seats and starts a fresh session.
// Released players stay connected as idle members.
func (r *Registry) Reset() {
	for i, m := range r.seats {
		if m != nil {
			m.role = RoleIdle
		}
		r.seats[i] = nil
	}
	r.players = [2]string{}
	r.session = game.NewSession()
	r.sessionID = r.newID()
}

func (r *Registry) Add(c Conn, playerID string) {
	r.members[c.ID()] = &member{conn: c, playerID: playerID, role: RoleIdle}
}

func (r *Registry) Has(id string) bool {
	_, ok := r.members[id]
	return ok
}

// Remove forgets the connection and frees its seat. It returns the seat the
// connection held, if any.
func (r *Registry) Remove(id string) (seat game.Seat, seated bool, ok bool) {
	m, ok := r.members[id]
	if !ok {
		return 0, false, false
	}
	delete(r.members, id)
	if m.role == RolePlayer && r.seats[m.seat] == m {
		r.seats[m.seat] = nil
		return m.seat, true, true
	}
	return 0, false, true
}

// Join seats the connection in the first free seat, or admits it as an observer when
// both seats are taken.
func (r *Registry) Join(id string) (Role, game.Seat, error) {
	m, ok := r.members[id]
	if !ok {
		return RoleIdle, 0, ErrUnknownConn
	}
	if m.role != RoleIdle {
		return m.role, m.seat, ErrAlreadyJoined
	}
	for _, seat := range []game.Seat{game.Seat0, game.Seat1} {
		if r.seats[seat] != nil {
			continue
		}
		if err := r.session.Fill(seat); err != nil {
			return RoleIdle, 0, err
		}
		m.role = RolePlayer
		m.seat = seat
		r.seats[seat] = m
		r.players[seat] = m.playerID
		return RolePlayer, seat, nil
	}
	m.role = RoleObserver
	return RoleObserver, 0, nil
}

func (r *Registry) Role(id string) Role {
	if m, ok := r.members[id]; ok {
		return m.role
	}
	return RoleIdle
}

// SeatOf returns the seat held by the connection.
func (r *Registry) SeatOf(id string) (game.Seat, bool) {
	m, ok := r.members[id]
	if !ok || m.role != RolePlayer {
		return 0, false
	}
	return m.seat, true
}

// Occupant returns the connection seated at seat.
func (r *Registry) Occupant(seat game.Seat) (Conn, bool) {
	if !seat.Valid() || r.seats[seat] == nil {
		return nil, false
	}
	return r.seats[seat].conn, true
}

// Players returns the account id of whoever last filled each seat of the current
// session, so a departed player is still named in the final result. Empty means
// anonymous or never filled.
func (r *Registry) Players() [2]string {
	return r.players
}

func (r *Registry) Observers() []Conn {
	var out []Conn
	for _, m := range r.members {
		if m.role == RoleObserver {
			out = append(out, m.conn)
		}
	}
	return out
}

// Joined returns every seated or observing connection except the one with id except.
func (r *Registry) Joined(except string) []Conn {
	var out []Conn
	for id, m := range r.members {
		if id != except && m.role != RoleIdle {
			out = append(out, m.conn)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.members)
}
