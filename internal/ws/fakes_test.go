package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/krishanu7/sea-battle/internal/events"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const within = 2 * time.Second

type fakeConn struct {
	id     string
	out    chan []byte
	closed chan struct{}
	once   sync.Once
	fail   atomic.Bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{
		id:     id,
		out:    make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(msg []byte) bool {
	if c.fail.Load() {
		return false
	}
	select {
	case c.out <- msg:
		return true
	default:
		return false
	}
}

func (c *fakeConn) Close() {
	c.once.Do(func() { close(c.closed) })
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

type fakeNotifier struct {
	ch chan events.Event
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan events.Event, 32)}
}

func (n *fakeNotifier) Notify(ev events.Event) {
	select {
	case n.ch <- ev:
	default:
	}
}

// outMsg is the union of every outbound message's fields.
type outMsg struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Position  int    `json:"position"`
	Sunk      bool   `json:"sunk"`
	Hit       bool   `json:"hit"`
	Positions []int  `json:"positions"`
	BoardType string `json:"boardType"`
	Result    string `json:"result"`
	Reason    string `json:"reason"`
}

func recv(t *testing.T, c *fakeConn) outMsg {
	t.Helper()
	select {
	case raw := <-c.out:
		var m outMsg
		require.NoError(t, json.Unmarshal(raw, &m))
		return m
	case <-time.After(within):
		t.Fatalf("timed out waiting for message on %s", c.id)
		return outMsg{}
	}
}

func recvStatus(t *testing.T, c *fakeConn, want string) {
	t.Helper()
	m := recv(t, c)
	require.Equal(t, TypeGameStatus, m.Type, "message: %+v", m)
	require.Equal(t, want, m.Message)
}

// recvNone fails if c has anything queued once the arena has drained its inbox.
func recvNone(t *testing.T, a *Arena, c *fakeConn) {
	t.Helper()
	settle(t, a)
	select {
	case raw := <-c.out:
		t.Fatalf("expected no message on %s, got %s", c.id, raw)
	default:
	}
}

func recvEvent(t *testing.T, n *fakeNotifier) events.Event {
	t.Helper()
	select {
	case ev := <-n.ch:
		return ev
	case <-time.After(within):
		t.Fatalf("timed out waiting for event")
		return events.Event{}
	}
}

// settle returns once every message submitted before it has been handled.
func settle(t *testing.T, a *Arena) View {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), within)
	defer cancel()
	v, ok := a.State(ctx)
	require.True(t, ok, "arena did not answer")
	return v
}

func startArena(t *testing.T) (*Arena, *fakeNotifier) {
	t.Helper()
	n := newFakeNotifier()
	a := NewArena(zap.NewNop(), n)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return a, n
}

func connect(t *testing.T, a *Arena, id string) *fakeConn {
	t.Helper()
	c := newFakeConn(id)
	require.True(t, a.Submit(Connect{Conn: c, PlayerID: "player-" + id}))
	return c
}

func submitJSON(t *testing.T, a *Arena, c *fakeConn, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.True(t, a.Submit(Received{ConnID: c.id, Data: raw}))
}

func start(t *testing.T, a *Arena, c *fakeConn) {
	t.Helper()
	submitJSON(t, a, c, map[string]string{"type": TypeStart})
}

func placeShips(t *testing.T, a *Arena, c *fakeConn, ships [][]int) {
	t.Helper()
	submitJSON(t, a, c, map[string]any{"type": TypeShipsPlaced, "ships": ships})
}

func move(t *testing.T, a *Arena, c *fakeConn, pos int) {
	t.Helper()
	submitJSON(t, a, c, map[string]any{"type": TypeMove, "position": pos})
}

func fleetA() [][]int {
	return [][]int{
		{0, 1, 2, 3},
		{5, 6, 7},
		{20, 21, 22},
		{24, 25},
		{27, 28},
		{40, 41},
		{43},
		{45},
		{47},
		{49},
	}
}

func fleetB() [][]int {
	groups := fleetA()
	for _, g := range groups {
		for i := range g {
			g[i] += 50
		}
	}
	return groups
}

// seatedPair connects two players and brings them to fleet placement.
func seatedPair(t *testing.T, a *Arena) (*fakeConn, *fakeConn) {
	t.Helper()
	p0 := connect(t, a, "p0")
	p1 := connect(t, a, "p1")
	start(t, a, p0)
	recvStatus(t, p0, "Waiting for opponent...")
	start(t, a, p1)
	recvStatus(t, p0, "Place your ships!")
	recvStatus(t, p1, "Place your ships!")
	return p0, p1
}

// startedPair brings two players into a game in progress with fleetA for p0 and
// fleetB for p1.
func startedPair(t *testing.T, a *Arena) (*fakeConn, *fakeConn) {
	t.Helper()
	p0, p1 := seatedPair(t, a)
	placeShips(t, a, p0, fleetA())
	recvStatus(t, p0, "Ships placed! Waiting for opponent...")
	placeShips(t, a, p1, fleetB())
	recvStatus(t, p0, "Game started! Your turn!")
	recvStatus(t, p1, "Game started! Waiting for opponent...")
	return p0, p1
}
