package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	wsPkg "github.com/krishanu7/sea-battle/pkg/websocket"
	"go.uber.org/zap"
)

// TokenParser resolves a bearer token to a player id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

type Handler struct {
	arena      *Arena
	upgrader   *websocket.Upgrader
	tokens     TokenParser
	sendBuffer int
	log        *zap.Logger
}

// NewHandler returns the websocket entry point. tokens may be nil, in which case every
// connection is anonymous.
func NewHandler(arena *Arena, upgrader *websocket.Upgrader, tokens TokenParser, sendBuffer int, log *zap.Logger) *Handler {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	return &Handler{
		arena:      arena,
		upgrader:   upgrader,
		tokens:     tokens,
		sendBuffer: sendBuffer,
		log:        log,
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	var playerID string
	if token := r.URL.Query().Get("token"); token != "" {
		if h.tokens == nil {
			http.Error(w, "authentication is not enabled", http.StatusBadRequest)
			return
		}
		id, err := h.tokens.ParseToken(token)
		if err != nil {
			h.log.Info("rejected websocket token", zap.Error(err))
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		playerID = id
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	client := wsPkg.NewClient(uuid.NewString(), conn, h.sendBuffer, h.log)
	if !h.arena.Submit(Connect{Conn: client, PlayerID: playerID}) {
		conn.Close()
		return
	}

	go client.WritePump()
	go func() {
		client.ReadPump(func(msg []byte) {
			h.arena.Submit(Received{ConnID: client.ID(), Data: msg})
		})
		if !h.arena.Submit(Disconnect{ConnID: client.ID()}) {
			client.Close()
		}
	}()
}
