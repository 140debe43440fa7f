// Command seabot joins a game server as a player, places a random legal fleet and fires
// at untried cells until the game ends.
package main

import (
	"flag"
	"math/rand"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/krishanu7/sea-battle/internal/game"
	"github.com/krishanu7/sea-battle/internal/ws"
	"github.com/krishanu7/sea-battle/pkg/logger"
	"go.uber.org/zap"
)

type bot struct {
	conn  *websocket.Conn
	rng   *rand.Rand
	order []int
	tried [game.CellCount]bool
	log   *zap.Logger
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server host:port")
	token := flag.String("token", "", "login token; empty plays anonymously")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logger.New("development", *level)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	defer log.Sync()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	if *token != "" {
		u.RawQuery = url.Values{"token": {*token}}.Encode()
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial failed", zap.String("url", u.String()), zap.Error(err))
	}
	defer conn.Close()

	rng := rand.New(rand.NewSource(*seed))
	b := &bot{conn: conn, rng: rng, order: rng.Perm(game.CellCount), log: log}
	if err := b.play(); err != nil {
		log.Fatal("game aborted", zap.Error(err))
	}
}

func (b *bot) send(v any) error {
	return b.conn.WriteJSON(v)
}

func (b *bot) play() error {
	if err := b.send(map[string]string{"type": ws.TypeStart}); err != nil {
		return err
	}

	for {
		var msg struct {
			Type      string `json:"type"`
			Message   string `json:"message"`
			Position  int    `json:"position"`
			Positions []int  `json:"positions"`
			BoardType string `json:"boardType"`
			Result    string `json:"result"`
			Reason    string `json:"reason"`
		}
		if err := b.conn.ReadJSON(&msg); err != nil {
			return err
		}

		switch msg.Type {
		case ws.TypeGameStatus:
			b.log.Info("status", zap.String("message", msg.Message))
			switch msg.Message {
			case "Place your ships!":
				fleet := game.RandomFleet(b.rng)
				if err := b.send(map[string]any{"type": ws.TypeShipsPlaced, "ships": fleet}); err != nil {
					return err
				}
			case "Game started! Your turn!":
				if err := b.fire(); err != nil {
					return err
				}
			case "Observing game...":
				b.log.Info("table is full, watching instead")
			}

		case ws.TypeHit, ws.TypeMiss:
			b.log.Debug(msg.Type, zap.Stringer("cell", game.Cell(msg.Position)))

		case ws.TypeMarkAdjacent:
			if msg.BoardType == ws.BoardOpponent {
				for _, p := range msg.Positions {
					if c := game.Cell(p); c.Valid() {
						b.tried[c] = true
					}
				}
			}

		case ws.TypeOpponentMove:
			if err := b.fire(); err != nil {
				return err
			}

		case ws.TypePlacementRejected:
			b.log.Error("fleet rejected", zap.String("reason", msg.Reason), zap.String("message", msg.Message))
			return nil

		case ws.TypeGameOver:
			b.log.Info("game over", zap.String("result", msg.Result))
			b.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		}
	}
}

func (b *bot) fire() error {
	for len(b.order) > 0 {
		c := game.Cell(b.order[0])
		b.order = b.order[1:]
		if b.tried[c] {
			continue
		}
		b.tried[c] = true
		return b.send(map[string]any{"type": ws.TypeMove, "position": int(c)})
	}
	return nil
}
