package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownType  = errors.New("unknown message type")
	ErrMissingField = errors.New("missing required field")
)

// ClientMessage is one of StartMsg, ShipsPlacedMsg, MoveMsg, GameOverMsg or ChatMsg.
type ClientMessage interface{ isClientMessage() }

type StartMsg struct{}

type ShipsPlacedMsg struct {
	Ships [][]int
}

type MoveMsg struct {
	Position int
}

// GameOverMsg is a resignation: the sender loses. Winner is informational only.
type GameOverMsg struct {
	Winner string
}

type ChatMsg struct {
	Message string
}

func (StartMsg) isClientMessage()       {}
func (ShipsPlacedMsg) isClientMessage() {}
func (MoveMsg) isClientMessage()        {}
func (GameOverMsg) isClientMessage()    {}
func (ChatMsg) isClientMessage()        {}

// DecodeClientMessage parses an inbound frame into its variant. Payloads with an
// unknown type or without the fields their type requires are rejected.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var env struct {
		Type     string          `json:"type"`
		Ships    [][]int         `json:"ships"`
		Position *int            `json:"position"`
		Winner   json.RawMessage `json:"winner"`
		Message  *string         `json:"message"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}

	switch env.Type {
	case TypeStart:
		return StartMsg{}, nil
	case TypeShipsPlaced:
		if env.Ships == nil {
			return nil, fmt.Errorf("%s: %w: ships", env.Type, ErrMissingField)
		}
		return ShipsPlacedMsg{Ships: env.Ships}, nil
	case TypeMove:
		if env.Position == nil {
			return nil, fmt.Errorf("%s: %w: position", env.Type, ErrMissingField)
		}
		return MoveMsg{Position: *env.Position}, nil
	case TypeGameOver:
		var winner string
		// winner may be any JSON value; only strings are kept
		_ = json.Unmarshal(env.Winner, &winner)
		return GameOverMsg{Winner: winner}, nil
	case TypeChat:
		if env.Message == nil {
			return nil, fmt.Errorf("%s: %w: message", env.Type, ErrMissingField)
		}
		return ChatMsg{Message: *env.Message}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

const (
	TypeStart             = "start"
	TypeShipsPlaced       = "shipsPlaced"
	TypeMove              = "move"
	TypeGameOver          = "gameOver"
	TypeChat              = "chat"
	TypeGameStatus        = "gameStatus"
	TypeHit               = "hit"
	TypeMiss              = "miss"
	TypeOpponentMove      = "opponentMove"
	TypeMarkAdjacent      = "markAdjacent"
	TypePlacementRejected = "placementRejected"
)

// Board names used by markAdjacent.
const (
	BoardOpponent = "opponent"
	BoardPlayer   = "player"
)

type GameStatus struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ShotReport struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
	Sunk     bool   `json:"sunk,omitempty"`
}

type OpponentMove struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
	Hit      bool   `json:"hit"`
}

type MarkAdjacent struct {
	Type      string `json:"type"`
	Positions []int  `json:"positions"`
	BoardType string `json:"boardType"`
}

type GameResult struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

type Chat struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type PlacementRejected struct {
	Type    string `json:"type"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func newGameStatus(msg string) GameStatus {
	return GameStatus{Type: TypeGameStatus, Message: msg}
}

func newGameResult(win bool) GameResult {
	if win {
		return GameResult{Type: TypeGameOver, Result: "win"}
	}
	return GameResult{Type: TypeGameOver, Result: "lose"}
}
