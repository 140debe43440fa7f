// Package events carries game lifecycle notifications to out-of-process consumers.
package events

import (
	"context"
	"time"
)

type Type string

const (
	ShipsPlaced Type = "ships_placed"
	GameStarted Type = "game_started"
	GameOver    Type = "game_over"
)

// Event is one lifecycle notification. Players holds the account id bound to each seat;
// an empty id means the seat was played anonymously.
type Event struct {
	Type      Type      `json:"type"`
	SessionID string    `json:"sessionId"`
	Players   [2]string `json:"players"`
	Seat      *int      `json:"seat,omitempty"`
	Winner    *int      `json:"winner,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

// Reporter consumes lifecycle events.
type Reporter interface {
	Report(ctx context.Context, ev Event) error
}

func IntPtr(v int) *int {
	return &v
}
