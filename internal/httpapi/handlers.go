package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/krishanu7/sea-battle/internal/ws"
)

// Healthz reports the phase of the current session, or 503 when the arena is not running.
func Healthz(arena *ws.Arena) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := arena.State(r.Context())
		if !ok {
			http.Error(w, "arena stopped", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(struct {
			Session   string `json:"session"`
			Phase     string `json:"phase"`
			Members   int    `json:"members"`
			Observers int    `json:"observers"`
			ShipsLeft [2]int `json:"ships_left"`
		}{
			Session:   view.SessionID,
			Phase:     view.Phase.String(),
			Members:   view.Members,
			Observers: view.Observers,
			ShipsLeft: view.ShipsLeft,
		})
	}
}
