package websocket

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/websocket"
)

// NewUpgrader accepts any origin when allowed is empty; otherwise the Origin host must
// be listed or match the request host.
func NewUpgrader(allowed []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			return u.Host == r.Host || slices.Contains(allowed, u.Host) || slices.Contains(allowed, origin)
		},
	}
}
