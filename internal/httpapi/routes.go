package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/krishanu7/sea-battle/internal/auth"
	"github.com/krishanu7/sea-battle/internal/leaderboard"
	"github.com/krishanu7/sea-battle/internal/ws"
)

// Routes holds the handlers the router serves. Auth and Leaderboard are optional and
// their routes are only mounted when set.
type Routes struct {
	Arena       *ws.Arena
	WS          *ws.Handler
	Auth        *auth.AuthHandler
	Leaderboard *leaderboard.Handler
}

func SetupRoutes(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz(rt.Arena))
	r.Get("/ws", rt.WS.ServeWS)

	if rt.Auth != nil {
		r.Post("/api/v1/auth/register", rt.Auth.Register)
		r.Post("/api/v1/auth/login", rt.Auth.Login)
	}
	if rt.Leaderboard != nil {
		r.Get("/api/v1/leaderboard", rt.Leaderboard.GetLeaderboard)
	}
	return r
}
