package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krishanu7/sea-battle/config"
	"github.com/krishanu7/sea-battle/db"
	"github.com/krishanu7/sea-battle/internal/auth"
	"github.com/krishanu7/sea-battle/internal/events"
	"github.com/krishanu7/sea-battle/internal/httpapi"
	"github.com/krishanu7/sea-battle/internal/leaderboard"
	"github.com/krishanu7/sea-battle/internal/ws"
	"github.com/krishanu7/sea-battle/pkg/logger"
	"github.com/krishanu7/sea-battle/pkg/redis"
	wsPkg "github.com/krishanu7/sea-battle/pkg/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const notifyBuffer = 64

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if !cfg.EnvFileLoaded {
		log.Debug("no .env file found, using environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	var (
		reporters []events.Reporter
		routes    httpapi.Routes
		tokens    ws.TokenParser
	)

	if cfg.DBUrl != "" {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when DB_URL is set")
		}
		conn, err := db.Open(ctx, cfg.DBUrl)
		if err != nil {
			return err
		}
		defer conn.Close()

		authService := auth.NewService(conn, cfg.JWTSecret)
		boardService := leaderboard.NewService(conn, log)
		routes.Auth = auth.NewAuthHandler(authService, log)
		routes.Leaderboard = leaderboard.NewHandler(boardService, log)
		tokens = authService
		reporters = append(reporters, boardService)
		log.Info("accounts and leaderboard enabled")
	} else {
		log.Info("DB_URL not set, accounts and leaderboard disabled")
	}

	if cfg.RedisAddr != "" {
		rdb, err := redis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()
		reporters = append(reporters, events.NewPublisher(rdb, cfg.RedisChannel))
		log.Info("publishing events", zap.String("channel", cfg.RedisChannel))
	} else {
		log.Info("REDIS_ADDR not set, event publishing disabled")
	}

	worker := ws.NewNotificationWorker(log, notifyBuffer, reporters...)
	arena := ws.NewArena(log, worker)
	routes.Arena = arena
	routes.WS = ws.NewHandler(arena, wsPkg.NewUpgrader(cfg.AllowedOrigins), tokens, cfg.SendBuffer, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.SetupRoutes(routes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return arena.Run(gctx) })
	g.Go(func() error { return worker.Run(gctx) })
	g.Go(func() error {
		log.Info("server started", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
