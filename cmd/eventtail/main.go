package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/krishanu7/sea-battle/config"
	"github.com/krishanu7/sea-battle/internal/events"
	"github.com/krishanu7/sea-battle/pkg/logger"
	"github.com/krishanu7/sea-battle/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	log.Info("event tail starting", zap.String("channel", cfg.RedisChannel))
	err = events.Subscribe(ctx, rdb, cfg.RedisChannel, log, func(ev events.Event) {
		fields := []zap.Field{
			zap.String("session", ev.SessionID),
			zap.Strings("players", ev.Players[:]),
			zap.Time("at", ev.At),
		}
		if ev.Seat != nil {
			fields = append(fields, zap.Int("seat", *ev.Seat))
		}
		if ev.Winner != nil {
			fields = append(fields, zap.Int("winner", *ev.Winner), zap.String("reason", ev.Reason))
		}
		log.Info(string(ev.Type), fields...)
	})
	if err != nil {
		log.Fatal("subscription ended", zap.Error(err))
	}
}
