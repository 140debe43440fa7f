package ws

import (
	"context"
	"time"

	"github.com/krishanu7/sea-battle/internal/events"
	"go.uber.org/zap"
)

const reportTimeout = 5 * time.Second

// NotificationWorker hands lifecycle events to reporters off the arena goroutine.
type NotificationWorker struct {
	queue     chan events.Event
	reporters []events.Reporter
	log       *zap.Logger
}

func NewNotificationWorker(log *zap.Logger, buffer int, reporters ...events.Reporter) *NotificationWorker {
	return &NotificationWorker{
		queue:     make(chan events.Event, buffer),
		reporters: reporters,
		log:       log,
	}
}

// Notify queues ev without blocking. A full queue drops the event.
func (w *NotificationWorker) Notify(ev events.Event) {
	select {
	case w.queue <- ev:
	default:
		w.log.Warn("notification queue full, dropping event",
			zap.String("type", string(ev.Type)), zap.String("session", ev.SessionID))
	}
}

// Run delivers queued events until ctx is done.
func (w *NotificationWorker) Run(ctx context.Context) error {
	w.log.Info("notification worker starting", zap.Int("reporters", len(w.reporters)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.queue:
			w.deliver(ctx, ev)
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, ev events.Event) {
	for _, r := range w.reporters {
		rctx, cancel := context.WithTimeout(ctx, reportTimeout)
		if err := r.Report(rctx, ev); err != nil {
			w.log.Error("failed to report event",
				zap.String("type", string(ev.Type)), zap.String("session", ev.SessionID), zap.Error(err))
		}
		cancel()
	}
}
