package worker

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
)

// ActivityDequeuer is the drain half of the activity pipeline.
type ActivityDequeuer interface {
	DequeueActivity(ctx context.Context, timeout time.Duration) ([]byte, error)
}

// ActivityWorker drains queued activity entries into the feed table.
type ActivityWorker struct {
	queue  ActivityDequeuer
	feed   repository.ActivityRepository
	logger *zap.Logger
}

// NewActivityWorker builds the worker.
func NewActivityWorker(queue ActivityDequeuer, feed repository.ActivityRepository, logger *zap.Logger) *ActivityWorker {
	return &ActivityWorker{queue: queue, feed: feed, logger: logger}
}

// Run blocks until ctx is cancelled, persisting queued entries as they
// arrive. Malformed payloads are dropped with a log line; insert failures
// back off briefly rather than spinning.
func (w *ActivityWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := w.queue.DequeueActivity(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("dequeue activity entry", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if payload == nil {
			continue
		}

		var entry domain.ActivityEntry
		if err := json.Unmarshal(payload, &entry); err != nil {
			w.logger.Error("malformed activity payload", zap.Error(err))
			continue
		}

		if err := w.feed.Insert(ctx, &entry); err != nil {
			w.logger.Error("persist activity entry",
				zap.String("resource_id", entry.ResourceID),
				zap.Error(err))
			time.Sleep(time.Second)
		}
	}
}
