package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// ActivityQueue is the enqueue half of the activity pipeline.
type ActivityQueue interface {
	EnqueueActivity(ctx context.Context, payload []byte) error
}

// ActivityService records "actor did activity on resource" facts. Recording
// is fire-and-forget: a queue failure is logged, never surfaced to the
// request that triggered it.
type ActivityService struct {
	queue  ActivityQueue
	feed   repository.ActivityRepository
	logger *zap.Logger
}

// NewActivityService builds the service.
func NewActivityService(queue ActivityQueue, feed repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{queue: queue, feed: feed, logger: logger}
}

// Record validates the activity kind and enqueues the entry.
func (s *ActivityService) Record(ctx context.Context, resourceID, actorID string, activity domain.Activity) {
	if !activity.Valid() {
		s.logger.Error("unknown activity kind", zap.String("activity", string(activity)))
		return
	}

	entry := domain.ActivityEntry{
		ResourceID: resourceID,
		ActorID:    actorID,
		Activity:   activity,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("marshal activity entry", zap.Error(err))
		return
	}

	if err := s.queue.EnqueueActivity(ctx, payload); err != nil {
		s.logger.Error("enqueue activity entry",
			zap.String("resource_id", resourceID),
			zap.String("activity", string(activity)),
			zap.Error(err))
	}
}

// Browse lists the activity feed. An unknown activity filter is rejected at
// the boundary.
func (s *ActivityService) Browse(ctx context.Context, filter repository.ActivityFilter) ([]domain.ActivityEntry, error) {
	if filter.Activity != "" && !domain.Activity(filter.Activity).Valid() {
		return nil, apperrors.NewValidationError("unknown activity kind", map[string]any{"activity": filter.Activity})
	}
	return s.feed.List(ctx, filter)
}

// Read returns one feed entry.
func (s *ActivityService) Read(ctx context.Context, id string) (*domain.ActivityEntry, error) {
	entry, err := s.feed.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("activity")
		}
		return nil, err
	}
	return entry, nil
}
