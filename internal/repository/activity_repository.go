package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// ActivityRepository appends to and reads the activity feed. Entries are
// never updated or removed.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	GetByID(ctx context.Context, id string) (*domain.ActivityEntry, error)
	List(ctx context.Context, filter ActivityFilter) ([]domain.ActivityEntry, error)
}

// ActivityFilter narrows activity feed queries; zero values match everything.
type ActivityFilter struct {
	ResourceID string
	ActorID    string
	Activity   string
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_entries (resource_id, actor_id, activity)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, entry.ResourceID, entry.ActorID, entry.Activity).
		Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.ActivityEntry, error) {
	const query = `
        SELECT id, resource_id, actor_id, activity, created_at
        FROM activity_entries WHERE id=$1`

	var entry domain.ActivityEntry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.ResourceID,
		&entry.ActorID,
		&entry.Activity,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]domain.ActivityEntry, error) {
	query := `
        SELECT id, resource_id, actor_id, activity, created_at
        FROM activity_entries WHERE 1=1`
	args := []any{}

	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		query += ` AND resource_id=$` + strconv.Itoa(len(args))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += ` AND actor_id=$` + strconv.Itoa(len(args))
	}
	if filter.Activity != "" {
		args = append(args, filter.Activity)
		query += ` AND activity=$` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.ResourceID, &entry.ActorID, &entry.Activity, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
