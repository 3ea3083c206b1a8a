package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// LinkRepository reads and mutates user→resource associations. The resource
// id is opaque at this layer; the same table serves every entity family.
type LinkRepository interface {
	Create(ctx context.Context, link *domain.ResourceLink) error
	GetByID(ctx context.Context, id string) (*domain.ResourceLink, error)
	// FindActiveLink returns the single active link for (resource, user), or
	// pgx.ErrNoRows when none exists.
	FindActiveLink(ctx context.Context, resourceID, userID string) (*domain.ResourceLink, error)
	List(ctx context.Context, resourceID, userID string) ([]domain.ResourceLink, error)
	SoftDelete(ctx context.Context, id string) error
}

type linkRepository struct {
	pool *pgxpool.Pool
}

// NewLinkRepository returns a Postgres-backed implementation.
func NewLinkRepository(pool *pgxpool.Pool) LinkRepository {
	return &linkRepository{pool: pool}
}

func (r *linkRepository) Create(ctx context.Context, link *domain.ResourceLink) error {
	const query = `
        INSERT INTO resource_links (resource_id, user_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, link.ResourceID, link.UserID).
		Scan(&link.ID, &link.CreatedAt)
}

func (r *linkRepository) GetByID(ctx context.Context, id string) (*domain.ResourceLink, error) {
	const query = `
        SELECT id, resource_id, user_id, removed, created_at
        FROM resource_links WHERE id=$1 AND removed=FALSE`

	return scanLink(r.pool.QueryRow(ctx, query, id))
}

func (r *linkRepository) FindActiveLink(ctx context.Context, resourceID, userID string) (*domain.ResourceLink, error) {
	const query = `
        SELECT id, resource_id, user_id, removed, created_at
        FROM resource_links WHERE resource_id=$1 AND user_id=$2 AND removed=FALSE`

	return scanLink(r.pool.QueryRow(ctx, query, resourceID, userID))
}

func (r *linkRepository) List(ctx context.Context, resourceID, userID string) ([]domain.ResourceLink, error) {
	query := `
        SELECT id, resource_id, user_id, removed, created_at
        FROM resource_links WHERE removed=FALSE`
	args := []any{}

	if resourceID != "" {
		args = append(args, resourceID)
		query += ` AND resource_id=$1`
	}
	if userID != "" {
		args = append(args, userID)
		if len(args) == 1 {
			query += ` AND user_id=$1`
		} else {
			query += ` AND user_id=$2`
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.ResourceLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

func (r *linkRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE resource_links SET removed=TRUE WHERE id=$1 AND removed=FALSE`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanLink(row pgx.Row) (*domain.ResourceLink, error) {
	var link domain.ResourceLink
	if err := row.Scan(
		&link.ID,
		&link.ResourceID,
		&link.UserID,
		&link.Removed,
		&link.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}
