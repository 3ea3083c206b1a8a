package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// BoardRepository defines persistence access for boards.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	Update(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context, projectID string) ([]domain.Board, error)
}

type boardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository returns a Postgres-backed implementation.
func NewBoardRepository(pool *pgxpool.Pool) BoardRepository {
	return &boardRepository{pool: pool}
}

func (r *boardRepository) Create(ctx context.Context, board *domain.Board) error {
	const query = `
        INSERT INTO boards (project_id, name)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, board.ProjectID, board.Name).
		Scan(&board.ID, &board.CreatedAt, &board.UpdatedAt)
}

func (r *boardRepository) Update(ctx context.Context, board *domain.Board) error {
	const query = `
        UPDATE boards SET project_id=$1, name=$2, removed=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query, board.ProjectID, board.Name, board.Removed, board.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	const query = `
        SELECT id, project_id, name, removed, created_at, updated_at
        FROM boards WHERE id=$1 AND removed=FALSE`

	var board domain.Board
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&board.ID,
		&board.ProjectID,
		&board.Name,
		&board.Removed,
		&board.CreatedAt,
		&board.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) List(ctx context.Context, projectID string) ([]domain.Board, error) {
	query := `
        SELECT id, project_id, name, removed, created_at, updated_at
        FROM boards WHERE removed=FALSE`
	args := []any{}

	if projectID != "" {
		args = append(args, projectID)
		query += ` AND project_id=$1`
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(&board.ID, &board.ProjectID, &board.Name, &board.Removed, &board.CreatedAt, &board.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}
