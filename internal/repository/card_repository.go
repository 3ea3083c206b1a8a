package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// CardRepository defines persistence access for cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	Update(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	List(ctx context.Context, filter CardFilter) ([]domain.Card, error)
}

// CardFilter narrows card listings; zero values match everything.
type CardFilter struct {
	ColumnID   string
	SwimlaneID string
}

type cardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository returns a Postgres-backed implementation.
func NewCardRepository(pool *pgxpool.Pool) CardRepository {
	return &cardRepository{pool: pool}
}

const cardColumns = `id, swimlane_id, column_id, priority_id, status_id, name, description, removed, created_at, updated_at`

func scanCard(row pgx.Row) (*domain.Card, error) {
	var card domain.Card
	if err := row.Scan(
		&card.ID,
		&card.SwimlaneID,
		&card.ColumnID,
		&card.PriorityID,
		&card.StatusID,
		&card.Name,
		&card.Description,
		&card.Removed,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	const query = `
        INSERT INTO cards (swimlane_id, column_id, priority_id, status_id, name, description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		card.SwimlaneID,
		card.ColumnID,
		card.PriorityID,
		card.StatusID,
		card.Name,
		card.Description,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	const query = `
        UPDATE cards
        SET swimlane_id=$1, column_id=$2, priority_id=$3, status_id=$4,
            name=$5, description=$6, removed=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		card.SwimlaneID,
		card.ColumnID,
		card.PriorityID,
		card.StatusID,
		card.Name,
		card.Description,
		card.Removed,
		card.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	const query = `SELECT ` + cardColumns + ` FROM cards WHERE id=$1 AND removed=FALSE`
	return scanCard(r.pool.QueryRow(ctx, query, id))
}

func (r *cardRepository) List(ctx context.Context, filter CardFilter) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE removed=FALSE`
	args := []any{}

	if filter.ColumnID != "" {
		args = append(args, filter.ColumnID)
		query += ` AND column_id=$` + strconv.Itoa(len(args))
	}
	if filter.SwimlaneID != "" {
		args = append(args, filter.SwimlaneID)
		query += ` AND swimlane_id=$` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}
