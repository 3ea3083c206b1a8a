package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// UserRepository defines persistence access for users. Reads only return
// active (non-removed) records; removal is a soft-delete flag.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, role_id, email, name, password_hash, wip_limit, invalidated_at, confirmed, removed, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.RoleID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.WipLimit,
		&user.InvalidatedAt,
		&user.Confirmed,
		&user.Removed,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (role_id, email, name, password_hash, wip_limit, invalidated_at, confirmed)
        VALUES ($1, $2, $3, $4, $5, NOW(), $6)
        RETURNING id, invalidated_at, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.RoleID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.WipLimit,
		user.Confirmed,
	).Scan(&user.ID, &user.InvalidatedAt, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users
        SET role_id=$1, email=$2, name=$3, password_hash=$4, wip_limit=$5,
            invalidated_at=$6, confirmed=$7, removed=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.RoleID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.WipLimit,
		user.InvalidatedAt,
		user.Confirmed,
		user.Removed,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1 AND removed=FALSE`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1 AND removed=FALSE`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE removed=FALSE ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
