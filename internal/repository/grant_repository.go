package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// GrantRepository reads and mutates role→privilege associations.
type GrantRepository interface {
	Create(ctx context.Context, grant *domain.PrivilegeGrant) error
	GetByID(ctx context.Context, id string) (*domain.PrivilegeGrant, error)
	// FindActiveGrants returns every active grant held by the role. The
	// result set carries no ordering contract.
	FindActiveGrants(ctx context.Context, roleID string) ([]domain.PrivilegeGrant, error)
	// FindActive looks up the single active grant for a (role, privilege)
	// pair, used to reject duplicates at creation time.
	FindActive(ctx context.Context, roleID string, privilege domain.Privilege) (*domain.PrivilegeGrant, error)
	List(ctx context.Context, roleID string) ([]domain.PrivilegeGrant, error)
	SoftDelete(ctx context.Context, id string) error
}

type grantRepository struct {
	pool *pgxpool.Pool
}

// NewGrantRepository returns a Postgres-backed implementation.
func NewGrantRepository(pool *pgxpool.Pool) GrantRepository {
	return &grantRepository{pool: pool}
}

func (r *grantRepository) Create(ctx context.Context, grant *domain.PrivilegeGrant) error {
	const query = `
        INSERT INTO privilege_grants (role_id, privilege)
        VALUES ($1, $2)
        RETURNING id`

	return r.pool.QueryRow(ctx, query, grant.RoleID, grant.Privilege).Scan(&grant.ID)
}

func (r *grantRepository) GetByID(ctx context.Context, id string) (*domain.PrivilegeGrant, error) {
	const query = `
        SELECT id, role_id, privilege, removed
        FROM privilege_grants WHERE id=$1 AND removed=FALSE`

	var grant domain.PrivilegeGrant
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&grant.ID,
		&grant.RoleID,
		&grant.Privilege,
		&grant.Removed,
	); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *grantRepository) FindActiveGrants(ctx context.Context, roleID string) ([]domain.PrivilegeGrant, error) {
	const query = `
        SELECT id, role_id, privilege, removed
        FROM privilege_grants WHERE role_id=$1 AND removed=FALSE`

	return r.queryGrants(ctx, query, roleID)
}

func (r *grantRepository) FindActive(ctx context.Context, roleID string, privilege domain.Privilege) (*domain.PrivilegeGrant, error) {
	const query = `
        SELECT id, role_id, privilege, removed
        FROM privilege_grants WHERE role_id=$1 AND privilege=$2 AND removed=FALSE`

	var grant domain.PrivilegeGrant
	if err := r.pool.QueryRow(ctx, query, roleID, privilege).Scan(
		&grant.ID,
		&grant.RoleID,
		&grant.Privilege,
		&grant.Removed,
	); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *grantRepository) List(ctx context.Context, roleID string) ([]domain.PrivilegeGrant, error) {
	if roleID != "" {
		return r.FindActiveGrants(ctx, roleID)
	}

	const query = `
        SELECT id, role_id, privilege, removed
        FROM privilege_grants WHERE removed=FALSE`

	return r.queryGrants(ctx, query)
}

func (r *grantRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE privilege_grants SET removed=TRUE WHERE id=$1 AND removed=FALSE`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *grantRepository) queryGrants(ctx context.Context, query string, args ...any) ([]domain.PrivilegeGrant, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.PrivilegeGrant
	for rows.Next() {
		var grant domain.PrivilegeGrant
		if err := rows.Scan(&grant.ID, &grant.RoleID, &grant.Privilege, &grant.Removed); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}
