package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/agent-portal/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	// CreateAgent inserts the account and forces its role to AGENT in
	// one transaction, regardless of the store's default role.
	CreateAgent(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) CreateAgent(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertQuery = `
        INSERT INTO users (name, email, phone, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id, role, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertQuery,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
	).Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	const promoteQuery = `
        UPDATE users SET role=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING role, updated_at`

	if err := tx.QueryRow(ctx, promoteQuery,
		domain.UserRoleAgent,
		user.ID,
	).Scan(&user.Role, &user.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, role, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, role, created_at, updated_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
