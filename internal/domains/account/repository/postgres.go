package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/account"
)

// postgresRepository là concrete implementation của account.Repository
// Private struct - "hide implementation, expose interface"
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) account.Repository {
	return &postgresRepository{pool: pool}
}

const accountColumns = `
	id, username, email, password_hash, full_name, phone, role,
	last_login_at, created_at, updated_at
`

func (r *postgresRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (
			id, username, email, password_hash, full_name, phone, role,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		a.FullName,
		a.Phone,
		a.Role,
		a.CreatedAt,
		a.UpdatedAt,
	)

	if err != nil {
		// 23505 = unique_violation → map sang domain error
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return account.ErrUsernameAlreadyExists
			}
			return account.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	return exists, err
}

func (r *postgresRepository) Update(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET email = $2, full_name = $3, phone = $4, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, a.ID, a.Email, a.FullName, a.Phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE accounts SET last_login_at = now() WHERE id = $1`, id)
	return err
}

func (r *postgresRepository) scanOne(row pgx.Row) (*account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.FullName,
		&a.Phone,
		&a.Role,
		&a.LastLoginAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}
