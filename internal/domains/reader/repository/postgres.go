package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/reader"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) reader.Repository {
	return &postgresRepository{pool: pool}
}

// GetOrCreate upsert theo natural key (email)
// ON CONFLICT DO UPDATE với no-op assignment để RETURNING trả về row đang tồn tại
func (r *postgresRepository) GetOrCreate(ctx context.Context, email, name, phone string) (*reader.Reader, error) {
	query := `
		INSERT INTO readers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, name, email, phone, created_at
	`

	var rd reader.Reader
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), name, email, phone, time.Now(),
	).Scan(&rd.ID, &rd.Name, &rd.Email, &rd.Phone, &rd.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*reader.Reader, error) {
	var rd reader.Reader
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, created_at FROM readers WHERE email = $1`, email,
	).Scan(&rd.ID, &rd.Name, &rd.Email, &rd.Phone, &rd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reader.ErrReaderNotFound
		}
		return nil, err
	}
	return &rd, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM readers`).Scan(&count)
	return count, err
}
