package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

// bookSelect join category name để catalog listing không cần query thêm
const bookSelect = `
	SELECT b.id, b.title, b.author, b.category_id, c.name,
	       b.quantity, b.available, b.image_key, b.image_url,
	       b.created_at, b.updated_at
	FROM books b
	LEFT JOIN categories c ON c.id = b.category_id
`

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, category_id, quantity, available,
			image_key, image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.CategoryID,
		b.Quantity,
		b.Available,
		b.ImageKey,
		b.ImageURL,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	row := r.pool.QueryRow(ctx, bookSelect+` WHERE b.id = $1`, id)
	return scanBook(row)
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, category_id = $4,
		    quantity = $5, available = $6,
		    image_key = $7, image_url = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Author, b.CategoryID,
		b.Quantity, b.Available,
		b.ImageKey, b.ImageURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike vô hiệu hóa LIKE metacharacters trong input của user:
// search "100%" phải match đúng chuỗi "100%" chứ không phải mọi title
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Search - free-text substring match (title/author/category, OR-combined)
// AND exact category-name filter khi có. Cả hai đều case-insensitive.
func (r *postgresRepository) Search(ctx context.Context, filter book.SearchFilter) ([]book.Book, error) {
	query := bookSelect + `
		WHERE ($1 = ''
			OR b.title ILIKE '%' || $1 || '%' ESCAPE '\'
			OR b.author ILIKE '%' || $1 || '%' ESCAPE '\'
			OR c.name ILIKE '%' || $1 || '%' ESCAPE '\')
		AND ($2 = '' OR lower(c.name) = lower($2))
		ORDER BY b.created_at, b.id
	`

	rows, err := r.pool.Query(ctx, query, escapeLike(filter.Query), filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (r *postgresRepository) ListLowStock(ctx context.Context, threshold int) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx,
		bookSelect+` WHERE b.available < $1 ORDER BY b.available, b.title`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&count)
	return count, err
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.CategoryID,
		&b.CategoryName,
		&b.Quantity,
		&b.Available,
		&b.ImageKey,
		&b.ImageURL,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func scanBooks(rows pgx.Rows) ([]book.Book, error) {
	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.CategoryID,
			&b.CategoryName,
			&b.Quantity,
			&b.Available,
			&b.ImageKey,
			&b.ImageURL,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
