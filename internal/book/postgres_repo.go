package book

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = "id, title, author, synopsis, rating, rating_source, category, cover, resources, added_by, added_at, status, votes, reviews"

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = "SELECT " + bookColumns + " FROM books ORDER BY added_at"

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Book, error) {
	const query = "SELECT " + bookColumns + " FROM books WHERE id = $1"

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	row := r.db.QueryRow(timeoutCtx, query, id)

	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, title, author, synopsis, rating, rating_source, category, cover,
		                   resources, added_by, added_at, status, votes, reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	resources, votes, reviews, err := marshalDocuments(b)
	if err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err = r.db.Exec(timeoutCtx, sql,
		b.ID, b.Title, b.Author, b.Synopsis, b.Rating, b.RatingSource, b.Category, b.Cover,
		resources, b.AddedBy, b.AddedAt, b.Status, votes, reviews,
	)
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const sql = `
		UPDATE books
		SET title = $2, author = $3, synopsis = $4, rating = $5, rating_source = $6,
		    category = $7, cover = $8, resources = $9, status = $10, votes = $11, reviews = $12
		WHERE id = $1`

	resources, votes, reviews, err := marshalDocuments(b)
	if err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		b.ID, b.Title, b.Author, b.Synopsis, b.Rating, b.RatingSource,
		b.Category, b.Cover, resources, b.Status, votes, reviews,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalDocuments(b *Book) (resources, votes, reviews []byte, err error) {
	if resources, err = json.Marshal(b.Resources); err != nil {
		return nil, nil, nil, err
	}
	if votes, err = json.Marshal(b.Votes); err != nil {
		return nil, nil, nil, err
	}
	if reviews, err = json.Marshal(b.Reviews); err != nil {
		return nil, nil, nil, err
	}
	return resources, votes, reviews, nil
}

func scanBook(row pgx.Row) (Book, error) {
	var (
		b         Book
		resources []byte
		votes     []byte
		reviews   []byte
	)
	if err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Synopsis, &b.Rating, &b.RatingSource,
		&b.Category, &b.Cover, &resources, &b.AddedBy, &b.AddedAt, &b.Status,
		&votes, &reviews,
	); err != nil {
		return Book{}, err
	}
	if err := json.Unmarshal(resources, &b.Resources); err != nil {
		return Book{}, err
	}
	if err := json.Unmarshal(votes, &b.Votes); err != nil {
		return Book{}, err
	}
	if err := json.Unmarshal(reviews, &b.Reviews); err != nil {
		return Book{}, err
	}
	return b, nil
}
