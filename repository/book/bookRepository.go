package bookrepo

import (
	"context"
	"database/sql"

	"github.com/georgerossis/book-rental-system/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Get(ctx context.Context, id int64) (*model.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const bookCols = `id, title, author, isbn, description, genre, published_year,
	total_copies, available_copies, created_at, updated_at`

func scanBook(row *sql.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.Genre,
		&b.PublishedYear, &b.TotalCopies, &b.AvailableCopies,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (title, author, isbn, description, genre, published_year,
		                   total_copies, available_copies)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		RETURNING id, available_copies, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.Description, b.Genre, b.PublishedYear, b.TotalCopies,
	).Scan(&b.ID, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE id = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE isbn = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, isbn))
}

// Update applies the non-nil fields of req. A total_copies change shifts
// available_copies by the same delta so active rentals stay accounted for;
// the floor guard keeps the count non-negative.
func (r *repo) Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error) {
	const q = `
		UPDATE books
		SET title           = COALESCE($2, title),
		    author          = COALESCE($3, author),
		    isbn            = COALESCE($4, isbn),
		    description     = COALESCE($5, description),
		    genre           = COALESCE($6, genre),
		    published_year  = COALESCE($7, published_year),
		    available_copies = GREATEST(0, available_copies + COALESCE($8, total_copies) - total_copies),
		    total_copies    = COALESCE($8, total_copies),
		    updated_at      = now()
		WHERE id = $1
		RETURNING ` + bookCols
	return scanBook(r.db.QueryRowContext(ctx, q, id,
		req.Title, req.Author, req.ISBN, req.Description, req.Genre,
		req.PublishedYear, req.TotalCopies,
	))
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM books WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.Genre,
			&b.PublishedYear, &b.TotalCopies, &b.AvailableCopies,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
