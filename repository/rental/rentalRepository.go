// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/georgerossis/book-rental-system/model"
)

// Guard outcomes surfaced to the service layer. Both are produced by
// conditional UPDATEs, so concurrent callers racing on the same row see
// exactly one winner.
var (
	ErrNoCopies  = errors.New("no available copies")
	ErrNotActive = errors.New("rental not active")
)

type Repo interface {
	Get(ctx context.Context, id int64) (*model.Rental, error)

	// CreateActive decrements the book's available_copies (guarded by
	// available_copies > 0) and inserts an active rental, as one
	// transaction. Returns sql.ErrNoRows when the book does not exist and
	// ErrNoCopies when it is out of stock.
	CreateActive(ctx context.Context, userID, bookID int64, rentedAt, dueAt time.Time) (*model.Rental, error)

	// CompleteReturn transitions an active rental to returned and gives the
	// copy back to the book, as one transaction. Returns sql.ErrNoRows when
	// the rental does not exist and ErrNotActive when it already left the
	// active state.
	CompleteReturn(ctx context.Context, rentalID int64, returnedAt time.Time) (*model.Rental, error)

	// CompleteCancel is CompleteReturn without setting returned_at.
	CompleteCancel(ctx context.Context, rentalID int64) (*model.Rental, error)

	List(ctx context.Context, filterUserID *int64) ([]model.Rental, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// txAttempts bounds retries of transactions aborted by write contention.
const txAttempts = 3

// inTx runs fn inside a transaction, retrying when Postgres aborts it with
// a serialization failure or deadlock. Any other error rolls back and
// surfaces immediately.
func (r *repo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 0; attempt < txAttempts; attempt++ {
		var tx *sql.Tx
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err = fn(tx); err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

const rentalCols = `id, user_id, book_id, status, rented_at, due_at, returned_at, created_at`

func scanRental(scan func(dest ...any) error) (*model.Rental, error) {
	var rt model.Rental
	err := scan(
		&rt.ID, &rt.UserID, &rt.BookID, &rt.Status,
		&rt.RentedAt, &rt.DueAt, &rt.ReturnedAt, &rt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM rentals WHERE id = $1`
	return scanRental(r.db.QueryRowContext(ctx, q, id).Scan)
}

func (r *repo) CreateActive(ctx context.Context, userID, bookID int64, rentedAt, dueAt time.Time) (*model.Rental, error) {
	rental := &model.Rental{
		UserID:   userID,
		BookID:   bookID,
		Status:   model.RentalActive,
		RentedAt: rentedAt,
		DueAt:    dueAt,
	}
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		const take = `
			UPDATE books
			SET available_copies = available_copies - 1,
			    updated_at = now()
			WHERE id = $1
			AND available_copies > 0`
		res, err := tx.ExecContext(ctx, take, bookID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID,
			).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return sql.ErrNoRows
			}
			return ErrNoCopies
		}

		const ins = `
			INSERT INTO rentals (user_id, book_id, status, rented_at, due_at)
			VALUES ($1, $2, 'active', $3, $4)
			RETURNING id, created_at`
		return tx.QueryRowContext(ctx, ins, userID, bookID, rentedAt, dueAt).
			Scan(&rental.ID, &rental.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repo) CompleteReturn(ctx context.Context, rentalID int64, returnedAt time.Time) (*model.Rental, error) {
	const q = `
		UPDATE rentals
		SET status = 'returned',
		    returned_at = $2
		WHERE id = $1
		AND status = 'active'
		RETURNING ` + rentalCols
	return r.transition(ctx, rentalID, q, returnedAt)
}

func (r *repo) CompleteCancel(ctx context.Context, rentalID int64) (*model.Rental, error) {
	const q = `
		UPDATE rentals
		SET status = 'canceled'
		WHERE id = $1
		AND status = 'active'
		RETURNING ` + rentalCols
	return r.transition(ctx, rentalID, q)
}

// transition runs a guarded status UPDATE and, when it wins, hands the copy
// back to the book. The ceiling guard never fires in steady state because
// every increment pairs with an earlier decrement.
func (r *repo) transition(ctx context.Context, rentalID int64, update string, args ...any) (*model.Rental, error) {
	var rental *model.Rental
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		qargs := append([]any{rentalID}, args...)
		rt, err := scanRental(tx.QueryRowContext(ctx, update, qargs...).Scan)
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM rentals WHERE id = $1)`, rentalID,
			).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return sql.ErrNoRows
			}
			return ErrNotActive
		}
		if err != nil {
			return err
		}

		const free = `
			UPDATE books
			SET available_copies = available_copies + 1,
			    updated_at = now()
			WHERE id = $1
			AND available_copies < total_copies`
		if _, err := tx.ExecContext(ctx, free, rt.BookID); err != nil {
			return err
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repo) List(ctx context.Context, filterUserID *int64) ([]model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		WHERE $1::BIGINT IS NULL OR user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, filterUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var rt model.Rental
		if err := rows.Scan(
			&rt.ID, &rt.UserID, &rt.BookID, &rt.Status,
			&rt.RentedAt, &rt.DueAt, &rt.ReturnedAt, &rt.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
