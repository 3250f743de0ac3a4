package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgerossis/book-rental-system/model"
	rentalrepo "github.com/georgerossis/book-rental-system/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalidInput   ErrCode = "INVALID_INPUT"
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrRentalNotFound ErrCode = "RENTAL_NOT_FOUND"
	ErrNoCopies       ErrCode = "NO_COPIES"
	ErrForbidden      ErrCode = "FORBIDDEN"
	ErrNotActive      ErrCode = "NOT_ACTIVE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Ledger is the slice of the rental store the lifecycle needs. The paired
// writes (rental transition + book availability) are atomic inside each
// store call, so no state transition can leave the copy count drifting
// from the number of active rentals.
type Ledger interface {
	Get(ctx context.Context, id int64) (*model.Rental, error)
	CreateActive(ctx context.Context, userID, bookID int64, rentedAt, dueAt time.Time) (*model.Rental, error)
	CompleteReturn(ctx context.Context, rentalID int64, returnedAt time.Time) (*model.Rental, error)
	CompleteCancel(ctx context.Context, rentalID int64) (*model.Rental, error)
	List(ctx context.Context, filterUserID *int64) ([]model.Rental, error)
}

type Service interface {
	// Rent takes one copy of the book and opens an active rental for userID.
	Rent(ctx context.Context, userID, bookID int64) (*model.Rental, error)

	// Return transitions an active rental to returned and frees its copy.
	// Allowed for the owning user or an admin.
	Return(ctx context.Context, userID int64, role model.Role, rentalID int64) (*model.Rental, error)

	// Cancel transitions an active rental to canceled (admin only). The copy
	// is freed but returned_at stays unset.
	Cancel(ctx context.Context, role model.Role, rentalID int64) (*model.Rental, error)

	// List returns rentals newest first. Customers only ever see their own,
	// whatever filter they ask for; admins may filter by user.
	List(ctx context.Context, callerID int64, role model.Role, filterUserID *int64) ([]model.Rental, error)
}

// ----- Service implementation -----

type service struct {
	ledger Ledger
}

func New(ledger Ledger) Service { return &service{ledger: ledger} }

func (s *service) Rent(ctx context.Context, userID, bookID int64) (*model.Rental, error) {
	if userID <= 0 || bookID <= 0 {
		return nil, makeErr(ErrInvalidInput)
	}

	now := time.Now().UTC()
	rental, err := s.ledger.CreateActive(ctx, userID, bookID, now, now.Add(model.LoanPeriod))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, makeErr(ErrBookNotFound)
	case errors.Is(err, rentalrepo.ErrNoCopies):
		return nil, makeErr(ErrNoCopies)
	case err != nil:
		return nil, err
	}
	return rental, nil
}

func (s *service) Return(ctx context.Context, userID int64, role model.Role, rentalID int64) (*model.Rental, error) {
	if userID <= 0 || rentalID <= 0 {
		return nil, makeErr(ErrInvalidInput)
	}

	rental, err := s.ledger.Get(ctx, rentalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrRentalNotFound)
	}
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && rental.UserID != userID {
		return nil, makeErr(ErrForbidden)
	}
	if rental.Status != model.RentalActive {
		return nil, makeErr(ErrNotActive)
	}

	// The guarded transition re-checks the status under lock, so a racing
	// return/cancel resolves to exactly one winner.
	updated, err := s.ledger.CompleteReturn(ctx, rentalID, time.Now().UTC())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, makeErr(ErrRentalNotFound)
	case errors.Is(err, rentalrepo.ErrNotActive):
		return nil, makeErr(ErrNotActive)
	case err != nil:
		return nil, err
	}
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, role model.Role, rentalID int64) (*model.Rental, error) {
	if role != model.RoleAdmin {
		return nil, makeErr(ErrForbidden)
	}
	if rentalID <= 0 {
		return nil, makeErr(ErrInvalidInput)
	}

	updated, err := s.ledger.CompleteCancel(ctx, rentalID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, makeErr(ErrRentalNotFound)
	case errors.Is(err, rentalrepo.ErrNotActive):
		return nil, makeErr(ErrNotActive)
	case err != nil:
		return nil, err
	}
	return updated, nil
}

func (s *service) List(ctx context.Context, callerID int64, role model.Role, filterUserID *int64) ([]model.Rental, error) {
	if callerID <= 0 {
		return nil, makeErr(ErrInvalidInput)
	}

	if role != model.RoleAdmin {
		// Customers are always scoped to themselves.
		filterUserID = &callerID
	}
	return s.ledger.List(ctx, filterUserID)
}
