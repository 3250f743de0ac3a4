package booksvc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/georgerossis/book-rental-system/model"
	bookrepo "github.com/georgerossis/book-rental-system/repository/book"
	"github.com/georgerossis/book-rental-system/util/cache"
)

var (
	ErrNotFound  = errors.New("book not found")
	ErrISBNTaken = errors.New("isbn already registered")
	ErrBadInput  = errors.New("bad input")
)

// listKey caches the catalog listing. The TTL is short on purpose: rentals
// shift available_copies without going through this service, and a few
// seconds of drift in the listing is acceptable.
const (
	listKey = "books:list"
	listTTL = 30 * time.Second
)

type Repo = bookrepo.Repo

type Service interface {
	Create(ctx context.Context, req model.CreateBookReq) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type service struct {
	r Repo
	c cache.Client // nil disables caching
}

func New(r Repo, c cache.Client) Service { return &service{r: r, c: c} }

func (s *service) Create(ctx context.Context, req model.CreateBookReq) (*model.Book, error) {
	if strings.TrimSpace(req.ISBN) == "" {
		return nil, ErrBadInput
	}
	b := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          strings.TrimSpace(req.ISBN),
		Description:   req.Description,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
		TotalCopies:   req.TotalCopies,
	}
	if err := s.r.Create(ctx, b); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error) {
	if req.ISBN != nil {
		trimmed := strings.TrimSpace(*req.ISBN)
		if trimmed == "" {
			return nil, ErrBadInput
		}
		req.ISBN = &trimmed
	}

	b, err := s.r.Update(ctx, id, req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	// refill only on a clean miss (or a corrupt entry); a degraded cache is
	// skipped entirely rather than written to
	miss := false
	if s.c != nil {
		raw, err := s.c.Get(ctx, listKey)
		switch {
		case err == nil:
			var books []model.Book
			if json.Unmarshal([]byte(raw), &books) == nil {
				return books, nil
			}
			miss = true
		case errors.Is(err, cache.ErrMiss):
			miss = true
		}
	}

	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if miss {
		if raw, err := json.Marshal(books); err == nil {
			_ = s.c.Set(ctx, listKey, string(raw), listTTL)
		}
	}
	return books, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.c != nil {
		_ = s.c.Delete(ctx, listKey)
	}
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn") ||
			strings.Contains(strings.ToLower(pgErr.Message), "isbn") {
			return ErrISBNTaken
		}
		return ErrBadInput
	}
	return nil
}
