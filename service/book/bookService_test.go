// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/georgerossis/book-rental-system/model"
	booksvc "github.com/georgerossis/book-rental-system/service/book"
	"github.com/georgerossis/book-rental-system/util/cache"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	getFn    func(ctx context.Context, id int64) (*model.Book, error)
	isbnFn   func(ctx context.Context, isbn string) (*model.Book, error)
	updateFn func(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context) ([]model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return m.isbnFn(ctx, isbn)
}
func (m *repoMock) Update(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error) {
	return m.updateFn(ctx, id, req)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) List(ctx context.Context) ([]model.Book, error) {
	return m.listFn(ctx)
}

// mapCache is an in-memory cache.Client; TTLs are ignored.
type mapCache struct{ m map[string]string }

func newMapCache() *mapCache { return &mapCache{m: make(map[string]string)} }

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.m[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}
func (c *mapCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.m[key] = value
	return nil
}
func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.m, key)
	return nil
}

func TestCreate_BlankISBN(t *testing.T) {
	s := booksvc.New(&repoMock{}, nil)
	_, err := s.Create(context.Background(), model.CreateBookReq{
		Title: "t", Author: "a", ISBN: "  ", Genre: "g", PublishedYear: 2000, TotalCopies: 1,
	})
	if !errors.Is(err, booksvc.ErrBadInput) {
		t.Fatalf("want ErrBadInput, got %v", err)
	}
}

func TestUpdate_BlankISBN(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error) {
			t.Fatal("repo must not be reached with a blank isbn")
			return nil, nil
		},
	}
	s := booksvc.New(m, nil)
	isbn := "  "
	_, err := s.Update(context.Background(), 1, model.UpdateBookReq{ISBN: &isbn})
	if !errors.Is(err, booksvc.ErrBadInput) {
		t.Fatalf("want ErrBadInput, got %v", err)
	}
}

func TestUpdate_TrimsISBN(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookReq) (*model.Book, error) {
			if req.ISBN == nil || *req.ISBN != "9780441013593" {
				return nil, errors.New("isbn not trimmed")
			}
			return &model.Book{ID: id, ISBN: *req.ISBN}, nil
		},
	}
	s := booksvc.New(m, nil)
	isbn := " 9780441013593 "
	b, err := s.Update(context.Background(), 1, model.UpdateBookReq{ISBN: &isbn})
	if err != nil || b.ISBN != "9780441013593" {
		t.Fatalf("got %+v err=%v; want trimmed isbn stored", b, err)
	}
}

func TestCreate_SetsAvailableFromTotal(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			if b.TotalCopies != 3 {
				return errors.New("bad args")
			}
			b.ID = 7
			b.AvailableCopies = b.TotalCopies
			return nil
		},
	}
	s := booksvc.New(m, nil)
	b, err := s.Create(context.Background(), model.CreateBookReq{
		Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593",
		Genre: "Sci-Fi", PublishedYear: 1965, TotalCopies: 3,
	})
	if err != nil || b.ID != 7 || b.AvailableCopies != 3 {
		t.Fatalf("got %+v err=%v; want id=7 available=3", b, err)
	}
}

func TestList_CachesResult(t *testing.T) {
	calls := 0
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			calls++
			return []model.Book{{ID: 1, Title: "Dune"}}, nil
		},
	}
	s := booksvc.New(m, newMapCache())

	for i := 0; i < 3; i++ {
		books, err := s.List(context.Background())
		if err != nil || len(books) != 1 {
			t.Fatalf("List #%d: got %v err=%v", i, books, err)
		}
	}
	if calls != 1 {
		t.Fatalf("repo hit %d times; want 1 (cache should serve repeats)", calls)
	}
}

// errCache fails every read with something other than cache.ErrMiss and
// records whether a write was attempted.
type errCache struct{ sets int }

func (c *errCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}
func (c *errCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	return nil
}
func (c *errCache) Delete(ctx context.Context, key string) error { return nil }

func TestList_DegradedCacheSkipsRefill(t *testing.T) {
	c := &errCache{}
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			return []model.Book{{ID: 1, Title: "Dune"}}, nil
		},
	}
	s := booksvc.New(m, c)

	books, err := s.List(context.Background())
	if err != nil || len(books) != 1 {
		t.Fatalf("got %v err=%v; want listing served from repo", books, err)
	}
	if c.sets != 0 {
		t.Fatalf("cache written %d times; a failing cache must not be refilled", c.sets)
	}
}

func TestList_CorruptEntryRefilled(t *testing.T) {
	c := newMapCache()
	c.m["books:list"] = "{not json"
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			return []model.Book{{ID: 1, Title: "Dune"}}, nil
		},
	}
	s := booksvc.New(m, c)

	books, err := s.List(context.Background())
	if err != nil || len(books) != 1 {
		t.Fatalf("got %v err=%v; want listing served from repo", books, err)
	}
	if c.m["books:list"] == "{not json" {
		t.Fatal("expected corrupt entry replaced")
	}
}

func TestDelete_InvalidatesCache(t *testing.T) {
	c := newMapCache()
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			return []model.Book{{ID: 1}}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	s := booksvc.New(m, c)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(c.m) == 0 {
		t.Fatal("expected cached listing")
	}
	if err := s.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(c.m) != 0 {
		t.Fatal("expected cache invalidated after delete")
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := booksvc.New(m, nil)
	if _, err := s.Detail(context.Background(), 99); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
