package usersvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georgerossis/book-rental-system/model"
	"github.com/georgerossis/book-rental-system/util/hash"
)

type mockRepo struct {
	createFn func(ctx context.Context, u *model.User) error
	getFn    func(ctx context.Context, id int64) (*model.User, error)
	updateFn func(ctx context.Context, u *model.User) error
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context) ([]model.User, error)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *mockRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	return m.getFn(ctx, id)
}
func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (m *mockRepo) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *mockRepo) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }
func (m *mockRepo) List(ctx context.Context) ([]model.User, error)  { return m.listFn(ctx) }

func TestCreate_DefaultsToCustomer(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 5
			return nil
		},
	}
	svc := New(m)

	u, err := svc.Create(context.Background(), model.CreateUserReq{
		Name: "Ann", Email: "Ann@Example.com", Password: "123456",
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleCustomer, u.Role)
	require.Equal(t, "ann@example.com", u.Email)
	require.True(t, u.Active)
	require.True(t, hash.Check(u.PasswordHash, "123456"))
}

func TestUpdate_PartialFields(t *testing.T) {
	stored := &model.User{
		ID: 5, Name: "Ann", Email: "ann@example.com",
		PasswordHash: "oldhash", Role: model.RoleCustomer, Active: true,
	}
	m := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*model.User, error) {
			cp := *stored
			return &cp, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error { return nil },
	}
	svc := New(m)

	role := model.RoleAdmin
	inactive := false
	u, err := svc.Update(context.Background(), 5, model.UpdateUserReq{
		Role:   &role,
		Active: &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, u.Role)
	require.False(t, u.Active)
	// untouched fields survive
	require.Equal(t, "Ann", u.Name)
	require.Equal(t, "oldhash", u.PasswordHash)
}

func TestUpdate_RehashesPassword(t *testing.T) {
	m := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 5, PasswordHash: "oldhash"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error { return nil },
	}
	svc := New(m)

	pw := "newsecret"
	u, err := svc.Update(context.Background(), 5, model.UpdateUserReq{Password: &pw})
	require.NoError(t, err)
	require.NotEqual(t, "oldhash", u.PasswordHash)
	require.True(t, hash.Check(u.PasswordHash, pw))
}

func TestUpdate_NotFound(t *testing.T) {
	m := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.Update(context.Background(), 99, model.UpdateUserReq{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error { return sql.ErrNoRows },
	}
	svc := New(m)
	require.ErrorIs(t, svc.Delete(context.Background(), 99), ErrNotFound)
}
