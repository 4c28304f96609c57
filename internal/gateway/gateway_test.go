package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
	"github.com/MrSnakeDoc/bookmarkd/internal/store/memory"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Insert(ctx context.Context, nb domain.NewBookmark) (domain.Bookmark, error) {
	args := m.Called(ctx, nb)
	return args.Get(0).(domain.Bookmark), args.Error(1)
}

func (m *mockStore) SelectAll(ctx context.Context) ([]domain.Bookmark, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]domain.Bookmark)
	return all, args.Error(1)
}

func (m *mockStore) SelectByID(ctx context.Context, id int64) (domain.Bookmark, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Bookmark), args.Bool(1), args.Error(2)
}

func (m *mockStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var errDriver = errors.New("driver: connection refused")

func TestGateway_Roundtrip(t *testing.T) {
	g := New(memory.NewStore())
	ctx := context.Background()

	all, err := g.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	created, err := g.Create(ctx, domain.NewBookmark{Title: "t", URL: "u", Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := g.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.NoError(t, g.Delete(ctx, created.ID))

	_, err = g.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, g.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestGateway_DeleteChecksExistenceFirst(t *testing.T) {
	store := &mockStore{}
	store.On("SelectByID", mock.Anything, int64(123)).Return(domain.Bookmark{}, false, nil)

	err := New(store).Delete(context.Background(), 123)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, IsStorageError(err))
	store.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestGateway_DeleteLostRace(t *testing.T) {
	store := &mockStore{}
	store.On("SelectByID", mock.Anything, int64(7)).Return(domain.Bookmark{ID: 7}, true, nil)
	store.On("DeleteByID", mock.Anything, int64(7)).Return(int64(0), nil)

	err := New(store).Delete(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	store.AssertExpectations(t)
}

func TestGateway_StorageErrors(t *testing.T) {
	store := &mockStore{}
	store.On("Insert", mock.Anything, mock.Anything).Return(domain.Bookmark{}, errDriver)
	store.On("SelectAll", mock.Anything).Return(nil, errDriver)
	store.On("SelectByID", mock.Anything, int64(1)).Return(domain.Bookmark{}, false, errDriver)
	store.On("SelectByID", mock.Anything, int64(2)).Return(domain.Bookmark{ID: 2}, true, nil)
	store.On("DeleteByID", mock.Anything, int64(2)).Return(int64(0), errDriver)

	g := New(store)
	ctx := context.Background()

	_, err := g.Create(ctx, domain.NewBookmark{Title: "t", URL: "u", Rating: 1})
	assertStorageError(t, err, "insert")

	_, err = g.List(ctx)
	assertStorageError(t, err, "select all")

	_, err = g.Get(ctx, 1)
	assertStorageError(t, err, "select by id")

	err = g.Delete(ctx, 1)
	assertStorageError(t, err, "select by id")

	err = g.Delete(ctx, 2)
	assertStorageError(t, err, "delete by id")
}

func TestGateway_ListNeverNil(t *testing.T) {
	store := &mockStore{}
	store.On("SelectAll", mock.Anything).Return(nil, nil)

	all, err := New(store).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
}

func TestNew_NilStorePanics(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func assertStorageError(t *testing.T, err error, op string) {
	t.Helper()
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, op, se.Op)
	assert.ErrorIs(t, err, errDriver)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
