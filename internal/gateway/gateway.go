// Package gateway translates validated bookmark intents into storage calls
// and separates "no such record" from storage faults.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
)

// Store is the relational pass-through the gateway drives.
// SelectByID reports absence with found=false, never with an error.
// DeleteByID returns the number of rows removed.
type Store interface {
	Insert(ctx context.Context, nb domain.NewBookmark) (domain.Bookmark, error)
	SelectAll(ctx context.Context) ([]domain.Bookmark, error)
	SelectByID(ctx context.Context, id int64) (b domain.Bookmark, found bool, err error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// StorageError wraps any failure coming from the Store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is (or wraps) a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Gateway is stateless apart from its Store; one instance serves every request.
type Gateway struct {
	store Store
}

// New returns a Gateway bound to store.
func New(store Store) *Gateway {
	if store == nil {
		panic("gateway: store cannot be nil")
	}
	return &Gateway{store: store}
}

// Create inserts nb and returns the stored record with its assigned id.
func (g *Gateway) Create(ctx context.Context, nb domain.NewBookmark) (domain.Bookmark, error) {
	b, err := g.store.Insert(ctx, nb)
	if err != nil {
		return domain.Bookmark{}, &StorageError{Op: "insert", Err: err}
	}
	return b, nil
}

// List returns every stored bookmark in insertion order.
// An empty collection yields an empty, non-nil slice.
func (g *Gateway) List(ctx context.Context) ([]domain.Bookmark, error) {
	all, err := g.store.SelectAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "select all", Err: err}
	}
	if all == nil {
		all = []domain.Bookmark{}
	}
	return all, nil
}

// Get returns the bookmark with the given id, or domain.ErrNotFound.
func (g *Gateway) Get(ctx context.Context, id int64) (domain.Bookmark, error) {
	b, found, err := g.store.SelectByID(ctx, id)
	if err != nil {
		return domain.Bookmark{}, &StorageError{Op: "select by id", Err: err}
	}
	if !found {
		return domain.Bookmark{}, domain.ErrNotFound
	}
	return b, nil
}

// Delete removes the bookmark with the given id.
// Existence is checked first so that "never existed" is reported as
// domain.ErrNotFound instead of a silent zero-row delete.
func (g *Gateway) Delete(ctx context.Context, id int64) error {
	if _, err := g.Get(ctx, id); err != nil {
		return err
	}

	n, err := g.store.DeleteByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "delete by id", Err: err}
	}
	// Lost a race with a concurrent delete.
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
