// Package memory is an in-process bookmark store for development and tests.
// It mimics the relational table: ids come from a sequence and are never reused.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
)

// Store keeps bookmarks in a map guarded by a RWMutex.
type Store struct {
	mu        sync.RWMutex
	bookmarks map[int64]domain.Bookmark // ID -> Bookmark
	nextID    int64
}

// NewStore creates an empty store. The first id handed out is 1.
func NewStore() *Store {
	return &Store{
		bookmarks: make(map[int64]domain.Bookmark),
		nextID:    1,
	}
}

// Insert assigns the next id and stores a copy of nb.
func (s *Store) Insert(_ context.Context, nb domain.NewBookmark) (domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := domain.Bookmark{
		ID:          s.nextID,
		Title:       nb.Title,
		URL:         nb.URL,
		Description: cloneString(nb.Description),
		Rating:      nb.Rating,
	}
	s.nextID++
	s.bookmarks[b.ID] = b

	return clone(b), nil
}

// SelectAll returns every bookmark ordered by id.
func (s *Store) SelectAll(_ context.Context) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		all = append(all, clone(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// SelectByID retrieves a bookmark by id.
func (s *Store) SelectByID(_ context.Context, id int64) (domain.Bookmark, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	if !ok {
		return domain.Bookmark{}, false, nil
	}
	return clone(b), true, nil
}

// DeleteByID removes a bookmark and reports how many rows went away (0 or 1).
func (s *Store) DeleteByID(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarks[id]; !ok {
		return 0, nil
	}
	delete(s.bookmarks, id)
	return 1, nil
}

// Ping always succeeds; it lets the memory store stand in for a database in readiness checks.
func (s *Store) Ping(context.Context) error { return nil }

// Count returns the number of stored bookmarks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bookmarks)
}

func clone(b domain.Bookmark) domain.Bookmark {
	b.Description = cloneString(b.Description)
	return b
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
