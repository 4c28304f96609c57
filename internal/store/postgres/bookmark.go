// Package postgres implements the bookmark store on a PostgreSQL table
// through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	insertBookmark = `
		INSERT INTO bookmarks (title, url, description, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, url, description, rating`

	selectAllBookmarks = `
		SELECT id, title, url, description, rating
		FROM bookmarks
		ORDER BY id`

	selectBookmarkByID = `
		SELECT id, title, url, description, rating
		FROM bookmarks
		WHERE id = $1`

	deleteBookmarkByID = `DELETE FROM bookmarks WHERE id = $1`
)

// Store is the relational bookmark table.
type Store struct {
	db DBTX
}

// NewStore wraps a connection, pool or transaction owned by the caller.
func NewStore(db DBTX) *Store {
	if db == nil {
		panic("postgres: db cannot be nil")
	}
	return &Store{db: db}
}

// Insert adds a row and returns it with the id assigned by the identity column.
func (s *Store) Insert(ctx context.Context, nb domain.NewBookmark) (domain.Bookmark, error) {
	row := s.db.QueryRow(ctx, insertBookmark, nb.Title, nb.URL, nb.Description, nb.Rating)
	b, err := scanBookmark(row)
	if err != nil {
		return domain.Bookmark{}, MapError(fmt.Errorf("insert bookmark: %w", err))
	}
	return b, nil
}

// SelectAll returns every row ordered by id.
func (s *Store) SelectAll(ctx context.Context) ([]domain.Bookmark, error) {
	rows, err := s.db.Query(ctx, selectAllBookmarks)
	if err != nil {
		return nil, MapError(fmt.Errorf("select bookmarks: %w", err))
	}
	defer rows.Close()

	all := make([]domain.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, MapError(fmt.Errorf("scan bookmark: %w", err))
		}
		all = append(all, b)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(fmt.Errorf("iterate bookmarks: %w", err))
	}
	return all, nil
}

// SelectByID returns found=false when no row matches.
func (s *Store) SelectByID(ctx context.Context, id int64) (domain.Bookmark, bool, error) {
	b, err := scanBookmark(s.db.QueryRow(ctx, selectBookmarkByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Bookmark{}, false, nil
		}
		return domain.Bookmark{}, false, MapError(fmt.Errorf("select bookmark %d: %w", id, err))
	}
	return b, true, nil
}

// DeleteByID hard-deletes a row and returns the affected row count.
func (s *Store) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteBookmarkByID, id)
	if err != nil {
		return 0, MapError(fmt.Errorf("delete bookmark %d: %w", id, err))
	}
	return tag.RowsAffected(), nil
}

func scanBookmark(row pgx.Row) (domain.Bookmark, error) {
	var b domain.Bookmark
	err := row.Scan(&b.ID, &b.Title, &b.URL, &b.Description, &b.Rating)
	return b, err
}
