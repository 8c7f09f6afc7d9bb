// Package watchlist persists the user's saved movies and people in the
// local database. Entries are unique by their derived kind:id key.
package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrDuplicate = errors.New("entry already on watchlist")
	ErrNotFound  = errors.New("entry not found")
)

// Entry is one saved watchlist item. Key is derived from Kind and RefID
// and enforces uniqueness; ID is the entry's own identifier.
type Entry struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Kind      string    `json:"kind"`
	RefID     int       `json:"refId"`
	Title     string    `json:"title"`
	Year      string    `json:"year,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store provides watchlist persistence.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStore creates a watchlist store on an already-migrated database.
func NewStore(db *sql.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "watchlist").Logger(),
	}
}

// Add inserts a new entry. The entry's ID, Key, and CreatedAt are
// assigned here; duplicate kind:id pairs return ErrDuplicate.
func (s *Store) Add(ctx context.Context, kind string, refID int, title, year, image string) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.NewString(),
		Key:       fmt.Sprintf("%s:%d", kind, refID),
		Kind:      kind,
		RefID:     refID,
		Title:     title,
		Year:      year,
		Image:     image,
		CreatedAt: time.Now().UTC(),
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM watchlist WHERE entry_key = ?`, entry.Key).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check watchlist entry: %w", err)
	}
	if exists > 0 {
		return nil, ErrDuplicate
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO watchlist (id, entry_key, kind, ref_id, title, year, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Key, entry.Kind, entry.RefID, entry.Title, entry.Year, entry.Image, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert watchlist entry: %w", err)
	}

	s.logger.Debug().Str("key", entry.Key).Str("title", entry.Title).Msg("Added watchlist entry")
	return entry, nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entry_key, kind, ref_id, title, year, image, created_at
		 FROM watchlist ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Key, &e.Kind, &e.RefID, &e.Title, &e.Year, &e.Image, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Remove deletes an entry by its ID.
func (s *Store) Remove(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug().Str("id", id).Msg("Removed watchlist entry")
	return nil
}
