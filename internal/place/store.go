package place

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const placeColumns = "id, name, description, image_url, category, location, created_at, updated_at"

// Store persists places in a local SQLite database.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	now func() time.Time
}

// NewStore opens (creating if needed) the database at path and makes sure
// the places table exists.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open place database: %w", err)
	}

	// SQLite has a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to place database: %w", err), closeErr)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		slog.Debug("Failed to set sqlite busy_timeout", "error", err)
	}

	if _, err := db.Exec(PlacesSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create places table: %w", err), closeErr)
	}

	slog.Debug("Opened place database", "path", path)

	return &Store{
		db:   db,
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts or replaces p. A missing ID gets a new UUID and missing
// timestamps are filled in; UpdatedAt is always refreshed.
func (s *Store) Save(ctx context.Context, p *Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.save(ctx, s.db, p)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

// SaveAll saves every place in a single transaction. Either all of them are
// stored or none are.
func (s *Store) SaveAll(ctx context.Context, places []*Place) error {
	if len(places) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit is a no-op error
		_ = tx.Rollback()
	}()

	stored := make([]*Place, len(places))
	for i, p := range places {
		if stored[i], err = s.save(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Callers only see ids and timestamps once they are committed
	for i, p := range places {
		*p = *stored[i]
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// save writes a copy of p with its id and timestamps filled in and returns
// that copy; p itself is left untouched.
func (s *Store) save(ctx context.Context, db execer, in *Place) (*Place, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("place %q: name is required", in.ID)
	}

	p := *in
	if p.ID == "" {
		p.ID = uuid.NewString()
	} else {
		id, err := parseID(p.ID)
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := db.ExecContext(ctx,
		"INSERT OR REPLACE INTO places ("+placeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Name, p.Description, p.ImageURL, p.Category, p.Location,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save place %s: %w", p.ID, err)
	}
	return &p, nil
}

// Get returns the place with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Place, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+placeColumns+" FROM places WHERE id = ?", id)
	p, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load place %s: %w", id, err)
	}
	return p, nil
}

// List returns every stored place ordered by name.
func (s *Store) List(ctx context.Context) ([]*Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+placeColumns+" FROM places ORDER BY name COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer func() { _ = rows.Close() }()

	places := []*Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

// Delete removes the place with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete place %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlace(row scanner) (*Place, error) {
	var p Place
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Category, &p.Location, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at for %s: %w", p.ID, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("bad updated_at for %s: %w", p.ID, err)
	}
	return &p, nil
}

// parseID validates id and returns it in canonical lower-case form.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed.String(), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
