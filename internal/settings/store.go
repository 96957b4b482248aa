// Package settings persists widget settings in sqlite, one JSON mapping per
// widget name.
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by a Store or Handle used after Close.
var ErrClosed = errors.New("settings store closed")

// Store is a key/value store of widget settings keyed by widget name.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	handles map[string]*Handle
	closed  bool
}

// Open opens (creating if needed) the sqlite database at path and migrates it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir settings dir: %w", err)
		}
	}

	// Escaped so '?' and '#' in the path stay part of the file name.
	escaped := strings.ReplaceAll(url.PathEscape(path), "%2F", "/")
	dsn := (&url.URL{Scheme: "file", Opaque: escaped, RawQuery: "_busy_timeout=5000"}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:      db,
		handles: make(map[string]*Handle),
	}, nil
}

// Handle returns the settings handle for name, loading its stored mapping on
// first use. Handles are cached, so every caller shares one per name.
func (s *Store) Handle(name string) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if h, ok := s.handles[name]; ok {
		return h, nil
	}

	data, err := s.load(name)
	if err != nil {
		return nil, err
	}
	h := &Handle{store: s, name: name, data: data}
	s.handles[name] = h
	return h, nil
}

func (s *Store) load(name string) (map[string]any, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM widget_settings WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings %q: %w", name, err)
	}

	data := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode settings %q: %w", name, err)
	}
	return data, nil
}

// write stores data for name. Callers hold s.mu.
func (s *Store) write(name string, data map[string]any) error {
	if s.closed {
		return ErrClosed
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode settings %q: %w", name, err)
	}
	return withTx(s.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO widget_settings (name, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			name, string(raw), now())
		if err != nil {
			return fmt.Errorf("write settings %q: %w", name, err)
		}
		return nil
	})
}

// Names lists the stored widget names in order.
func (s *Store) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(`SELECT name FROM widget_settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list settings: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes everything stored for name and forgets its handle.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.Exec(`DELETE FROM widget_settings WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete settings %q: %w", name, err)
	}
	if h, ok := s.handles[name]; ok {
		h.deleted = true
		delete(s.handles, name)
	}
	return nil
}

// Flush writes every handle with unpersisted changes.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if s.closed {
		return ErrClosed
	}
	var errs []error
	for _, h := range s.handles {
		if !h.dirty {
			continue
		}
		if err := s.write(h.name, h.data); err != nil {
			errs = append(errs, err)
			continue
		}
		h.dirty = false
	}
	return errors.Join(errs...)
}

// Close flushes pending changes and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	flushErr := s.flushLocked()
	s.closed = true
	return errors.Join(flushErr, s.db.Close())
}

// Handle is the settings of one widget.
type Handle struct {
	store   *Store
	name    string
	data    map[string]any
	dirty   bool
	deleted bool
}

func (h *Handle) Name() string { return h.name }

// Get returns a copy of the stored mapping.
func (h *Handle) Get() map[string]any {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	out := make(map[string]any, len(h.data))
	for k, v := range h.data {
		out[k] = v
	}
	return out
}

// Set stores value under key; an empty key merges a map[string]any into the
// mapping. With persist the row is written before Set returns, otherwise it
// is written by the next Flush or Close.
func (h *Handle) Set(key string, value any, persist bool) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	if h.store.closed {
		return ErrClosed
	}
	if h.deleted {
		return fmt.Errorf("settings %q: deleted", h.name)
	}

	if key == "" {
		patch, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("settings %q: merge needs map[string]any, got %T", h.name, value)
		}
		for k, v := range patch {
			h.data[k] = v
		}
	} else {
		h.data[key] = value
	}

	if !persist {
		h.dirty = true
		return nil
	}
	if err := h.store.write(h.name, h.data); err != nil {
		h.dirty = true
		return err
	}
	h.dirty = false
	return nil
}

// withTx runs fn in a transaction.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// now returns UTC time truncated to seconds (consistent with SQLite default).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
