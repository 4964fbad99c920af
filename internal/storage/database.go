package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Handle owns the single SQLite connection and serializes every logical
// operation behind one mutex. Exclusivity is part of the contract: callers
// never touch the connection directly, they pass a function to Do and hold
// the store for exactly that long.
type Handle struct {
	mu sync.Mutex
	db *sqlx.DB
}

// Open connects to the SQLite database at path, creating the file if needed.
// The pool is capped at a single connection so the mutex in Do is the only
// gate to the store.
func Open(path string) (*Handle, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &Handle{db: db}, nil
}

// Do runs fn with exclusive access to the store. The context is checked
// before acquiring the lock; queries inside fn should pass it through.
func (h *Handle) Do(ctx context.Context, fn func(db *sqlx.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.db)
}

// Close releases the underlying connection.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.Close()
}
