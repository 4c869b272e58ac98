// Package store persists tags and taggings with sqlx. A Store is a unit of work:
// writes are staged in memory and applied in a single transaction by Flush.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/joestump/taggable/internal/metrics"
	"github.com/joestump/taggable/internal/taggable"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by Flush when a staged insert collides with a stored row,
	// typically a tagging written by a concurrent save of the same resource.
	ErrConflict = errors.New("conflicting write")
)

var (
	_ taggable.Store      = (*Store)(nil)
	_ taggable.QueryStore = (*Store)(nil)
)

type opKind int

const (
	opTagInsert opKind = iota
	opTagUpdate
	opTaggingInsert
	opTaggingDelete
	opEntityInsert
	opEntityDelete
)

// op is one staged write. run reports how many rows it affected.
type op struct {
	kind opKind
	run  func(ctx context.Context, tx *sqlx.Tx) (int64, error)
}

// PreRemoveListener is notified before an entity removal is staged.
type PreRemoveListener interface {
	PreRemove(ctx context.Context, entity any) error
}

// Store is the sqlx-backed unit of work. It is safe for concurrent use, but staged
// changes are shared, so concurrent callers normally use one Store each.
type Store struct {
	db  *sqlx.DB
	log zerolog.Logger

	mu        sync.Mutex
	pending   []op
	inserted  []*taggable.Tag
	listeners []PreRemoveListener
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for flush diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(db *sqlx.DB, opts ...Option) *Store {
	s := &Store{db: db, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Subscribe registers l for pre-remove events.
func (s *Store) Subscribe(l PreRemoveListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// RemoveEntity notifies the listeners that entity is about to be removed, then stages
// query as its deletion. Listener failures abort before anything of entity is staged.
// The deletion is applied by the next Flush; if it matches no row Flush fails with
// ErrNotFound.
func (s *Store) RemoveEntity(ctx context.Context, entity any, query string, args ...any) error {
	s.mu.Lock()
	listeners := append([]PreRemoveListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		if err := l.PreRemove(ctx, entity); err != nil {
			return fmt.Errorf("pre-remove: %w", err)
		}
	}

	s.stage(opEntityDelete, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, ErrNotFound
		}
		return n, nil
	})
	return nil
}

// InsertEntity stages query as the insert of a host entity, so the row becomes durable in
// the same transaction as the taggings staged after it.
func (s *Store) InsertEntity(query string, args ...any) {
	s.stage(opEntityInsert, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	})
}

// Pending reports the number of staged writes.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Store) stage(kind opKind, run func(ctx context.Context, tx *sqlx.Tx) (int64, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, op{kind: kind, run: run})
}

// Flush applies every staged write in one transaction. On failure the transaction is
// rolled back, the staged writes are discarded and tags inserted by the failed flush
// become transient again.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	ops := s.pending
	s.pending = nil
	s.inserted = nil
	s.mu.Unlock()

	if len(ops) == 0 {
		return nil
	}

	counts, err := s.apply(ctx, ops)
	if err != nil {
		s.mu.Lock()
		for _, t := range s.inserted {
			t.ID = 0
		}
		s.inserted = nil
		s.mu.Unlock()
		metrics.FlushErrorsTotal.Inc()
		if isUniqueConstraintError(err) {
			return fmt.Errorf("flush: %w: %v", ErrConflict, err)
		}
		return fmt.Errorf("flush: %w", err)
	}

	metrics.TagsCreatedTotal.Add(float64(counts[opTagInsert]))
	metrics.TaggingsAddedTotal.Add(float64(counts[opTaggingInsert]))
	metrics.TaggingsRemovedTotal.Add(float64(counts[opTaggingDelete]))

	s.log.Debug().
		Int("ops", len(ops)).
		Int64("tags_created", counts[opTagInsert]).
		Int64("taggings_added", counts[opTaggingInsert]).
		Int64("taggings_removed", counts[opTaggingDelete]).
		Msg("flushed")
	return nil
}

func (s *Store) apply(ctx context.Context, ops []op) (map[opKind]int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	counts := make(map[opKind]int64)
	for _, o := range ops {
		n, err := o.run(ctx, tx)
		if err != nil {
			return nil, err
		}
		counts[o.kind] += n
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return counts, nil
}

// insertID runs an INSERT and returns the generated id. PostgreSQL has no
// LastInsertId, so the statement gets a RETURNING clause there.
func insertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	if tx.DriverName() == "postgres" {
		var id int64
		err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
