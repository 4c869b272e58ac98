package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/taggable/internal/store"
)

// Store reads and writes articles and notes. Inserts and deletes go through the tagging
// unit of work so they share a transaction with the taggings of the entity.
type Store struct {
	db  *sqlx.DB
	uow *store.Store
}

func NewStore(uow *store.Store) *Store {
	return &Store{db: uow.DB(), uow: uow}
}

// StageArticle builds a new article with a fresh id and stages its insert in the unit of
// work. The row is written by the next Flush, together with any taggings saved for it.
func (s *Store) StageArticle(title string) *Article {
	now := time.Now().UTC()
	a := &Article{ID: uuid.New().String(), Title: title, CreatedAt: now, UpdatedAt: now}
	s.uow.InsertEntity(`INSERT INTO articles (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.Title, a.CreatedAt, a.UpdatedAt)
	return a
}

// CreateArticle inserts a new article with a fresh id.
func (s *Store) CreateArticle(ctx context.Context, title string) (*Article, error) {
	a := s.StageArticle(title)
	if err := s.uow.Flush(ctx); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return a, nil
}

// GetArticle returns the article matching id, or store.ErrNotFound.
func (s *Store) GetArticle(ctx context.Context, id string) (*Article, error) {
	var a Article
	err := s.db.GetContext(ctx, &a, s.db.Rebind(`SELECT id, title, created_at, updated_at FROM articles WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArticles returns all articles, newest first.
func (s *Store) ListArticles(ctx context.Context) ([]*Article, error) {
	var articles []*Article
	err := s.db.SelectContext(ctx, &articles, `SELECT id, title, created_at, updated_at FROM articles ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteArticle removes a together with its taggings.
func (s *Store) DeleteArticle(ctx context.Context, a *Article) error {
	if err := s.uow.RemoveEntity(ctx, a, `DELETE FROM articles WHERE id = ?`, a.ID); err != nil {
		return err
	}
	return s.uow.Flush(ctx)
}

// StageNote builds a new note with a fresh id and stages its insert. The tag string is kept
// in memory only; it is persisted as taggings by the tag manager.
func (s *Store) StageNote(title, tags string) *Note {
	now := time.Now().UTC()
	n := &Note{ID: uuid.New().String(), Title: title, CreatedAt: now, UpdatedAt: now, tagString: tags}
	s.uow.InsertEntity(`INSERT INTO notes (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		n.ID, n.Title, n.CreatedAt, n.UpdatedAt)
	return n
}

// CreateNote inserts a new note with a fresh id, leaving its tag string unsaved.
func (s *Store) CreateNote(ctx context.Context, title, tags string) (*Note, error) {
	n := s.StageNote(title, tags)
	if err := s.uow.Flush(ctx); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

// GetNote returns the note matching id, or store.ErrNotFound.
func (s *Store) GetNote(ctx context.Context, id string) (*Note, error) {
	var n Note
	err := s.db.GetContext(ctx, &n, s.db.Rebind(`SELECT id, title, created_at, updated_at FROM notes WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote removes n together with its taggings.
func (s *Store) DeleteNote(ctx context.Context, n *Note) error {
	if err := s.uow.RemoveEntity(ctx, n, `DELETE FROM notes WHERE id = ?`, n.ID); err != nil {
		return err
	}
	return s.uow.Flush(ctx)
}
