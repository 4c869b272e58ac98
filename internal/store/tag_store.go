package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/taggable/internal/taggable"
)

// tagRow represents a row in the tags table.
type tagRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	NameKey   string    `db:"name_key"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r tagRow) toTag() *taggable.Tag {
	return &taggable.Tag{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

const tagColumns = `t.id, t.name, t.name_key, t.created_at, t.updated_at`

// FindTagsByKeys returns the tags whose name_key is in keys, ordered by id.
func (s *Store) FindTagsByKeys(ctx context.Context, keys []string) ([]*taggable.Tag, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+tagColumns+` FROM tags t WHERE t.name_key IN (?) ORDER BY t.id ASC`, keys)
	if err != nil {
		return nil, err
	}
	var rows []tagRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return toTags(rows), nil
}

// FindTagsForResource returns the tags of one resource in tagging insertion order.
func (s *Store) FindTagsForResource(ctx context.Context, resourceType, resourceID string) ([]*taggable.Tag, error) {
	var rows []tagRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT `+tagColumns+`
		FROM tags t
		JOIN taggings tg ON tg.tag_id = t.id
		WHERE tg.resource_type = ? AND tg.resource_id = ?
		ORDER BY tg.id ASC
	`), resourceType, resourceID)
	if err != nil {
		return nil, fmt.Errorf("find resource tags: %w", err)
	}
	return toTags(rows), nil
}

// GetTagByName returns the oldest tag whose name folds to the same key as name, or ErrNotFound.
func (s *Store) GetTagByName(ctx context.Context, name string) (*taggable.Tag, error) {
	tags, err := s.FindTagsByKeys(ctx, []string{taggable.NameKey(name)})
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, ErrNotFound
	}
	return tags[0], nil
}

// ListTags returns every tag ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*taggable.Tag, error) {
	var rows []tagRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+tagColumns+` FROM tags t ORDER BY t.name ASC, t.id ASC`); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return toTags(rows), nil
}

// PersistTag stages an insert of a new tag or an update of a stored one. Which of the two
// happens is decided when the flush reaches it, so a tag persisted twice is inserted once.
func (s *Store) PersistTag(t *taggable.Tag) {
	if t == nil {
		return
	}
	if !t.IsNew() {
		s.stage(opTagUpdate, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			return updateTag(ctx, tx, t)
		})
		return
	}
	s.stage(opTagInsert, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		if !t.IsNew() {
			return 0, nil
		}
		id, err := insertID(ctx, tx, `
			INSERT INTO tags (name, name_key, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			t.Name, t.Key(), t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return 0, fmt.Errorf("insert tag %q: %w", t.Name, err)
		}
		t.ID = id
		s.mu.Lock()
		s.inserted = append(s.inserted, t)
		s.mu.Unlock()
		return 1, nil
	})
}

func updateTag(ctx context.Context, tx *sqlx.Tx, t *taggable.Tag) (int64, error) {
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE tags SET name = ?, name_key = ?, updated_at = ? WHERE id = ?`),
		t.Name, t.Key(), t.UpdatedAt, t.ID)
	if err != nil {
		return 0, fmt.Errorf("update tag %d: %w", t.ID, err)
	}
	return res.RowsAffected()
}

func toTags(rows []tagRow) []*taggable.Tag {
	tags := make([]*taggable.Tag, 0, len(rows))
	for _, r := range rows {
		tags = append(tags, r.toTag())
	}
	return tags
}
