package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/taggable/internal/taggable"
)

var errUnsavedTag = errors.New("tagging references an unsaved tag")

// taggingRow is a taggings row joined with its tag.
type taggingRow struct {
	ID           int64     `db:"id"`
	ResourceType string    `db:"resource_type"`
	ResourceID   string    `db:"resource_id"`
	TaggedBy     string    `db:"tagged_by"`
	Source       string    `db:"source"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	TagID        int64     `db:"tag_id"`
	TagName      string    `db:"tag_name"`
	TagCreatedAt time.Time `db:"tag_created_at"`
	TagUpdatedAt time.Time `db:"tag_updated_at"`
}

func (r taggingRow) toTagging() *taggable.Tagging {
	return &taggable.Tagging{
		ID: r.ID,
		Tag: &taggable.Tag{
			ID:        r.TagID,
			Name:      r.TagName,
			CreatedAt: r.TagCreatedAt,
			UpdatedAt: r.TagUpdatedAt,
		},
		ResourceType: r.ResourceType,
		ResourceID:   r.ResourceID,
		TaggedBy:     r.TaggedBy,
		Source:       r.Source,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FindTaggingsForResource returns the taggings of one resource with their tags, oldest first.
func (s *Store) FindTaggingsForResource(ctx context.Context, resourceType, resourceID string) ([]*taggable.Tagging, error) {
	var rows []taggingRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT tg.id, tg.resource_type, tg.resource_id, tg.tagged_by, tg.source,
		       tg.created_at, tg.updated_at,
		       t.id AS tag_id, t.name AS tag_name,
		       t.created_at AS tag_created_at, t.updated_at AS tag_updated_at
		FROM taggings tg
		JOIN tags t ON t.id = tg.tag_id
		WHERE tg.resource_type = ? AND tg.resource_id = ?
		ORDER BY tg.id ASC
	`), resourceType, resourceID)
	if err != nil {
		return nil, fmt.Errorf("find taggings: %w", err)
	}
	taggings := make([]*taggable.Tagging, 0, len(rows))
	for _, r := range rows {
		taggings = append(taggings, r.toTagging())
	}
	return taggings, nil
}

// PersistTagging stages the insert of tg. The tag id is read when the flush reaches the
// insert, after any staged insert of the tag itself.
func (s *Store) PersistTagging(tg *taggable.Tagging) {
	if tg == nil {
		return
	}
	s.stage(opTaggingInsert, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		tagID := tg.TagID()
		if tagID == 0 {
			return 0, errUnsavedTag
		}
		id, err := insertID(ctx, tx, `
			INSERT INTO taggings (tag_id, resource_type, resource_id, tagged_by, source, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tagID, tg.ResourceType, tg.ResourceID, tg.TaggedBy, tg.Source, tg.CreatedAt, tg.UpdatedAt)
		if err != nil {
			return 0, fmt.Errorf("insert tagging: %w", err)
		}
		tg.ID = id
		return 1, nil
	})
}

// RemoveTagging stages the deletion of a stored tagging. Transient taggings are ignored.
func (s *Store) RemoveTagging(tg *taggable.Tagging) {
	if tg == nil || tg.ID == 0 {
		return
	}
	id := tg.ID
	s.stage(opTaggingDelete, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM taggings WHERE id = ?`), id)
		if err != nil {
			return 0, fmt.Errorf("delete tagging %d: %w", id, err)
		}
		return res.RowsAffected()
	})
}

// DeleteTaggings stages one bulk delete of the resource's taggings referencing tagIDs.
func (s *Store) DeleteTaggings(resourceType, resourceID string, tagIDs []int64) {
	if len(tagIDs) == 0 {
		return
	}
	ids := append([]int64(nil), tagIDs...)
	s.stage(opTaggingDelete, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		query, args, err := sqlx.In(`
			DELETE FROM taggings
			WHERE resource_type = ? AND resource_id = ? AND tag_id IN (?)`,
			resourceType, resourceID, ids)
		if err != nil {
			return 0, err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return 0, fmt.Errorf("delete taggings: %w", err)
		}
		return res.RowsAffected()
	})
}
