package store

import (
	"context"
	"fmt"

	"github.com/joestump/taggable/internal/taggable"
)

type tagCountRow struct {
	Name  string `db:"name"`
	Count int    `db:"cnt"`
}

// TagsWithCount counts the distinct resources of resourceType per tag, ordered by count
// descending, then name, then tag id. A limit <= 0 returns every tag.
func (s *Store) TagsWithCount(ctx context.Context, resourceType string, limit int) ([]taggable.TagCount, error) {
	query := `
		SELECT t.name AS name, COUNT(DISTINCT tg.resource_id) AS cnt
		FROM taggings tg
		JOIN tags t ON t.id = tg.tag_id
		WHERE tg.resource_type = ?
		GROUP BY t.id, t.name
		ORDER BY cnt DESC, t.name ASC, t.id ASC`
	args := []any{resourceType}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []tagCountRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}
	counts := make([]taggable.TagCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, taggable.TagCount{Name: r.Name, Count: r.Count})
	}
	return counts, nil
}

// ResourceIDsForTag returns the distinct ids of resources of resourceType tagged with a tag
// whose name_key is key, in the order they were first tagged.
func (s *Store) ResourceIDsForTag(ctx context.Context, resourceType, key string) ([]string, error) {
	ids := []string{}
	err := s.db.SelectContext(ctx, &ids, s.db.Rebind(`
		SELECT tg.resource_id
		FROM taggings tg
		JOIN tags t ON t.id = tg.tag_id
		WHERE tg.resource_type = ? AND t.name_key = ?
		GROUP BY tg.resource_id
		ORDER BY MIN(tg.id) ASC
	`), resourceType, key)
	if err != nil {
		return nil, fmt.Errorf("resource ids for tag: %w", err)
	}
	return ids, nil
}
