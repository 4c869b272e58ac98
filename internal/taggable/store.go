package taggable

import "context"

// Store is the persistence provider used by the Manager. Reads hit durable state directly.
// Persist, Remove and Delete calls only stage changes; Flush applies everything staged since
// the previous Flush atomically.
type Store interface {
	// FindTagsByKeys returns the stored tags whose NameKey is in keys, ordered by id.
	FindTagsByKeys(ctx context.Context, keys []string) ([]*Tag, error)

	// FindTagsForResource returns the tags joined through the taggings of one resource, in
	// tagging insertion order.
	FindTagsForResource(ctx context.Context, resourceType, resourceID string) ([]*Tag, error)

	// FindTaggingsForResource returns the taggings of one resource.
	FindTaggingsForResource(ctx context.Context, resourceType, resourceID string) ([]*Tagging, error)

	// PersistTag stages an insert for a new tag or an update for a stored one. The tag's ID
	// is assigned when the insert is flushed.
	PersistTag(t *Tag)

	// PersistTagging stages an insert of tg. The referenced tag must be persisted no later
	// than tg within the same flush.
	PersistTagging(tg *Tagging)

	// RemoveTagging stages the deletion of one stored tagging.
	RemoveTagging(tg *Tagging)

	// DeleteTaggings stages a bulk delete of the resource's taggings referencing tagIDs.
	DeleteTaggings(resourceType, resourceID string, tagIDs []int64)

	// Flush durably applies all staged changes.
	Flush(ctx context.Context) error
}

// TagCount is one row of a tag usage count.
type TagCount struct {
	Name  string
	Count int
}

// QueryStore is implemented by stores that can answer aggregate queries.
type QueryStore interface {
	// TagsWithCount counts the distinct resources of resourceType per tag, ordered by count
	// descending then name ascending. A limit <= 0 returns every tag.
	TagsWithCount(ctx context.Context, resourceType string, limit int) ([]TagCount, error)

	// ResourceIDsForTag returns the ids of resources of resourceType tagged with the tag whose
	// NameKey is key, in the order they were first tagged.
	ResourceIDsForTag(ctx context.Context, resourceType, key string) ([]string, error)
}
