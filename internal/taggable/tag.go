package taggable

import (
	"time"

	"golang.org/x/text/cases"
)

// Tag is a named label. A zero ID means the tag has not been persisted yet.
type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTag returns a transient tag with both timestamps set to now.
func NewTag(name string) *Tag {
	now := time.Now().UTC()
	return &Tag{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsNew reports whether the tag still waits for its first persist.
func (t *Tag) IsNew() bool {
	return t.ID == 0
}

// SetName renames the tag. Taggings that reference it are not touched.
func (t *Tag) SetName(name string) {
	t.Name = name
	t.UpdatedAt = time.Now().UTC()
}

// Key returns the case-folded name used to compare tags.
func (t *Tag) Key() string {
	return NameKey(t.Name)
}

// Equal reports whether t and o are the same tag: the same value, or two persisted tags with
// the same id.
func (t *Tag) Equal(o *Tag) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t == o {
		return true
	}
	return t.ID != 0 && t.ID == o.ID
}

// NameKey folds a tag name so that names differing only by case map to the same key.
func NameKey(name string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Fold().String(name)
}
