package taggable

import "time"

// Tagging links one Tag to one resource. The resource type and id are copied when the tagging is
// created, so later changes to the resource identity are not reflected.
type Tagging struct {
	ID           int64
	Tag          *Tag
	ResourceType string
	ResourceID   string
	TaggedBy     string
	Source       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTagging returns a transient tagging of res with tag, with meta applied.
func NewTagging(tag *Tag, res Resource, meta Metadata) *Tagging {
	now := time.Now().UTC()
	tg := &Tagging{
		Tag:          tag,
		ResourceType: res.TaggableType(),
		ResourceID:   res.TaggableID(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	meta.applyTo(tg)
	return tg
}

// TagID returns the id of the referenced tag, or 0 when there is none yet.
func (tg *Tagging) TagID() int64 {
	if tg.Tag == nil {
		return 0
	}
	return tg.Tag.ID
}
