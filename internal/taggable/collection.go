package taggable

// Collection is the ordered, mutable list of tags held by an ObjectResource. It has list
// semantics: the same tag may be added twice.
type Collection struct {
	tags []*Tag
}

// NewCollection returns a collection holding tags in the given order.
func NewCollection(tags ...*Tag) *Collection {
	c := &Collection{}
	for _, t := range tags {
		c.Add(t)
	}
	return c
}

// Add appends t. Nil tags are ignored.
func (c *Collection) Add(t *Tag) {
	if t == nil {
		return
	}
	c.tags = append(c.tags, t)
}

// Remove deletes the first element equal to t and reports whether one was found.
func (c *Collection) Remove(t *Tag) bool {
	for i, ct := range c.tags {
		if ct.Equal(t) {
			c.tags = append(c.tags[:i], c.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.tags = nil
}

// Len returns the number of tags.
func (c *Collection) Len() int {
	return len(c.tags)
}

// At returns the tag at index i, or nil when i is out of range.
func (c *Collection) At(i int) *Tag {
	if i < 0 || i >= len(c.tags) {
		return nil
	}
	return c.tags[i]
}

// All returns a copy of the tags in attachment order.
func (c *Collection) All() []*Tag {
	out := make([]*Tag, len(c.tags))
	copy(out, c.tags)
	return out
}
