package taggable

import (
	"context"
	"errors"
)

var errForged = errors.New("forged")

// fakeStore keeps tags and taggings in memory and counts every call that reaches storage.
type fakeStore struct {
	tags     []*Tag
	taggings []*Tagging
	staged   []func()

	calls    int
	flushes  int
	failNext bool

	nextTagID, nextTaggingID int64
}

func (s *fakeStore) fail() error {
	s.calls++
	if s.failNext {
		s.failNext = false
		return errForged
	}
	return nil
}

func (s *fakeStore) FindTagsByKeys(_ context.Context, keys []string) ([]*Tag, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var found []*Tag
	for _, t := range s.tags {
		if want[t.Key()] {
			found = append(found, t)
		}
	}
	return found, nil
}

func (s *fakeStore) FindTagsForResource(_ context.Context, resourceType, resourceID string) ([]*Tag, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	var found []*Tag
	for _, tg := range s.taggings {
		if tg.ResourceType == resourceType && tg.ResourceID == resourceID {
			found = append(found, tg.Tag)
		}
	}
	return found, nil
}

func (s *fakeStore) FindTaggingsForResource(_ context.Context, resourceType, resourceID string) ([]*Tagging, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	var found []*Tagging
	for _, tg := range s.taggings {
		if tg.ResourceType == resourceType && tg.ResourceID == resourceID {
			found = append(found, tg)
		}
	}
	return found, nil
}

func (s *fakeStore) PersistTag(t *Tag) {
	s.staged = append(s.staged, func() {
		if t.ID != 0 {
			return
		}
		s.nextTagID++
		t.ID = s.nextTagID
		s.tags = append(s.tags, t)
	})
}

func (s *fakeStore) PersistTagging(tg *Tagging) {
	s.staged = append(s.staged, func() {
		s.nextTaggingID++
		tg.ID = s.nextTaggingID
		s.taggings = append(s.taggings, tg)
	})
}

func (s *fakeStore) RemoveTagging(tg *Tagging) {
	s.staged = append(s.staged, func() {
		s.filterTaggings(func(o *Tagging) bool { return o.ID == tg.ID })
	})
}

func (s *fakeStore) DeleteTaggings(resourceType, resourceID string, tagIDs []int64) {
	ids := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		ids[id] = true
	}
	s.staged = append(s.staged, func() {
		s.filterTaggings(func(o *Tagging) bool {
			return o.ResourceType == resourceType && o.ResourceID == resourceID && ids[o.TagID()]
		})
	})
}

func (s *fakeStore) Flush(context.Context) error {
	if err := s.fail(); err != nil {
		s.staged = nil
		return err
	}
	s.flushes++
	for _, op := range s.staged {
		op()
	}
	s.staged = nil
	return nil
}

func (s *fakeStore) filterTaggings(drop func(*Tagging) bool) {
	kept := s.taggings[:0]
	for _, tg := range s.taggings {
		if !drop(tg) {
			kept = append(kept, tg)
		}
	}
	s.taggings = kept
}

func (s *fakeStore) taggingsOf(res Resource) []*Tagging {
	var found []*Tagging
	for _, tg := range s.taggings {
		if tg.ResourceType == res.TaggableType() && tg.ResourceID == res.TaggableID() {
			found = append(found, tg)
		}
	}
	return found
}

type article struct {
	id   string
	tags *Collection
}

func newArticle(id string) *article {
	return &article{id: id, tags: NewCollection()}
}

func (a *article) TaggableType() string { return "article" }
func (a *article) TaggableID() string   { return a.id }
func (a *article) Tags() *Collection    { return a.tags }

type note struct {
	id        string
	tagString string
}

func (n *note) TaggableType() string     { return "note" }
func (n *note) TaggableID() string       { return n.id }
func (n *note) TagString() string        { return n.tagString }
func (n *note) SetTagString(text string) { n.tagString = text }

// plain is a resource implementing neither tag capability.
type plain struct{}

func (plain) TaggableType() string { return "plain" }
func (plain) TaggableID() string   { return "1" }
