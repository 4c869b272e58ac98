package taggable

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultSeparator splits and joins tag strings.
const DefaultSeparator = ","

// TagFactory builds a transient tag for a name.
type TagFactory func(name string) *Tag

// TaggingFactory builds a transient tagging linking tag to res.
type TaggingFactory func(tag *Tag, res Resource, meta Metadata) *Tagging

// Manager loads, creates and saves the tags of resources.
type Manager struct {
	store      Store
	newTag     TagFactory
	newTagging TaggingFactory
	separator  string
	log        zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTagFactory replaces NewTag as the constructor of new tags.
func WithTagFactory(f TagFactory) Option {
	return func(m *Manager) { m.newTag = f }
}

// WithTaggingFactory replaces NewTagging as the constructor of new taggings.
func WithTaggingFactory(f TaggingFactory) Option {
	return func(m *Manager) { m.newTagging = f }
}

// WithSeparator sets the separator used for the tag strings of StringResource values.
func WithSeparator(sep string) Option {
	return func(m *Manager) {
		if sep != "" {
			m.separator = sep
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager creates a manager working against s.
func NewManager(s Store, opts ...Option) *Manager {
	m := &Manager{
		store:      s,
		newTag:     NewTag,
		newTagging: NewTagging,
		separator:  DefaultSeparator,
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// LoadOrCreateTag returns the stored tag matching name, creating and persisting it when missing.
func (m *Manager) LoadOrCreateTag(ctx context.Context, name string) (*Tag, error) {
	tags, err := m.LoadOrCreateTags(ctx, []string{name}, true)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTagNotProduced, name)
	}
	return tags[0], nil
}

// LoadOrCreateTags resolves names to tags. Names are trimmed and deduplicated by NameKey,
// first spelling wins, and blank names are skipped. The result holds the stored tags ordered by id followed by
// the new tags in input order. When persistMissing is set the new tags are persisted with one
// Flush; otherwise they are returned transient. An empty input never touches the store.
func (m *Manager) LoadOrCreateTags(ctx context.Context, names []string, persistMissing bool) ([]*Tag, error) {
	if len(names) == 0 {
		return []*Tag{}, nil
	}

	requested := make(map[string]string, len(names))
	keys := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k := NameKey(name)
		if _, ok := requested[k]; ok {
			continue
		}
		requested[k] = name
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return []*Tag{}, nil
	}

	found, err := m.store.FindTagsByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	tags := make([]*Tag, 0, len(keys))
	loaded := make(map[string]bool, len(found))
	for _, t := range found {
		k := t.Key()
		if _, ok := requested[k]; !ok || loaded[k] {
			continue
		}
		loaded[k] = true
		tags = append(tags, t)
	}

	var created int
	for _, k := range keys {
		if loaded[k] {
			continue
		}
		t := m.newTag(requested[k])
		if persistMissing {
			m.store.PersistTag(t)
		}
		tags = append(tags, t)
		created++
	}

	if persistMissing && created > 0 {
		if err := m.store.Flush(ctx); err != nil {
			return nil, err
		}
		m.log.Debug().Int("created", created).Msg("tags created")
	}

	return tags, nil
}

// AddTag appends tag to the collection of res. It does not check for duplicates.
func (m *Manager) AddTag(tag *Tag, res Resource) error {
	or, ok := res.(ObjectResource)
	if !ok {
		return fmt.Errorf("%w: %T cannot hold tag objects", ErrInvalidResourceKind, res)
	}
	or.Tags().Add(tag)
	return nil
}

// AddTags adds each non-nil tag to res in order.
func (m *Manager) AddTags(tags []*Tag, res Resource) error {
	for _, t := range tags {
		if t == nil {
			continue
		}
		if err := m.AddTag(t, res); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTag removes one occurrence of tag from the collection of res.
func (m *Manager) RemoveTag(tag *Tag, res Resource) (bool, error) {
	or, ok := res.(ObjectResource)
	if !ok {
		return false, fmt.Errorf("%w: %T cannot hold tag objects", ErrInvalidResourceKind, res)
	}
	return or.Tags().Remove(tag), nil
}

// ReplaceTags overwrites the in-memory tags of res. A StringResource gets the names joined
// with the separator and a space.
func (m *Manager) ReplaceTags(tags []*Tag, res Resource) error {
	switch r := res.(type) {
	case ObjectResource:
		r.Tags().Clear()
		return m.AddTags(tags, r)
	case StringResource:
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			if t != nil {
				names = append(names, t.Name)
			}
		}
		r.SetTagString(strings.Join(names, m.separator+" "))
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidResourceKind, res)
	}
}

type saveOptions struct {
	meta Metadata
}

// SaveOption configures one SaveTagging call.
type SaveOption func(*saveOptions)

// WithMetadata copies meta onto every tagging created by the save.
func WithMetadata(meta Metadata) SaveOption {
	return func(o *saveOptions) { o.meta = meta }
}

// SaveTagging makes the stored taggings of res match its in-memory tags. Taggings of tags that
// are still wanted are left untouched; the rest are deleted and the missing ones inserted, all
// in one Flush. Nothing is flushed when there is nothing to change.
func (m *Manager) SaveTagging(ctx context.Context, res Resource, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.meta.Validate(); err != nil {
		return err
	}
	if err := checkKind(res); err != nil {
		return err
	}

	current, err := m.store.FindTagsForResource(ctx, res.TaggableType(), res.TaggableID())
	if err != nil {
		return err
	}

	desired, err := m.tagObjects(ctx, res)
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(desired))
	toAdd := make([]*Tag, 0, len(desired))
	for _, t := range desired {
		if t == nil {
			continue
		}
		k := t.Key()
		if wanted[k] {
			continue
		}
		wanted[k] = true
		toAdd = append(toAdd, t)
	}

	var toRemove []int64
	for _, old := range current {
		k := old.Key()
		if !wanted[k] {
			toRemove = append(toRemove, old.ID)
			continue
		}
		toAdd = removeKey(toAdd, k)
	}

	if len(toRemove) > 0 {
		m.store.DeleteTaggings(res.TaggableType(), res.TaggableID(), toRemove)
	}
	for _, t := range toAdd {
		m.store.PersistTag(t)
		m.store.PersistTagging(m.newTagging(t, res, o.meta))
	}

	if len(toRemove) == 0 && len(toAdd) == 0 {
		return nil
	}
	if err := m.store.Flush(ctx); err != nil {
		return err
	}

	m.log.Debug().
		Str("resource_type", res.TaggableType()).
		Str("resource_id", res.TaggableID()).
		Int("added", len(toAdd)).
		Int("removed", len(toRemove)).
		Msg("tagging saved")
	return nil
}

// LoadTagging replaces the in-memory tags of res with its stored tags.
func (m *Manager) LoadTagging(ctx context.Context, res Resource) error {
	if err := checkKind(res); err != nil {
		return err
	}
	tags, err := m.store.FindTagsForResource(ctx, res.TaggableType(), res.TaggableID())
	if err != nil {
		return err
	}
	return m.ReplaceTags(tags, res)
}

// DeleteTagging stages the removal of every tagging of res. The removals become durable with
// the next Flush of the store, usually the one that deletes the resource itself.
func (m *Manager) DeleteTagging(ctx context.Context, res Resource) error {
	taggings, err := m.store.FindTaggingsForResource(ctx, res.TaggableType(), res.TaggableID())
	if err != nil {
		return err
	}
	for _, tg := range taggings {
		m.store.RemoveTagging(tg)
	}

	m.log.Debug().
		Str("resource_type", res.TaggableType()).
		Str("resource_id", res.TaggableID()).
		Int("taggings", len(taggings)).
		Msg("taggings deleted")
	return nil
}

// Flush applies the changes staged in the store.
func (m *Manager) Flush(ctx context.Context) error {
	return m.store.Flush(ctx)
}

// SplitTagNames splits text with the manager's separator.
func (m *Manager) SplitTagNames(text string) []string {
	return SplitTagNames(text, m.separator)
}

// GetTagNames returns the names of the tags currently attached to res, in attachment order.
// It does not read the store.
func (m *Manager) GetTagNames(res Resource) ([]string, error) {
	switch r := res.(type) {
	case ObjectResource:
		tags := r.Tags().All()
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, t.Name)
		}
		return names, nil
	case StringResource:
		return m.SplitTagNames(r.TagString()), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidResourceKind, res)
	}
}

// TagsWithCount counts the resources of resourceType per tag, most used first. A limit <= 0
// returns every tag.
func (m *Manager) TagsWithCount(ctx context.Context, resourceType string, limit int) ([]TagCount, error) {
	qs, ok := m.store.(QueryStore)
	if !ok {
		return nil, ErrNotSupported
	}
	return qs.TagsWithCount(ctx, resourceType, limit)
}

// ResourceIDsForTag returns the ids of the resources of resourceType tagged with tagName.
func (m *Manager) ResourceIDsForTag(ctx context.Context, resourceType, tagName string) ([]string, error) {
	qs, ok := m.store.(QueryStore)
	if !ok {
		return nil, ErrNotSupported
	}
	return qs.ResourceIDsForTag(ctx, resourceType, NameKey(tagName))
}

// tagObjects returns the desired tags of res. Transient tags whose name is already stored are
// swapped for the stored tag, in the collection too. Names of a StringResource are resolved
// without persisting new tags, so they get inserted by the caller's flush.
func (m *Manager) tagObjects(ctx context.Context, res Resource) ([]*Tag, error) {
	switch r := res.(type) {
	case ObjectResource:
		tags, swapped, err := m.reuseStored(ctx, r.Tags().All())
		if err != nil {
			return nil, err
		}
		if swapped {
			r.Tags().Clear()
			for _, t := range tags {
				r.Tags().Add(t)
			}
		}
		return tags, nil
	case StringResource:
		return m.LoadOrCreateTags(ctx, m.SplitTagNames(r.TagString()), false)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidResourceKind, res)
	}
}

// reuseStored replaces every transient tag in tags with the stored tag of the same key, when
// there is one, and reports whether anything was replaced.
func (m *Manager) reuseStored(ctx context.Context, tags []*Tag) ([]*Tag, bool, error) {
	var keys []string
	for _, t := range tags {
		if t != nil && t.IsNew() {
			keys = append(keys, t.Key())
		}
	}
	if len(keys) == 0 {
		return tags, false, nil
	}

	found, err := m.store.FindTagsByKeys(ctx, keys)
	if err != nil {
		return nil, false, err
	}
	stored := make(map[string]*Tag, len(found))
	for _, t := range found {
		if _, ok := stored[t.Key()]; !ok {
			stored[t.Key()] = t
		}
	}

	var swapped bool
	for i, t := range tags {
		if t == nil || !t.IsNew() {
			continue
		}
		if st, ok := stored[t.Key()]; ok {
			tags[i] = st
			swapped = true
		}
	}
	return tags, swapped, nil
}

// SplitTagNames splits text on sep, trims every piece and drops the empty ones. An empty sep
// means DefaultSeparator.
func SplitTagNames(text, sep string) []string {
	if sep == "" {
		sep = DefaultSeparator
	}
	parts := strings.Split(text, sep)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func checkKind(res Resource) error {
	switch res.(type) {
	case ObjectResource, StringResource:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidResourceKind, res)
	}
}

func removeKey(tags []*Tag, key string) []*Tag {
	for i, t := range tags {
		if t.Key() == key {
			return append(tags[:i], tags[i+1:]...)
		}
	}
	return tags
}
