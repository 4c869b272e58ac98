package taggable

import (
	"fmt"
	"sort"
)

// MetadataField names one of the extra values a Tagging can carry.
type MetadataField string

const (
	// MetaTaggedBy identifies who applied the tag.
	MetaTaggedBy MetadataField = "tagged_by"
	// MetaSource identifies where the tag was applied from, e.g. "api" or "cli".
	MetaSource MetadataField = "source"
)

// Metadata is the payload copied onto every Tagging created by one save.
type Metadata map[MetadataField]string

// Validate returns ErrUnknownMetadataField for any field outside the recognized set.
func (m Metadata) Validate() error {
	var unknown []string
	for f := range m {
		switch f {
		case MetaTaggedBy, MetaSource:
		default:
			unknown = append(unknown, string(f))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %v", ErrUnknownMetadataField, unknown)
	}
	return nil
}

func (m Metadata) applyTo(tg *Tagging) {
	for f, v := range m {
		switch f {
		case MetaTaggedBy:
			tg.TaggedBy = v
		case MetaSource:
			tg.Source = v
		}
	}
}
