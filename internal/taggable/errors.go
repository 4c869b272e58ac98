package taggable

import "errors"

var (
	// ErrInvalidResourceKind is returned when a resource implements neither ObjectResource
	// nor StringResource where the operation needs one of them.
	ErrInvalidResourceKind = errors.New("invalid tag resource type")

	// ErrTagNotProduced is returned by LoadOrCreateTag when no tag could be loaded or created.
	ErrTagNotProduced = errors.New("no tag produced")

	// ErrUnknownMetadataField is returned when tagging metadata names an unrecognized field.
	ErrUnknownMetadataField = errors.New("unknown tagging metadata field")

	// ErrNotSupported is returned by aggregate queries when the store cannot answer them.
	ErrNotSupported = errors.New("not supported")
)
