package taggable

// Resource is anything that can be tagged. Integer keys are passed in their decimal form.
type Resource interface {
	TaggableType() string
	TaggableID() string
}

// ObjectResource exposes its tags as a Collection of Tag values.
type ObjectResource interface {
	Resource
	Tags() *Collection
}

// StringResource exposes its tags as a single separator-joined string of names.
type StringResource interface {
	Resource
	TagString() string
	SetTagString(string)
}
