// Package content holds the host resources that carry tags: articles keep a
// collection of tag objects, notes keep a comma separated tag string.
package content

import (
	"time"

	"github.com/joestump/taggable/internal/taggable"
)

const (
	ArticleType = "article"
	NoteType    = "note"
)

// Article represents a row in the articles table. Its tags are held as objects.
type Article struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	tags *taggable.Collection
}

func (a *Article) TaggableType() string { return ArticleType }
func (a *Article) TaggableID() string   { return a.ID }

// Tags returns the in-memory tag collection, creating it on first use.
func (a *Article) Tags() *taggable.Collection {
	if a.tags == nil {
		a.tags = taggable.NewCollection()
	}
	return a.tags
}

// Note represents a row in the notes table. Its tags are held as a string.
type Note struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	tagString string
}

func (n *Note) TaggableType() string     { return NoteType }
func (n *Note) TaggableID() string       { return n.ID }
func (n *Note) TagString() string        { return n.tagString }
func (n *Note) SetTagString(tags string) { n.tagString = tags }
