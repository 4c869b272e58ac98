package api

import "time"

// --- Article types ---

// CreateArticleRequest is the request body for POST /articles.
type CreateArticleRequest struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Tags     []string `json:"tags,omitempty" validate:"dive,max=255"`
	TaggedBy string   `json:"tagged_by,omitempty" validate:"max=255"`
	Source   string   `json:"source,omitempty" validate:"max=255"`
}

// ReplaceArticleTagsRequest is the request body for PUT /articles/{id}/tags.
type ReplaceArticleTagsRequest struct {
	Tags     []string `json:"tags" validate:"dive,max=255"`
	TaggedBy string   `json:"tagged_by,omitempty" validate:"max=255"`
	Source   string   `json:"source,omitempty" validate:"max=255"`
}

// ArticleResponse is the JSON representation of an article.
type ArticleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleListResponse is the response for GET /articles.
type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

// --- Note types ---

// CreateNoteRequest is the request body for POST /notes. Tags is a separated tag string.
type CreateNoteRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Tags     string `json:"tags,omitempty"`
	TaggedBy string `json:"tagged_by,omitempty" validate:"max=255"`
	Source   string `json:"source,omitempty" validate:"max=255"`
}

// ReplaceNoteTagsRequest is the request body for PUT /notes/{id}/tags.
type ReplaceNoteTagsRequest struct {
	Tags     string `json:"tags"`
	TaggedBy string `json:"tagged_by,omitempty" validate:"max=255"`
	Source   string `json:"source,omitempty" validate:"max=255"`
}

// NoteResponse is the JSON representation of a note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Tags      string    `json:"tags"`
	TagNames  []string  `json:"tag_names"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Tag types ---

// TagCountResponse is one tag with the number of resources using it.
type TagCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagCountListResponse is the response for GET /tags.
type TagCountListResponse struct {
	Tags []TagCountResponse `json:"tags"`
}

// ResourceIDsResponse is the response for GET /tags/{name}/resources.
type ResourceIDsResponse struct {
	IDs []string `json:"ids"`
}

// SplitResponse is the response for GET /tags/split.
type SplitResponse struct {
	Names []string `json:"names"`
}
