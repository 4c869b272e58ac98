package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/taggable/internal/content"
	"github.com/joestump/taggable/internal/taggable"
)

type articlesAPIHandler struct {
	deps Deps
}

func registerArticleRoutes(r chi.Router, deps Deps) {
	h := &articlesAPIHandler{deps: deps}
	r.Get("/articles", h.List)
	r.Post("/articles", h.Create)
	r.Get("/articles/{id}", h.Get)
	r.Put("/articles/{id}/tags", h.ReplaceTags)
	r.Delete("/articles/{id}", h.Delete)
}

// metadataOf builds the tagging metadata of a request, nil when nothing was given.
func metadataOf(taggedBy, source string) taggable.Metadata {
	meta := taggable.Metadata{}
	if taggedBy != "" {
		meta[taggable.MetaTaggedBy] = taggedBy
	}
	if source != "" {
		meta[taggable.MetaSource] = source
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func (h *articlesAPIHandler) toResponse(s *session, a *content.Article) (ArticleResponse, error) {
	names, err := s.manager.GetTagNames(a)
	if err != nil {
		return ArticleResponse{}, err
	}
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Tags:      names,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}, nil
}

// List returns every article with its tags.
//
// @Summary      List articles
// @Description  Returns every article, newest first, with its stored tags.
// @Tags         Articles
// @Accept       json
// @Produce      json
// @Success      200  {object}  ArticleListResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /articles [get]
func (h *articlesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	s := h.deps.newSession()
	articles, err := s.content.ListArticles(r.Context())
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}

	resp := ArticleListResponse{Articles: make([]ArticleResponse, 0, len(articles))}
	for _, a := range articles {
		if err := s.manager.LoadTagging(r.Context(), a); err != nil {
			writeStoreError(w, h.deps.Logger, err)
			return
		}
		ar, err := h.toResponse(s, a)
		if err != nil {
			writeStoreError(w, h.deps.Logger, err)
			return
		}
		resp.Articles = append(resp.Articles, ar)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create inserts an article and attaches the requested tags.
//
// @Summary      Create an article
// @Description  Creates an article and tags it. Missing tags are created; names differing only by case share one tag.
// @Tags         Articles
// @Accept       json
// @Produce      json
// @Param        body  body      CreateArticleRequest  true  "Article to create"
// @Success      201   {object}  ArticleResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /articles [post]
func (h *articlesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "bad_request")
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}

	ctx := r.Context()
	s := h.deps.newSession()
	tags, err := s.manager.LoadOrCreateTags(ctx, req.Tags, true)
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	// The article row is staged after the tags are created so that it commits with its
	// taggings, or not at all.
	a := s.content.StageArticle(req.Title)
	if err := h.saveTags(ctx, s, a, tags, metadataOf(req.TaggedBy, req.Source)); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	if err := s.uow.Flush(ctx); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}

	resp, err := h.toResponse(s, a)
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get returns one article with its stored tags.
//
// @Summary      Get an article
// @Tags         Articles
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Article ID"
// @Success      200  {object}  ArticleResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /articles/{id} [get]
func (h *articlesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.deps.newSession()
	a, err := s.content.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	if err := s.manager.LoadTagging(r.Context(), a); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	resp, err := h.toResponse(s, a)
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReplaceTags overwrites the tags of an article. Tags kept from before keep their taggings.
//
// @Summary      Replace article tags
// @Description  Sets the tags of an article. Only the difference with the stored tags is written.
// @Tags         Articles
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Article ID"
// @Param        body  body      ReplaceArticleTagsRequest  true  "New tags"
// @Success      200   {object}  ArticleResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /articles/{id}/tags [put]
func (h *articlesAPIHandler) ReplaceTags(w http.ResponseWriter, r *http.Request) {
	var req ReplaceArticleTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "bad_request")
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}

	s := h.deps.newSession()
	a, err := s.content.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	if err := h.setTags(r, s, a, req.Tags, metadataOf(req.TaggedBy, req.Source)); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}

	resp, err := h.toResponse(s, a)
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes an article and its taggings.
//
// @Summary      Delete an article
// @Tags         Articles
// @Param        id   path  string  true  "Article ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /articles/{id} [delete]
func (h *articlesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := h.deps.newSession()
	a, err := s.content.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	if err := s.content.DeleteArticle(r.Context(), a); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *articlesAPIHandler) setTags(r *http.Request, s *session, a *content.Article, names []string, meta taggable.Metadata) error {
	tags, err := s.manager.LoadOrCreateTags(r.Context(), names, true)
	if err != nil {
		return err
	}
	return h.saveTags(r.Context(), s, a, tags, meta)
}

func (h *articlesAPIHandler) saveTags(ctx context.Context, s *session, a *content.Article, tags []*taggable.Tag, meta taggable.Metadata) error {
	if err := s.manager.ReplaceTags(tags, a); err != nil {
		return err
	}
	return s.manager.SaveTagging(ctx, a, taggable.WithMetadata(meta))
}
