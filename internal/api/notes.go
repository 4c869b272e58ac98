package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/taggable/internal/content"
	"github.com/joestump/taggable/internal/taggable"
)

type notesAPIHandler struct {
	deps Deps
}

func registerNoteRoutes(r chi.Router, deps Deps) {
	h := &notesAPIHandler{deps: deps}
	r.Post("/notes", h.Create)
	r.Get("/notes/{id}", h.Get)
	r.Put("/notes/{id}/tags", h.ReplaceTags)
	r.Delete("/notes/{id}", h.Delete)
}

// respond reloads the stored tags of n, normalizing its tag string, and writes it.
func (h *notesAPIHandler) respond(w http.ResponseWriter, r *http.Request, s *session, n *content.Note, status int) {
	if err := s.manager.LoadTagging(r.Context(), n); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	names, err := s.manager.GetTagNames(n)
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	writeJSON(w, status, NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Tags:      n.TagString(),
		TagNames:  names,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	})
}

// Create inserts a note and saves the tags named in its tag string.
//
// @Summary      Create a note
// @Description  Creates a note. Its tag string is split on the configured separator and saved as taggings.
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        body  body      CreateNoteRequest  true  "Note to create"
// @Success      201   {object}  NoteResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /notes [post]
func (h *notesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
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
	n := s.content.StageNote(req.Title, req.Tags)
	if err := s.manager.SaveTagging(ctx, n, taggable.WithMetadata(metadataOf(req.TaggedBy, req.Source))); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	// SaveTagging does not flush a note without tags.
	if err := s.uow.Flush(ctx); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	h.respond(w, r, s, n, http.StatusCreated)
}

// Get returns one note with its stored tags.
//
// @Summary      Get a note
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  NoteResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notes/{id} [get]
func (h *notesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.deps.newSession()
	n, err := s.content.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	h.respond(w, r, s, n, http.StatusOK)
}

// ReplaceTags sets the tag string of a note and saves the difference.
//
// @Summary      Replace note tags
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Note ID"
// @Param        body  body      ReplaceNoteTagsRequest  true  "New tag string"
// @Success      200   {object}  NoteResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /notes/{id}/tags [put]
func (h *notesAPIHandler) ReplaceTags(w http.ResponseWriter, r *http.Request) {
	var req ReplaceNoteTagsRequest
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
	n, err := s.content.GetNote(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	n.SetTagString(req.Tags)
	if err := s.manager.SaveTagging(ctx, n, taggable.WithMetadata(metadataOf(req.TaggedBy, req.Source))); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	h.respond(w, r, s, n, http.StatusOK)
}

// Delete removes a note and its taggings.
//
// @Summary      Delete a note
// @Tags         Notes
// @Param        id   path  string  true  "Note ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notes/{id} [delete]
func (h *notesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := h.deps.newSession()
	n, err := s.content.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	if err := s.content.DeleteNote(r.Context(), n); err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
