package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type tagsAPIHandler struct {
	deps Deps
}

func registerTagRoutes(r chi.Router, deps Deps) {
	h := &tagsAPIHandler{deps: deps}
	r.Get("/tags", h.Counts)
	r.Get("/tags/split", h.Split)
	r.Get("/tags/{name}/resources", h.Resources)
}

// Counts returns tag usage counts for one resource type, most used first.
//
// @Summary      Count tag usage
// @Description  Counts the resources of one type per tag, most used first. A limit of 0 returns every tag.
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        type   query     string  true   "Resource type, e.g. article"
// @Param        limit  query     int     false  "Maximum number of tags"
// @Success      200    {object}  TagCountListResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /tags [get]
func (h *tagsAPIHandler) Counts(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("type")
	if resourceType == "" {
		writeError(w, http.StatusBadRequest, "type is required", "bad_request")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", "bad_request")
			return
		}
		limit = n
	}

	counts, err := h.deps.newSession().manager.TagsWithCount(r.Context(), resourceType, limit)
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}

	resp := TagCountListResponse{Tags: make([]TagCountResponse, 0, len(counts))}
	for _, c := range counts {
		resp.Tags = append(resp.Tags, TagCountResponse{Name: c.Name, Count: c.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Resources returns the ids of resources of one type tagged with the named tag.
//
// @Summary      List tagged resources
// @Description  Returns the ids of the resources of one type carrying the tag. The name is matched case-insensitively.
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        name  path      string  true  "Tag name"
// @Param        type  query     string  true  "Resource type, e.g. article"
// @Success      200   {object}  ResourceIDsResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /tags/{name}/resources [get]
func (h *tagsAPIHandler) Resources(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("type")
	if resourceType == "" {
		writeError(w, http.StatusBadRequest, "type is required", "bad_request")
		return
	}

	ids, err := h.deps.newSession().manager.ResourceIDsForTag(r.Context(), resourceType, chi.URLParam(r, "name"))
	if err != nil {
		writeStoreError(w, h.deps.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ResourceIDsResponse{IDs: ids})
}

// Split previews how a tag string is broken into names.
//
// @Summary      Split a tag string
// @Tags         Tags
// @Produce      json
// @Param        text  query     string  false  "Tag string"
// @Success      200   {object}  SplitResponse
// @Router       /tags/split [get]
func (h *tagsAPIHandler) Split(w http.ResponseWriter, r *http.Request) {
	names := h.deps.newSession().manager.SplitTagNames(r.URL.Query().Get("text"))
	writeJSON(w, http.StatusOK, SplitResponse{Names: names})
}
