// Package api exposes articles, notes and tag queries over JSON.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/joestump/taggable/internal/content"
	"github.com/joestump/taggable/internal/metrics"
	"github.com/joestump/taggable/internal/store"
	"github.com/joestump/taggable/internal/taggable"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	DB             *sqlx.DB
	Separator      string
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// session is the unit of work of one request.
type session struct {
	uow     *store.Store
	manager *taggable.Manager
	content *content.Store
}

// newSession wires a fresh store, manager and deletion listener for one request, so
// staged writes are never shared between requests.
func (d Deps) newSession() *session {
	uow := store.New(d.DB, store.WithLogger(d.Logger))
	m := taggable.NewManager(uow,
		taggable.WithSeparator(d.Separator),
		taggable.WithLogger(d.Logger),
	)
	uow.Subscribe(taggable.NewListener(m))
	return &session{uow: uow, manager: m, content: content.NewStore(uow)}
}

// NewRouter creates the chi router serving the JSON API.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(jsonContentType)
	r.Use(observe(deps.Logger))

	registerArticleRoutes(r, deps)
	registerNoteRoutes(r, deps)
	registerTagRoutes(r, deps)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// observe logs each request and records its duration by route pattern.
func observe(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			metrics.RequestDuration.WithLabelValues(route, strconv.Itoa(ww.Status())).Observe(elapsed.Seconds())
			log.Debug().
				Str("method", r.Method).
				Str("route", route).
				Int("status", ww.Status()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
