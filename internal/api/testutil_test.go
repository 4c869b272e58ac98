package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/joestump/taggable/internal/api"
	"github.com/joestump/taggable/internal/testutil"
)

// testEnv holds the router and database used by API integration tests.
type testEnv struct {
	Router http.Handler
	DB     *sqlx.DB
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	router := api.NewRouter(api.Deps{DB: db, Separator: ",", Logger: zerolog.Nop()})
	return &testEnv{Router: router, DB: db}
}

// do sends a request with an optional JSON body and returns the recorder.
func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decode reads a JSON response body into v after checking the status code.
func decode(t *testing.T, rec *httptest.ResponseRecorder, status int, v any) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, status, rec.Body.String())
	}
	if v == nil {
		return
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

// createArticle creates an article through the API.
func createArticle(t *testing.T, env *testEnv, title string, tags ...string) api.ArticleResponse {
	t.Helper()
	var resp api.ArticleResponse
	decode(t, env.do(t, "POST", "/articles", api.CreateArticleRequest{Title: title, Tags: tags}), http.StatusCreated, &resp)
	return resp
}

func countTaggings(t *testing.T, env *testEnv) int {
	t.Helper()
	var n int
	if err := env.DB.Get(&n, `SELECT COUNT(*) FROM taggings`); err != nil {
		t.Fatalf("count taggings: %v", err)
	}
	return n
}
