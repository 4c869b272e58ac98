package api_test

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/joestump/taggable/internal/api"
)

func TestTags_Counts(t *testing.T) {
	env := newTestEnv(t)
	createArticle(t, env, "one", "alltag", "tag1", "tag3")
	createArticle(t, env, "two", "alltag", "tag2", "tag3")
	createArticle(t, env, "three", "alltag")

	var resp api.TagCountListResponse
	decode(t, env.do(t, "GET", "/tags?type=article", nil), http.StatusOK, &resp)
	want := []api.TagCountResponse{
		{Name: "alltag", Count: 3},
		{Name: "tag3", Count: 2},
		{Name: "tag1", Count: 1},
		{Name: "tag2", Count: 1},
	}
	if !reflect.DeepEqual(resp.Tags, want) {
		t.Errorf("tags = %+v, want %+v", resp.Tags, want)
	}

	decode(t, env.do(t, "GET", "/tags?type=article&limit=2", nil), http.StatusOK, &resp)
	if !reflect.DeepEqual(resp.Tags, want[:2]) {
		t.Errorf("limited tags = %+v, want %+v", resp.Tags, want[:2])
	}
}

func TestTags_Counts_BadRequest(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing type", "/tags"},
		{"bad limit", "/tags?type=article&limit=ten"},
		{"negative limit", "/tags?type=article&limit=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "GET", tt.target, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestTags_Resources(t *testing.T) {
	env := newTestEnv(t)
	first := createArticle(t, env, "one", "tag1", "tag3")
	second := createArticle(t, env, "two", "tag3")
	createArticle(t, env, "three", "tag2")

	var resp api.ResourceIDsResponse
	decode(t, env.do(t, "GET", "/tags/TAG3/resources?type=article", nil), http.StatusOK, &resp)
	if want := []string{first.ID, second.ID}; !reflect.DeepEqual(resp.IDs, want) {
		t.Errorf("ids = %v, want %v", resp.IDs, want)
	}

	decode(t, env.do(t, "GET", "/tags/tag3/resources?type=note", nil), http.StatusOK, &resp)
	if len(resp.IDs) != 0 {
		t.Errorf("ids = %v, want none", resp.IDs)
	}
}

func TestTags_Split(t *testing.T) {
	env := newTestEnv(t)

	var resp api.SplitResponse
	decode(t, env.do(t, "GET", "/tags/split?text=+a+,,+b+,c+", nil), http.StatusOK, &resp)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(resp.Names, want) {
		t.Errorf("names = %v, want %v", resp.Names, want)
	}
}
