package api_test

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/joestump/taggable/internal/api"
)

func TestNotes_CreateGet(t *testing.T) {
	env := newTestEnv(t)

	var created api.NoteResponse
	rec := env.do(t, "POST", "/notes", api.CreateNoteRequest{Title: "groceries", Tags: " milk ,eggs,, Milk", Source: "cli"})
	decode(t, rec, http.StatusCreated, &created)
	if created.Tags != "milk, eggs" {
		t.Errorf("tags = %q, want %q", created.Tags, "milk, eggs")
	}
	if want := []string{"milk", "eggs"}; !reflect.DeepEqual(created.TagNames, want) {
		t.Errorf("tag names = %v, want %v", created.TagNames, want)
	}

	var got api.NoteResponse
	decode(t, env.do(t, "GET", "/notes/"+created.ID, nil), http.StatusOK, &got)
	if got.Tags != "milk, eggs" || got.Title != "groceries" {
		t.Errorf("got %+v", got)
	}
}

func TestNotes_ReplaceTags(t *testing.T) {
	env := newTestEnv(t)

	var created api.NoteResponse
	decode(t, env.do(t, "POST", "/notes", api.CreateNoteRequest{Title: "todo", Tags: "a, b"}), http.StatusCreated, &created)

	var resp api.NoteResponse
	decode(t, env.do(t, "PUT", "/notes/"+created.ID+"/tags", api.ReplaceNoteTagsRequest{Tags: "b, c"}), http.StatusOK, &resp)
	if resp.Tags != "b, c" {
		t.Errorf("tags = %q, want %q", resp.Tags, "b, c")
	}
	if got := countTaggings(t, env); got != 2 {
		t.Errorf("taggings = %d, want 2", got)
	}
}

func TestNotes_Delete(t *testing.T) {
	env := newTestEnv(t)

	var created api.NoteResponse
	decode(t, env.do(t, "POST", "/notes", api.CreateNoteRequest{Title: "tmp", Tags: "x"}), http.StatusCreated, &created)

	rec := env.do(t, "DELETE", "/notes/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := countTaggings(t, env); got != 0 {
		t.Errorf("taggings = %d, want 0", got)
	}
}

func TestNotes_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/notes/nonexistent", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestNotes_Create_TaggingFailureLeavesNoNote(t *testing.T) {
	env := newTestEnv(t)
	env.DB.MustExec(`DROP TABLE taggings`)

	rec := env.do(t, "POST", "/notes", api.CreateNoteRequest{Title: "orphan", Tags: "go"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var n int
	if err := env.DB.Get(&n, `SELECT COUNT(*) FROM notes`); err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if n != 0 {
		t.Errorf("notes = %d, want 0", n)
	}
}
