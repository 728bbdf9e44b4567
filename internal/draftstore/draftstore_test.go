package draftstore

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/dmalab/blogforge/internal/apperr"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/imagemeta"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "blogforge-draft-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testDraft(clientID string) *Draft {
	sess := imagemeta.NewSession()
	sess.CaptionMap["a.png"] = "[경복궁]"
	return &Draft{
		ClientID: clientID,
		Title:    delta.Delta{Ops: []delta.Op{delta.Text("Trip\n")}},
		Body: delta.Delta{Ops: []delta.Op{
			delta.StyledText("Morning", map[string]any{"bold": true}),
			delta.StyledText("\n", map[string]any{"header": float64(2)}),
			delta.Image("a.png", nil),
			delta.Text("Start early.\n"),
		}},
		Tags:      delta.Delta{Ops: []delta.Op{delta.Text("travel, seoul")}},
		ImageMeta: sess,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	db := testDB(t)
	d := testDraft("client-1")

	cs, err := db.Save(d, "")
	if err != nil {
		t.Fatal(err)
	}
	if cs != Checksum(d) {
		t.Errorf("returned checksum = %q, want %q", cs, Checksum(d))
	}

	got, err := db.Get("client-1")
	if err != nil {
		t.Fatal(err)
	}
	// Restore must reproduce the exact operation streams.
	if !reflect.DeepEqual(got.Body, d.Body) {
		t.Errorf("body = %#v, want %#v", got.Body, d.Body)
	}
	if !reflect.DeepEqual(got.Title, d.Title) {
		t.Errorf("title = %#v, want %#v", got.Title, d.Title)
	}
	if got.ImageMeta.Caption("a.png") != "[경복궁]" {
		t.Errorf("image meta lost: %+v", got.ImageMeta)
	}
	if got.Checksum != cs {
		t.Errorf("stored checksum = %q, want %q", got.Checksum, cs)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

func TestSaveRequiresClientID(t *testing.T) {
	db := testDB(t)
	if _, err := db.Save(&Draft{}, ""); err == nil {
		t.Error("expected error for empty client id")
	}
}

func TestSaveIfMatch(t *testing.T) {
	db := testDB(t)
	d := testDraft("client-1")

	cs, err := db.Save(d, "")
	if err != nil {
		t.Fatal(err)
	}

	// Matching checksum allows the save.
	d.Body.Ops = append(d.Body.Ops, delta.Text("more\n"))
	cs2, err := db.Save(d, cs)
	if err != nil {
		t.Fatalf("matching if-match rejected: %v", err)
	}
	if cs2 == cs {
		t.Error("checksum should change with content")
	}

	// Stale checksum is a conflict.
	if _, err := db.Save(d, cs); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// If-match against a missing draft is not a conflict (first save).
	fresh := testDraft("client-2")
	if _, err := db.Save(fresh, "anything"); err != nil {
		t.Errorf("first save with if-match failed: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	db := testDB(t)
	if _, err := db.Get("nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	if _, err := db.Save(testDraft("client-1"), ""); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete("client-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get("client-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Error("draft should be gone")
	}
	if err := db.Delete("client-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListPagination(t *testing.T) {
	db := testDB(t)
	for _, id := range []string{"a", "b", "c"} {
		if _, err := db.Save(testDraft(id), ""); err != nil {
			t.Fatal(err)
		}
	}

	drafts, total, err := db.List(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(drafts) != 2 {
		t.Errorf("page = %d, want 2", len(drafts))
	}

	rest, _, err := db.List(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 {
		t.Errorf("second page = %d, want 1", len(rest))
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t)
	d := testDraft("client-1")
	d.Body = delta.Delta{Ops: []delta.Op{delta.Text("gyeongbokgung palace at dawn\n")}}
	if _, err := db.Save(d, ""); err != nil {
		t.Fatal(err)
	}
	other := testDraft("client-2")
	other.Body = delta.Delta{Ops: []delta.Op{delta.Text("completely unrelated\n")}}
	if _, err := db.Save(other, ""); err != nil {
		t.Fatal(err)
	}

	results, err := db.Search("palace", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ClientID != "client-1" {
		t.Errorf("results = %+v", results)
	}
	if results[0].Snippet == "" {
		t.Error("expected a snippet")
	}
}
