package values_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/values"
)

func TestParsePath_Notations(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"fullName":            "fullName",
		"languages[2].name":   "languages[2].name",
		"languages.2.name":    "languages[2].name",
		"$.languages[0].name": "languages[0].name",
		"#/languages/1/name":  "languages[1].name",
		" owner.email ":       "owner.email",
	}
	for raw, want := range cases {
		path, err := values.ParsePath(raw)
		if err != nil {
			t.Fatalf("ParsePath(%q) returned error: %v", raw, err)
		}
		if got := path.String(); got != want {
			t.Fatalf("ParsePath(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParsePath_Rejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "[0].name", "a..b"} {
		if _, err := values.ParsePath(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestGet_TraversesLists(t *testing.T) {
	t.Parallel()

	snapshot := map[string]any{
		"fullName": "Ada",
		"languages": []any{
			map[string]any{"name": "Go"},
			map[string]any{"name": "Rust"},
		},
	}

	got, ok := values.Get(snapshot, "languages[1].name")
	if !ok || got != "Rust" {
		t.Fatalf("expected Rust, got %v (ok=%v)", got, ok)
	}
	if _, ok := values.Get(snapshot, "languages[5].name"); ok {
		t.Fatalf("expected out-of-range lookup to miss")
	}
	if got, ok := values.Get(snapshot, "fullName"); !ok || got != "Ada" {
		t.Fatalf("expected Ada, got %v", got)
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	t.Parallel()

	src := map[string]any{
		"languages": []map[string]any{{"name": "Go"}},
	}
	clone := values.Clone(src)
	clone["languages"].([]map[string]any)[0]["name"] = "Zig"

	want := map[string]any{"languages": []map[string]any{{"name": "Go"}}}
	if diff := cmp.Diff(want, src); diff != "" {
		t.Fatalf("source mutated (-want +got):\n%s", diff)
	}
}

func TestEntries_RequiresObjects(t *testing.T) {
	t.Parallel()

	got, err := values.Entries([]any{map[string]any{"name": "Go"}, map[string]string{"name": "Rust"}})
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []map[string]any{{"name": "Go"}, {"name": "Rust"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	for _, value := range []any{[]any{"Go", "Rust"}, []any{map[string]any{}, 3}, "Go", nil} {
		if _, err := values.Entries(value); !errors.Is(err, values.ErrNotSequence) {
			t.Fatalf("%#v: expected ErrNotSequence, got %v", value, err)
		}
	}
}
