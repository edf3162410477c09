package list_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/list"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func blank() map[string]any { return map[string]any{"name": ""} }

func TestAppend_AssignsFreshIdentities(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1, list.WithIDGenerator(sequentialIDs()))
	first := l.Append(blank())
	second := l.Append(map[string]any{"name": "Go"})

	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %q twice", first.ID)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}
	if got := l.IndexOf(second.ID); got != 1 {
		t.Fatalf("expected second entry at index 1, got %d", got)
	}
}

func TestAppend_UsesUUIDByDefault(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1)
	entry := l.Append(blank())
	if len(entry.ID) != 36 {
		t.Fatalf("expected uuid identity, got %q", entry.ID)
	}
}

func TestRemove_NeverBelowMinimumWhileActive(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1, list.WithIDGenerator(sequentialIDs()))
	l.Activate()
	l.ReplaceAll([]map[string]any{blank()})
	before := l.Entries()

	err := l.Remove(0)
	if !errors.Is(err, list.ErrRemoveBlocked) {
		t.Fatalf("expected ErrRemoveBlocked, got %v", err)
	}
	if diff := cmp.Diff(before, l.Entries()); diff != "" {
		t.Fatalf("blocked remove mutated the list (-want +got):\n%s", diff)
	}
}

func TestRemove_AllowedAboveMinimum(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1, list.WithIDGenerator(sequentialIDs()))
	l.Activate()
	l.ReplaceAll([]map[string]any{{"name": "Go"}, {"name": "Rust"}, {"name": "Zig"}})

	if err := l.Remove(1); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	var names []any
	for _, entry := range l.Entries() {
		names = append(names, entry.Values["name"])
	}
	if diff := cmp.Diff([]any{"Go", "Zig"}, names); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove_InactiveListMayEmpty(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1)
	l.Append(blank())
	if err := l.Remove(0); err != nil {
		t.Fatalf("expected inactive list to allow removal, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty list, got %d", l.Len())
	}
}

func TestRemove_OutOfRange(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1)
	l.Append(blank())

	err := l.Remove(3)
	if !errors.Is(err, list.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	var indexErr *list.IndexError
	if !errors.As(err, &indexErr) || indexErr.Index != 3 || indexErr.Len != 1 {
		t.Fatalf("unexpected index error %#v", err)
	}
	if err := l.Remove(-1); !errors.Is(err, list.ErrIndexOutOfRange) {
		t.Fatalf("expected negative index to fail, got %v", err)
	}
}

func TestRemoveID(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1, list.WithIDGenerator(sequentialIDs()))
	l.Activate()
	entries := l.ReplaceAll([]map[string]any{{"name": "Go"}, {"name": "Rust"}})

	if err := l.RemoveID(entries[0].ID); err != nil {
		t.Fatalf("RemoveID returned error: %v", err)
	}
	if got := l.Entries()[0].Values["name"]; got != "Rust" {
		t.Fatalf("expected Rust to remain, got %v", got)
	}
	if err := l.RemoveID("missing"); !errors.Is(err, list.ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
	if err := l.RemoveID(entries[1].ID); !errors.Is(err, list.ErrRemoveBlocked) {
		t.Fatalf("expected last entry to be protected, got %v", err)
	}
}

func TestReplaceAll_DiscardsAndReidentifies(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1, list.WithIDGenerator(sequentialIDs()))
	old := l.Append(map[string]any{"name": "Go"})
	l.Append(map[string]any{"name": "Rust"})

	replaced := l.ReplaceAll([]map[string]any{blank()})
	if len(replaced) != 1 {
		t.Fatalf("expected a single entry, got %d", len(replaced))
	}
	if replaced[0].ID == old.ID {
		t.Fatalf("expected fresh identity after ReplaceAll")
	}
	if diff := cmp.Diff([]map[string]any{{"name": ""}}, l.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_DoesNotLeakThroughEntries(t *testing.T) {
	t.Parallel()

	l := list.New("languages", 1)
	l.Append(blank())
	if err := l.Set(0, "name", "Go"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	entries := l.Entries()
	entries[0].Values["name"] = "mutated"

	entry, err := l.Entry(0)
	if err != nil {
		t.Fatalf("Entry returned error: %v", err)
	}
	if entry.Values["name"] != "Go" {
		t.Fatalf("expected Go, got %v", entry.Values["name"])
	}
	if err := l.Set(4, "name", "x"); !errors.Is(err, list.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}
