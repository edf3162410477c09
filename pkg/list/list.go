package list

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynform/pkg/values"
)

// Entry is one row of the list.
type Entry struct {
	ID     string
	Values map[string]any
}

// List is a single dependent list. It is not safe for concurrent use; the
// owning form serialises every mutation.
type List struct {
	name    string
	min     int
	active  bool
	entries []Entry
	newID   func() string
}

// Option configures a List.
type Option func(*List)

// WithIDGenerator replaces the uuid generator, mostly for deterministic
// tests.
func WithIDGenerator(fn func() string) Option {
	return func(l *List) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// New builds an inactive, empty list. minEntries below one is raised to one.
func New(name string, minEntries int, opts ...Option) *List {
	if minEntries < 1 {
		minEntries = 1
	}
	l := &List{
		name:  name,
		min:   minEntries,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Name returns the list name.
func (l *List) Name() string { return l.name }

// Min returns the minimum number of entries enforced while active.
func (l *List) Min() int { return l.min }

// Active reports whether the owning branch is active.
func (l *List) Active() bool { return l.active }

// Activate marks the owning branch as active.
func (l *List) Activate() { l.active = true }

// Deactivate marks the owning branch as inactive. Entries are retained.
func (l *List) Deactivate() { l.active = false }

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the rows in order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, entry := range l.entries {
		out[i] = Entry{ID: entry.ID, Values: values.Clone(entry.Values)}
	}
	return out
}

// Entry returns the row at index.
func (l *List) Entry(index int) (Entry, error) {
	if err := l.checkIndex(index); err != nil {
		return Entry{}, err
	}
	entry := l.entries[index]
	return Entry{ID: entry.ID, Values: values.Clone(entry.Values)}, nil
}

// Append adds a row with a fresh identity at the end. There is no upper
// bound.
func (l *List) Append(defaults map[string]any) Entry {
	entry := l.newEntry(defaults)
	l.entries = append(l.entries, entry)
	return Entry{ID: entry.ID, Values: values.Clone(entry.Values)}
}

// Remove deletes the row at index. It returns ErrRemoveBlocked when the list
// is active and would fall below its minimum.
func (l *List) Remove(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if l.active && len(l.entries)-1 < l.min {
		return fmt.Errorf("%w: %s keeps at least %d", ErrRemoveBlocked, l.name, l.min)
	}
	l.entries = append(l.entries[:index:index], l.entries[index+1:]...)
	return nil
}

// RemoveID deletes the row carrying id, with the same guard as Remove.
func (l *List) RemoveID(id string) error {
	idx := l.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s has no entry %q", ErrUnknownEntry, l.name, id)
	}
	return l.Remove(idx)
}

// IndexOf returns the position of id or -1.
func (l *List) IndexOf(id string) int {
	for i, entry := range l.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// ReplaceAll discards every row and installs rows built from rows, each
// with a fresh identity.
func (l *List) ReplaceAll(rows []map[string]any) []Entry {
	next := make([]Entry, 0, len(rows))
	for _, row := range rows {
		next = append(next, l.newEntry(row))
	}
	l.entries = next
	return l.Entries()
}

// Set writes one sub-field of the row at index.
func (l *List) Set(index int, field string, value any) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	entry := l.entries[index]
	if entry.Values == nil {
		entry.Values = make(map[string]any)
	}
	entry.Values[field] = value
	l.entries[index] = entry
	return nil
}

// Snapshot returns the rows as plain maps for validation and submission.
func (l *List) Snapshot() []map[string]any {
	out := make([]map[string]any, len(l.entries))
	for i, entry := range l.entries {
		out[i] = values.Clone(entry.Values)
	}
	return out
}

func (l *List) newEntry(row map[string]any) Entry {
	return Entry{ID: l.newID(), Values: values.Clone(row)}
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= len(l.entries) {
		return &IndexError{List: l.name, Index: index, Len: len(l.entries)}
	}
	return nil
}
