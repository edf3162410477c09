// Package list manages one variable-length list of repeated entries (for
// example the languages a person speaks). Entries carry a stable identity
// that is independent of their position so renderers can diff rows and
// delete by id. While the owning branch is active the list never shrinks
// below its minimum; removals that would do so are blocked and leave the
// list untouched.
package list
