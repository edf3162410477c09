// Package form is the mutable root of a conditional form. A Form owns every
// field value, one branch state machine per conditional group and one
// dependent list per list-owning branch. Every mutation (SetField, Append,
// Remove, RemoveID) runs to completion and ends with a full re-validation, so
// the error set always reflects the whole current state. When a driver moves
// its group into a branch that owns a list, the list is reset to exactly one
// blank entry; entries from earlier activations are discarded.
//
// A Form is not safe for concurrent mutation. Renderers are expected to
// forward input events one at a time from a single goroutine.
package form
