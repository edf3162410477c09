// Package values holds the path and snapshot helpers shared by the schema,
// validation and form packages. A snapshot is a plain map[string]any where
// scalars are stored as-is and repeated groups are ordered slices of
// map[string]any entries. Paths use the `list[2].field` notation; dotted
// numeric segments (`list.2.field`) are accepted on input.
package values
