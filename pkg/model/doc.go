// Package model defines the declarative schema of a conditional form: the
// always-required base fields plus any number of conditional groups, each
// discriminated by a boolean or enum driver field. Every branch of a group
// lists the extra fields (and optionally one repeated list) it requires while
// active. Schemas are plain values; once Check succeeds they are treated as
// immutable and shared read-only by the validation and form packages.
//
// Declarations can be written in Go or loaded from JSON/YAML documents via
// Parse and LoadFS. The bundled profile schema (EmbeddedFS, ProfileSchema)
// describes the reference form: a full name, optional work experience, an
// optional list of languages and an education level.
package model
