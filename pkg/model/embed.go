package model

import (
	"embed"
	"io/fs"
)

//go:embed schemas/*
var embeddedSchemas embed.FS

// ProfileSchemaPath is the location of the bundled profile form inside
// EmbeddedFS.
const ProfileSchemaPath = "profile.yaml"

// EmbeddedFS returns the bundled schema documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// ProfileSchema returns the bundled profile form declaration.
func ProfileSchema() Schema {
	schema, err := LoadFS(EmbeddedFS(), ProfileSchemaPath)
	if err != nil {
		panic(err)
	}
	return schema
}
