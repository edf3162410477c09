// Package dynform is the convenience entry point for building conditional
// forms. The packages under pkg/ hold the actual implementation:
// pkg/model declares schemas, pkg/form owns form state and pkg/renderers/tui
// drives a form from the terminal.
package dynform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
)

// Request aliases orchestrator.Request for callers of Generate.
type Request = orchestrator.Request

// Record is the payload handed to a submit handler.
type Record = form.Record

// Schema is a form declaration.
type Schema = model.Schema

// New builds a form for schema.
func New(schema Schema, options ...form.Option) (*form.Form, error) {
	return form.New(schema, options...)
}

// NewProfile builds the bundled profile form.
func NewProfile(options ...form.Option) (*form.Form, error) {
	return form.New(model.ProfileSchema(), options...)
}

// LoadSchema reads a YAML or JSON schema declaration from fsys.
func LoadSchema(fsys fs.FS, path string) (Schema, error) {
	return model.LoadFS(fsys, path)
}

// ParseSchema decodes a YAML or JSON schema declaration.
func ParseSchema(data []byte) (Schema, error) {
	return model.Parse(data, "inline")
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate builds the requested form and renders it in one call.
func Generate(ctx context.Context, req Request, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, req)
}
