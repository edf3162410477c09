package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Renderer turns a live form into bytes. Interactive renderers may mutate
// the form while collecting input; static renderers only read it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form) ([]byte, error)
}

// Func adapts a plain function to Renderer.
type Func struct {
	ID     string
	Type   string
	Handle func(ctx context.Context, f *form.Form) ([]byte, error)
}

// Name implements Renderer.
func (fn Func) Name() string { return fn.ID }

// ContentType implements Renderer.
func (fn Func) ContentType() string {
	if fn.Type == "" {
		return "text/plain"
	}
	return fn.Type
}

// Render implements Renderer.
func (fn Func) Render(ctx context.Context, f *form.Form) ([]byte, error) {
	if fn.Handle == nil {
		return nil, nil
	}
	return fn.Handle(ctx, f)
}
