package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

const defaultRendererName = "view"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaFS supplies the filesystem SchemaPath requests are resolved
// against. Defaults to the bundled schemas.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.schemaFS = fsys
	}
}

// WithSchemaTransformer registers a Transformer that patches the schema
// before the form is built.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithFormOptions appends options applied to every form the orchestrator
// builds.
func WithFormOptions(opts ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, opts...)
	}
}

// WithLogger sets the logger handed to built forms and used for pipeline
// diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates loading a schema, building a form, seeding values
// and rendering. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	schemaFS        fs.FS
	transformer     Transformer
	formOptions     []form.Option
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form session.
type Request struct {
	// Schema bypasses the filesystem lookup when set.
	Schema *model.Schema

	// SchemaPath is resolved against the configured schema filesystem. Empty
	// selects the bundled profile schema.
	SchemaPath string

	// Values seeds the form before rendering; see form.Form.Apply.
	Values map[string]any

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// FormOptions are appended after the orchestrator-wide form options.
	FormOptions []form.Option
}

// Build resolves the schema, applies the transformer, builds the form and
// seeds the request values.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*form.Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	schema, err := o.resolveSchema(req)
	if err != nil {
		return nil, err
	}
	if err := o.applyTransformer(ctx, &schema); err != nil {
		return nil, err
	}

	opts := make([]form.Option, 0, len(o.formOptions)+len(req.FormOptions)+1)
	opts = append(opts, form.WithLogger(o.logger))
	opts = append(opts, o.formOptions...)
	opts = append(opts, req.FormOptions...)

	f, err := form.New(schema, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	if err := f.Apply(req.Values); err != nil {
		return nil, fmt.Errorf("orchestrator: apply values: %w", err)
	}

	o.logger.Debug("form built",
		zap.String("schema", schema.Name),
		zap.Int("values", len(req.Values)),
		zap.Bool("valid", f.Valid()))
	return f, nil
}

// Generate executes Build and hands the form to the selected renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	f, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry so callers can add renderers after
// construction.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveSchema(req Request) (model.Schema, error) {
	if req.Schema != nil {
		return req.Schema.Clone(), nil
	}
	path := req.SchemaPath
	if path == "" {
		path = model.ProfileSchemaPath
	}
	if o.schemaFS == nil {
		return model.Schema{}, errors.New("orchestrator: schema filesystem is nil")
	}
	schema, err := model.LoadFS(o.schemaFS, path)
	if err != nil {
		return model.Schema{}, fmt.Errorf("orchestrator: load schema: %w", err)
	}
	return schema, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, schema *model.Schema) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, schema); err != nil {
		return fmt.Errorf("orchestrator: transform schema: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.schemaFS == nil {
		o.schemaFS = model.EmbeddedFS()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry != nil {
		return
	}

	o.registry = render.NewRegistry(tui.NewViewRenderer(), tui.NewReportRenderer())
	renderer, err := tui.New(tui.WithLogger(o.logger))
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(renderer)
}
