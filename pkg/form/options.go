package form

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/list"
)

// Record is the validated, effective-set-filtered payload handed to the
// submit handler.
type Record map[string]any

// SubmitHandler receives a record after it passed validation.
type SubmitHandler func(ctx context.Context, record Record) error

// SubmitTransformer rewrites a record before it reaches the handler. The
// rewritten record is validated again.
type SubmitTransformer func(Record) (Record, error)

// Option configures a Form.
type Option func(*Form)

// WithSubmitHandler installs the collaborator that receives valid records.
func WithSubmitHandler(handler SubmitHandler) Option {
	return func(f *Form) {
		f.handler = handler
	}
}

// WithSubmitTransformer appends a record transformer. Transformers run in
// registration order.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(f *Form) {
		if fn != nil {
			f.transformers = append(f.transformers, fn)
		}
	}
}

// WithSanitizer strips markup from every string value as it is written, so
// the stored, validated and submitted values are the same plain text. A nil
// policy selects bluemonday's strict policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	if policy == nil {
		policy = bluemonday.StrictPolicy()
	}
	return func(f *Form) {
		f.sanitizer = policy
	}
}

// WithLogger sets the logger used for transition and submit diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithClearInactive drops the stored values of a branch when its group
// leaves it. By default values are retained and only excluded from
// validation and submission.
func WithClearInactive(enabled bool) Option {
	return func(f *Form) {
		f.clearInactive = enabled
	}
}

// WithListOptions forwards options to every dependent list, for example a
// deterministic id generator.
func WithListOptions(opts ...list.Option) Option {
	return func(f *Form) {
		f.listOpts = append(f.listOpts, opts...)
	}
}

// WithIDGenerator replaces the uuid generator used for list entry
// identities.
func WithIDGenerator(fn func() string) Option {
	return WithListOptions(list.WithIDGenerator(fn))
}
