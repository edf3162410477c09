package form

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/validation"
)

// Submit runs a final validation. When the active branch set is invalid the
// record is nil, the returned result carries the errors and the handler is
// not called. Otherwise the record holds only the effective field set and is
// passed through the transformers. A transformed record is validated again
// and blocked the same way when it no longer passes; only a record that
// passed validation reaches the submit handler. A
// non-nil error always means a schema problem, a transformer failure or a
// handler failure, never invalid input.
func (f *Form) Submit(ctx context.Context) (Record, validation.Result, error) {
	if ctx == nil {
		return nil, validation.Result{}, errors.New("form: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, validation.Result{}, err
	}

	if err := f.revalidate(); err != nil {
		return nil, validation.Result{}, fmt.Errorf("form: submit: %w", err)
	}
	result := f.Result()
	if !result.Valid {
		f.logger.Debug("submit blocked", zap.Strings("invalid", result.Paths()))
		return nil, result, nil
	}

	record, err := f.record()
	if err != nil {
		return nil, result, err
	}
	for _, transform := range f.transformers {
		record, err = transform(record)
		if err != nil {
			return nil, result, fmt.Errorf("form: submit transformer: %w", err)
		}
	}
	if len(f.transformers) > 0 {
		checked, err := validation.Validate(f.schema, record)
		if err != nil {
			return nil, result, fmt.Errorf("form: submit: %w", err)
		}
		if !checked.Valid {
			f.logger.Debug("submit blocked after transform", zap.Strings("invalid", checked.Paths()))
			return nil, checked, nil
		}
	}

	if f.handler != nil {
		if err := f.handler(ctx, record); err != nil {
			return record, result, fmt.Errorf("form: submit handler: %w", err)
		}
	}
	f.logger.Debug("submitted", zap.Int("fields", len(record)))
	return record, result, nil
}

// record filters the current values down to the effective field set.
func (f *Form) record() (Record, error) {
	snapshot := f.snapshot()
	set, err := f.schema.Effective(snapshot)
	if err != nil {
		return nil, fmt.Errorf("form: submit: %w", err)
	}

	record := make(Record, len(set.Fields)+len(set.Branches)+len(set.Lists))
	for _, field := range set.Fields {
		record[field.Name] = snapshot[field.Name]
	}
	for _, active := range set.Branches {
		record[active.Group.Driver.Name] = snapshot[active.Group.Driver.Name]
	}
	for _, spec := range set.Lists {
		record[spec.Name] = f.lists[spec.Name].Snapshot()
	}
	return record, nil
}
