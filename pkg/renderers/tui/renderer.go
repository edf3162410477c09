package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/list"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/validation"
)

const (
	listActionDone   = "done"
	listActionAdd    = "add entry"
	listActionRemove = "remove last entry"
)

var listActions = []string{listActionDone, listActionAdd, listActionRemove}

// Renderer collects input for a form through a PromptDriver. It walks the
// visible rows in order, so fields of a branch are asked right after the
// driver that selected it, and submits once every row has been visited.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	maxPasses    int
	logger       *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		maxPasses:    defaultMaxPasses,
		logger:       zap.NewNop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	r.logger = r.logger.Named("tui")

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every visible row, submits the form and serializes
// the accepted record. A blocked submit prints the form view and walks the
// invalid rows again, up to the configured number of passes.
func (r *Renderer) Render(ctx context.Context, f *form.Form) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}

	for pass := 0; pass < r.maxPasses; pass++ {
		if err := r.walk(ctx, f, pass > 0); err != nil {
			return nil, err
		}

		record, result, err := f.Submit(ctx)
		if err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
		if result.Valid {
			return r.serialize(record)
		}

		r.logger.Debug("submit blocked",
			zap.Int("pass", pass+1),
			zap.Strings("invalid", result.Paths()))
		if err := r.driver.Info(ctx, View(f)); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w after %d passes", ErrIncomplete, r.maxPasses)
}

// walk visits rows until none is left. The visible set is recomputed after
// every prompt because a driver answer can reveal or hide rows.
func (r *Renderer) walk(ctx context.Context, f *form.Form, onlyInvalid bool) error {
	done := make(map[string]bool)
	for {
		row, ok := nextRow(f.Visible(), done, onlyInvalid)
		if !ok {
			return nil
		}
		done[rowKey(row)] = true

		var err error
		switch row.Kind {
		case form.FieldKindDriver:
			err = r.promptDriver(ctx, f, row)
		case form.FieldKindList:
			err = r.promptList(ctx, f, row, done)
		default:
			err = r.promptInput(ctx, f, row)
		}
		if err != nil {
			return err
		}
	}
}

func nextRow(rows []form.FieldState, done map[string]bool, onlyInvalid bool) (form.FieldState, bool) {
	for _, row := range rows {
		if done[rowKey(row)] {
			continue
		}
		if onlyInvalid && row.Error == "" {
			continue
		}
		return row, true
	}
	return form.FieldState{}, false
}

func (r *Renderer) promptDriver(ctx context.Context, f *form.Form, row form.FieldState) error {
	var value any
	if row.Type == model.FieldTypeBoolean {
		current, _ := row.Value.(bool)
		resp, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: row.Label,
			Default: current,
		})
		if err != nil {
			return err
		}
		value = resp
	} else {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      row.Label,
			Options:      row.Options,
			DefaultIndex: indexOf(row.Options, model.BranchKey(row.Value)),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(row.Options) {
			return fmt.Errorf("%w: %s index %d", ErrInvalidSelection, row.Path, idx)
		}
		value = row.Options[idx]
	}

	if err := f.SetField(row.Path, value); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// promptInput asks for one value and re-prompts while the row reports an
// error, at most maxAttempts times.
func (r *Renderer) promptInput(ctx context.Context, f *form.Form, row form.FieldState) error {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		value, err := r.ask(ctx, f, row)
		if err != nil {
			return err
		}
		if err := f.SetField(row.Path, value); err != nil {
			return fmt.Errorf("tui: %w", err)
		}

		current, ok := f.Field(row.Path)
		if !ok || current.Error == "" {
			return nil
		}
		row = current
		if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", row.Label, row.Error)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) ask(ctx context.Context, f *form.Form, row form.FieldState) (any, error) {
	switch {
	case row.Type == model.FieldTypeBoolean:
		current, _ := row.Value.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: row.Label,
			Default: current,
		})
	case len(row.Options) > 0:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      row.Label,
			Options:      row.Options,
			DefaultIndex: indexOf(row.Options, fmt.Sprint(row.Value)),
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(row.Options) {
			return nil, fmt.Errorf("%w: %s index %d", ErrInvalidSelection, row.Path, idx)
		}
		return row.Options[idx], nil
	default:
		current, _ := row.Value.(string)
		cfg := InputConfig{
			Message: row.Label,
			Default: current,
			Help:    row.Error,
		}
		if spec, ok := f.Schema().FieldAt(row.Path); ok {
			cfg.Validate = func(text string) string {
				return validation.CheckField(spec, text)
			}
		}
		return r.driver.Input(ctx, cfg)
	}
}

// promptList asks for every entry of the list, then offers to add or
// remove entries until the user is done.
func (r *Renderer) promptList(ctx context.Context, f *form.Form, header form.FieldState, done map[string]bool) error {
	for {
		for _, row := range f.Visible() {
			if row.Kind != form.FieldKindEntry || row.List != header.List || done[rowKey(row)] {
				continue
			}
			done[rowKey(row)] = true
			if err := r.promptInput(ctx, f, row); err != nil {
				return err
			}
		}

		entries, err := f.Entries(header.List)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("%s (%s)", header.Label, countEntries(len(entries))),
			Options: listActions,
		})
		if err != nil {
			return err
		}

		switch {
		case idx < 0 || idx >= len(listActions):
			return fmt.Errorf("%w: %s index %d", ErrInvalidSelection, header.Path, idx)
		case listActions[idx] == listActionDone:
			return nil
		case listActions[idx] == listActionAdd:
			if _, err := f.Append(header.List); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
		case listActions[idx] == listActionRemove:
			err := f.Remove(header.List, len(entries)-1)
			if errors.Is(err, list.ErrRemoveBlocked) {
				msg := fmt.Sprintf("%s keeps at least %s", header.Label, countEntries(len(entries)))
				if err := r.driver.Info(ctx, msg); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
		}
	}
}

// rowKey identifies a row across list edits. Entry paths are positional and
// come back after a remove, so entry rows are keyed by entry identity.
func rowKey(row form.FieldState) string {
	if row.Kind != form.FieldKindEntry {
		return row.Path
	}
	return row.EntryID + "/" + row.Path[strings.LastIndexByte(row.Path, '.')+1:]
}

func countEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func (r *Renderer) serialize(record form.Record) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(record)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(record)), nil
	default:
		return json.Marshal(record)
	}
}

func flattenForm(record form.Record) string {
	flattened := url.Values{}
	flatten("", map[string]any(record), flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []map[string]any:
		for idx, val := range v {
			flatten(fmt.Sprintf("%s[%d]", prefix, idx), val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(record form.Record) string {
	var b strings.Builder
	writePretty(&b, "", map[string]any(record))
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []map[string]any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
