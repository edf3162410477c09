package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/list"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
	"github.com/goliatone/go-dynform/pkg/values"
)

// Form holds the state of one form instance.
type Form struct {
	schema        model.Schema
	scalars       map[string]any
	lists         map[string]*list.List
	machines      map[string]*branchMachine
	result        validation.Result
	handler       SubmitHandler
	transformers  []SubmitTransformer
	sanitizer     *bluemonday.Policy
	logger        *zap.Logger
	clearInactive bool
	listOpts      []list.Option
}

// New checks the schema, seeds default values, activates the default
// branches and runs the initial validation.
func New(schema model.Schema, opts ...Option) (*Form, error) {
	if err := schema.Check(); err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}

	f := &Form{
		schema:   schema,
		scalars:  model.DefaultValues(schema),
		lists:    make(map[string]*list.List),
		machines: make(map[string]*branchMachine, len(schema.Groups)),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.logger = f.logger.Named("form")

	for _, owner := range schema.Lists() {
		f.lists[owner.List.Name] = list.New(owner.List.Name, owner.List.Min(), f.listOpts...)
	}

	for _, group := range schema.Groups {
		initial, err := model.ActiveBranch(group, group.Default)
		if err != nil {
			return nil, fmt.Errorf("form: %w", err)
		}
		f.scalars[group.Driver.Name] = initial.Value
		f.machines[group.Name] = newBranchMachine(group, initial, f.enterBranch)
		f.activate(initial)
	}

	if err := f.revalidate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Schema returns the declaration the form was built from.
func (f *Form) Schema() model.Schema {
	return f.schema
}

// SetField writes one value and re-validates the whole form. Driver writes
// resolve the new branch first; a value that selects no branch is rejected
// before anything is stored. Paths into lists use `list[i].field`.
func (f *Form) SetField(path string, value any) error {
	parsed, err := values.ParsePath(path)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	switch {
	case len(parsed) == 1:
		if err := f.setScalar(parsed.Root(), value); err != nil {
			return err
		}
	case len(parsed) == 3 && parsed[1].IsIndex() && !parsed[2].IsIndex():
		if err := f.setEntry(parsed.Root(), parsed[1].Index, parsed[2].Name, value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}

	return f.onFieldChanged(parsed.String())
}

func (f *Form) setScalar(name string, value any) error {
	if group, ok := f.schema.GroupForDriver(name); ok {
		return f.setDriver(group, value)
	}
	if _, ok := f.schema.List(name); ok {
		return fmt.Errorf("%w: %s", ErrNotScalar, name)
	}
	if _, ok := f.schema.Field(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.scalars[name] = f.clean(value)
	return nil
}

func (f *Form) setDriver(group model.ConditionalGroup, value any) error {
	branch, err := model.ActiveBranch(group, value)
	if err != nil {
		return fmt.Errorf("form: set %s: %w", group.Driver.Name, err)
	}
	f.scalars[group.Driver.Name] = branch.Value

	machine := f.machines[group.Name]
	if _, err := machine.Select(context.Background(), branch); err != nil {
		return err
	}
	return nil
}

func (f *Form) setEntry(name string, index int, field string, value any) error {
	l, owner, err := f.list(name)
	if err != nil {
		return err
	}
	if !l.Active() {
		return fmt.Errorf("%w: %s", ErrInactiveField, name)
	}
	if _, ok := owner.List.ItemField(field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, values.ItemPath(name, index, field))
	}
	if err := l.Set(index, field, f.clean(value)); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	return nil
}

// enterBranch is invoked by a group's machine after it changed branch.
func (f *Form) enterBranch(group model.ConditionalGroup, from, to model.Branch) {
	f.logger.Debug("branch transition",
		zap.String("group", group.Name),
		zap.String("from", model.BranchKey(from.Value)),
		zap.String("to", model.BranchKey(to.Value)))

	f.deactivate(from)
	f.activate(to)
}

// activate marks the branch list active and installs a single blank entry.
func (f *Form) activate(branch model.Branch) {
	if branch.List == nil {
		return
	}
	l := f.lists[branch.List.Name]
	l.Activate()
	l.ReplaceAll([]map[string]any{branch.List.BlankEntry()})
	f.logger.Debug("list reset", zap.String("list", l.Name()))
}

func (f *Form) deactivate(branch model.Branch) {
	if branch.List != nil {
		l := f.lists[branch.List.Name]
		l.Deactivate()
		if f.clearInactive {
			l.ReplaceAll(nil)
		}
	}
	if !f.clearInactive {
		return
	}
	for _, field := range branch.Fields {
		delete(f.scalars, field.Name)
	}
}

// Append adds a blank entry to an active list.
func (f *Form) Append(name string) (list.Entry, error) {
	l, owner, err := f.list(name)
	if err != nil {
		return list.Entry{}, err
	}
	if !l.Active() {
		return list.Entry{}, fmt.Errorf("%w: %s", ErrInactiveField, name)
	}
	entry := l.Append(owner.List.BlankEntry())
	return entry, f.onFieldChanged(name)
}

// Remove deletes the entry at index. A removal that would empty an active
// list returns list.ErrRemoveBlocked and changes nothing. Retained entries
// of an inactive list cannot be removed.
func (f *Form) Remove(name string, index int) error {
	l, err := f.activeList(name)
	if err != nil {
		return err
	}
	if err := l.Remove(index); err != nil {
		return f.removeFailed(name, err)
	}
	return f.onFieldChanged(name)
}

// RemoveID deletes the entry carrying id with the same guard as Remove.
func (f *Form) RemoveID(name, id string) error {
	l, err := f.activeList(name)
	if err != nil {
		return err
	}
	if err := l.RemoveID(id); err != nil {
		return f.removeFailed(name, err)
	}
	return f.onFieldChanged(name)
}

func (f *Form) activeList(name string) (*list.List, error) {
	l, _, err := f.list(name)
	if err != nil {
		return nil, err
	}
	if !l.Active() {
		return nil, fmt.Errorf("%w: %s", ErrInactiveField, name)
	}
	return l, nil
}

func (f *Form) removeFailed(name string, err error) error {
	if errors.Is(err, list.ErrRemoveBlocked) {
		f.logger.Debug("remove blocked", zap.String("list", name))
		return err
	}
	return fmt.Errorf("form: %w", err)
}

// Entries returns the rows of a list.
func (f *Form) Entries(name string) ([]list.Entry, error) {
	l, _, err := f.list(name)
	if err != nil {
		return nil, err
	}
	return l.Entries(), nil
}

func (f *Form) list(name string) (*list.List, model.ListOwner, error) {
	owner, ok := f.schema.List(name)
	if !ok {
		return nil, model.ListOwner{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return f.lists[name], owner, nil
}

// onFieldChanged recomputes derived state after a mutation of path.
func (f *Form) onFieldChanged(path string) error {
	if err := f.revalidate(); err != nil {
		return fmt.Errorf("form: after change of %s: %w", path, err)
	}
	return nil
}

func (f *Form) revalidate() error {
	result, err := validation.Validate(f.schema, f.snapshot())
	if err != nil {
		return err
	}
	f.result = result
	return nil
}

// snapshot copies the current values; active lists are included as plain
// entry maps.
func (f *Form) snapshot() map[string]any {
	out := values.Clone(f.scalars)
	for name, l := range f.lists {
		if l.Active() || l.Len() > 0 {
			out[name] = l.Snapshot()
		}
	}
	return out
}

// Snapshot returns a copy of every stored value, including retained values
// of inactive branches.
func (f *Form) Snapshot() map[string]any {
	return f.snapshot()
}

// Value resolves a single path against the current values.
func (f *Form) Value(path string) (any, bool) {
	return values.Get(f.snapshot(), path)
}

// Result returns the outcome of the latest validation pass.
func (f *Form) Result() validation.Result {
	out := validation.Result{Valid: f.result.Valid}
	if len(f.result.Errors) > 0 {
		out.Errors = make(map[string]string, len(f.result.Errors))
		for k, v := range f.result.Errors {
			out.Errors[k] = v
		}
	}
	return out
}

// Errors returns the field errors of the latest validation pass keyed by
// path.
func (f *Form) Errors() map[string]string {
	return f.Result().Errors
}

// Valid reports whether the latest validation pass succeeded.
func (f *Form) Valid() bool {
	return f.result.Valid
}

// ActiveBranch returns the active branch of the named group.
func (f *Form) ActiveBranch(group string) (model.Branch, bool) {
	machine, ok := f.machines[group]
	if !ok {
		return model.Branch{}, false
	}
	return machine.Current(), true
}
