package form

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/values"
)

// FieldKind classifies the rows of the render boundary.
type FieldKind string

const (
	FieldKindInput  FieldKind = "input"
	FieldKindDriver FieldKind = "driver"
	FieldKindList   FieldKind = "list"
	FieldKindEntry  FieldKind = "entry"
)

// FieldState is what a renderer needs to draw one row: the current value,
// the error (empty when valid) and whether the row belongs to an active
// branch. Renderers must hide rows where Active is false; those rows never
// carry an error. Driver names the driver controlling a branch row and is
// empty for base fields.
type FieldState struct {
	Path    string
	Label   string
	Kind    FieldKind
	Type    model.FieldType
	Value   any
	Error   string
	Active  bool
	Driver  string
	Options []string
	List    string
	EntryID string
	Index   int
}

// Fields returns every declared row in schema order: base fields, then for
// each group its driver followed by the fields, list and entries of each
// branch.
func (f *Form) Fields() []FieldState {
	var out []FieldState
	for _, field := range f.schema.Fields {
		out = append(out, f.inputState(field, "", true))
	}

	for _, group := range f.schema.Groups {
		current := f.machines[group.Name].Current()
		out = append(out, f.driverState(group))

		for _, branch := range group.Branches {
			active := model.BranchKey(branch.Value) == model.BranchKey(current.Value)
			for _, field := range branch.Fields {
				out = append(out, f.inputState(field, group.Driver.Name, active))
			}
			if branch.List != nil {
				out = append(out, f.listStates(*branch.List, group.Driver.Name, active)...)
			}
		}
	}
	return out
}

// Field returns the render state of a single path.
func (f *Form) Field(path string) (FieldState, bool) {
	normalized := values.NormalizePath(path)
	for _, state := range f.Fields() {
		if state.Path == normalized {
			return state, true
		}
	}
	return FieldState{}, false
}

// Visible returns only the rows a renderer should draw.
func (f *Form) Visible() []FieldState {
	all := f.Fields()
	out := make([]FieldState, 0, len(all))
	for _, state := range all {
		if state.Active {
			out = append(out, state)
		}
	}
	return out
}

func (f *Form) inputState(field model.FieldSpec, driver string, active bool) FieldState {
	state := FieldState{
		Path:    field.Name,
		Label:   field.DisplayLabel(),
		Kind:    FieldKindInput,
		Type:    field.Type,
		Value:   f.scalarValue(field),
		Active:  active,
		Driver:  driver,
		Options: field.Enum,
		Index:   -1,
	}
	if active {
		state.Error = f.result.Errors[field.Name]
	}
	return state
}

func (f *Form) driverState(group model.ConditionalGroup) FieldState {
	options := group.Driver.Enum
	if len(options) == 0 && group.Driver.Type != model.FieldTypeBoolean {
		for _, branch := range group.Branches {
			options = append(options, model.BranchKey(branch.Value))
		}
	}
	return FieldState{
		Path:    group.Driver.Name,
		Label:   group.Driver.DisplayLabel(),
		Kind:    FieldKindDriver,
		Type:    group.Driver.Type,
		Value:   f.scalars[group.Driver.Name],
		Error:   f.result.Errors[group.Driver.Name],
		Active:  true,
		Options: options,
		Index:   -1,
	}
}

func (f *Form) listStates(spec model.ListSpec, driver string, active bool) []FieldState {
	l := f.lists[spec.Name]
	label := spec.Label
	if label == "" {
		label = spec.Name
	}

	header := FieldState{
		Path:   spec.Name,
		Label:  label,
		Kind:   FieldKindList,
		Value:  l.Len(),
		Active: active,
		Driver: driver,
		List:   spec.Name,
		Index:  -1,
	}
	if active {
		header.Error = f.result.Errors[spec.Name]
	}
	out := []FieldState{header}

	for idx, entry := range l.Entries() {
		for _, field := range spec.Item {
			path := values.ItemPath(spec.Name, idx, field.Name)
			value, ok := entry.Values[field.Name]
			if !ok {
				value = ""
			}
			state := FieldState{
				Path:    path,
				Label:   field.DisplayLabel(),
				Kind:    FieldKindEntry,
				Type:    field.Type,
				Value:   value,
				Active:  active,
				Driver:  driver,
				Options: field.Enum,
				List:    spec.Name,
				EntryID: entry.ID,
				Index:   idx,
			}
			if active {
				state.Error = f.result.Errors[path]
			}
			out = append(out, state)
		}
	}
	return out
}

func (f *Form) scalarValue(field model.FieldSpec) any {
	if value, ok := f.scalars[field.Name]; ok && value != nil {
		return value
	}
	if field.Type == model.FieldTypeBoolean {
		return false
	}
	return ""
}
