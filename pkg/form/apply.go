package form

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/values"
)

// Apply seeds the form from a values document such as a prefilled record or
// a file passed on the command line. Drivers are applied first so the
// branches they select are active before their fields and lists are
// written. List values replace the current rows of an active list.
// Keys that are not declared by the schema return ErrUnknownField.
//
// The whole document is checked before anything is written: a rejected
// document leaves the form unchanged.
func (f *Form) Apply(input map[string]any) error {
	if len(input) == 0 {
		return nil
	}

	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if err := f.checkInput(keys, input); err != nil {
		return err
	}

	for _, group := range f.schema.Groups {
		value, ok := input[group.Driver.Name]
		if !ok {
			continue
		}
		if err := f.SetField(group.Driver.Name, value); err != nil {
			return err
		}
	}

	for _, key := range keys {
		if _, ok := f.schema.GroupForDriver(key); ok {
			continue
		}
		if _, ok := f.schema.List(key); ok {
			if err := f.applyList(key, input[key]); err != nil {
				return err
			}
			continue
		}
		if err := f.SetField(key, input[key]); err != nil {
			return err
		}
	}
	return nil
}

// checkInput resolves the branches the document selects and rejects every
// key the write pass would fail on.
func (f *Form) checkInput(keys []string, input map[string]any) error {
	selected := make(map[string]string, len(f.schema.Groups))
	for _, group := range f.schema.Groups {
		branch := f.machines[group.Name].Current()
		if value, ok := input[group.Driver.Name]; ok {
			next, err := model.ActiveBranch(group, value)
			if err != nil {
				return fmt.Errorf("form: set %s: %w", group.Driver.Name, err)
			}
			branch = next
		}
		selected[group.Name] = model.BranchKey(branch.Value)
	}

	for _, key := range keys {
		if _, ok := f.schema.GroupForDriver(key); ok {
			continue
		}
		if owner, ok := f.schema.List(key); ok {
			if selected[owner.Group.Name] != model.BranchKey(owner.Branch.Value) {
				return fmt.Errorf("%w: %s", ErrInactiveField, key)
			}
			if _, err := listRows(owner.List, input[key]); err != nil {
				return err
			}
			continue
		}
		if _, ok := f.schema.Field(key); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}
	return nil
}

func (f *Form) applyList(name string, raw any) error {
	l, owner, err := f.list(name)
	if err != nil {
		return err
	}
	if !l.Active() {
		return fmt.Errorf("%w: %s", ErrInactiveField, name)
	}

	rows, err := listRows(owner.List, raw)
	if err != nil {
		return err
	}
	for _, row := range rows {
		for key, value := range row {
			row[key] = f.clean(value)
		}
	}
	for len(rows) < l.Min() {
		rows = append(rows, owner.List.BlankEntry())
	}
	l.ReplaceAll(rows)
	return f.onFieldChanged(name)
}

// listRows converts a document value into blank-filled rows of spec.
func listRows(spec model.ListSpec, raw any) ([]map[string]any, error) {
	items, err := values.Entries(raw)
	if err != nil {
		return nil, fmt.Errorf("form: list %s: %w", spec.Name, err)
	}
	rows := make([]map[string]any, 0, len(items))
	for idx, item := range items {
		row := spec.BlankEntry()
		for key, value := range item {
			if _, ok := spec.ItemField(key); !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownField, values.ItemPath(spec.Name, idx, key))
			}
			row[key] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
