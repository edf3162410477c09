package model

import "github.com/goliatone/go-dynform/pkg/values"

// Field returns the base or branch field with the given name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	for _, group := range s.Groups {
		for _, branch := range group.Branches {
			for _, field := range branch.Fields {
				if field.Name == name {
					return field, true
				}
			}
		}
	}
	return FieldSpec{}, false
}

// GroupForDriver returns the group driven by the named field.
func (s Schema) GroupForDriver(name string) (ConditionalGroup, bool) {
	for _, group := range s.Groups {
		if group.Driver.Name == name {
			return group, true
		}
	}
	return ConditionalGroup{}, false
}

// Group returns the group with the given name.
func (s Schema) Group(name string) (ConditionalGroup, bool) {
	for _, group := range s.Groups {
		if group.Name == name {
			return group, true
		}
	}
	return ConditionalGroup{}, false
}

// ListOwner locates a list declaration together with the group and branch
// that own it.
type ListOwner struct {
	List   ListSpec
	Group  ConditionalGroup
	Branch Branch
}

// List returns the owner of the named list.
func (s Schema) List(name string) (ListOwner, bool) {
	for _, group := range s.Groups {
		for _, branch := range group.Branches {
			if branch.List != nil && branch.List.Name == name {
				return ListOwner{List: *branch.List, Group: group, Branch: branch}, true
			}
		}
	}
	return ListOwner{}, false
}

// Lists returns every list declaration in schema order.
func (s Schema) Lists() []ListOwner {
	var out []ListOwner
	for _, group := range s.Groups {
		for _, branch := range group.Branches {
			if branch.List != nil {
				out = append(out, ListOwner{List: *branch.List, Group: group, Branch: branch})
			}
		}
	}
	return out
}

// ItemField returns the sub-field declaration of a list entry.
func (l ListSpec) ItemField(name string) (FieldSpec, bool) {
	for _, field := range l.Item {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// FieldAt resolves a row path, `name` or `list[i].field`, to the declaration
// of the field it addresses. Drivers resolve to their group's driver spec.
func (s Schema) FieldAt(path string) (FieldSpec, bool) {
	parsed, err := values.ParsePath(path)
	if err != nil {
		return FieldSpec{}, false
	}

	switch {
	case len(parsed) == 1:
		if group, ok := s.GroupForDriver(parsed.Root()); ok {
			return group.Driver, true
		}
		return s.Field(parsed.Root())
	case len(parsed) == 3 && parsed[1].IsIndex() && !parsed[2].IsIndex():
		owner, ok := s.List(parsed.Root())
		if !ok {
			return FieldSpec{}, false
		}
		return owner.List.ItemField(parsed[2].Name)
	default:
		return FieldSpec{}, false
	}
}
