package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ActiveBranch maps a driver value onto the one branch it selects. It is a
// pure function; a value that matches no branch is a programmer error and is
// reported as *SchemaError wrapping ErrNoBranch.
func ActiveBranch(group ConditionalGroup, value any) (Branch, error) {
	for _, branch := range group.Branches {
		if driverMatches(group.Driver.Type, branch.Value, value) {
			return branch, nil
		}
	}
	return Branch{}, &SchemaError{
		Group:  group.Name,
		Driver: group.Driver.Name,
		Value:  value,
		Err:    ErrNoBranch,
	}
}

// BranchKey renders a branch value in the canonical form used for state
// names and comparisons (`true`, `false`, enum literal).
func BranchKey(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}

func driverMatches(kind FieldType, branchValue, value any) bool {
	if kind == FieldTypeBoolean {
		want, ok := coerceBool(branchValue)
		if !ok {
			return false
		}
		got, ok := coerceBool(value)
		return ok && got == want
	}
	if value == nil {
		return false
	}
	return BranchKey(branchValue) == BranchKey(value)
}

func coerceBool(value any) (bool, bool) {
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// Selection pairs a group with the branch its driver currently selects.
type Selection struct {
	Group  ConditionalGroup
	Branch Branch
}

// ActiveBranches resolves every group against the snapshot. A driver missing
// from the snapshot resolves to the group's default.
func (s Schema) ActiveBranches(snapshot map[string]any) ([]Selection, error) {
	out := make([]Selection, 0, len(s.Groups))
	for _, group := range s.Groups {
		value, ok := snapshot[group.Driver.Name]
		if !ok || value == nil {
			value = group.Default
		}
		branch, err := ActiveBranch(group, value)
		if err != nil {
			return nil, err
		}
		out = append(out, Selection{Group: group, Branch: branch})
	}
	return out, nil
}

// RequiredFieldsFor unions the base fields with the extra fields of the
// supplied branches. Declaration order is kept and names are deduplicated.
func (s Schema) RequiredFieldsFor(active []Branch) []FieldSpec {
	seen := make(map[string]struct{}, len(s.Fields))
	out := make([]FieldSpec, 0, len(s.Fields))
	add := func(field FieldSpec) {
		if _, ok := seen[field.Name]; ok {
			return
		}
		seen[field.Name] = struct{}{}
		out = append(out, field)
	}
	for _, field := range s.Fields {
		add(field)
	}
	for _, branch := range active {
		for _, field := range branch.Fields {
			add(field)
		}
	}
	return out
}

// EffectiveSet is the part of the schema that applies to one snapshot.
type EffectiveSet struct {
	Fields   []FieldSpec
	Lists    []ListSpec
	Branches []Selection
}

// Has reports whether name is a field, list or driver of the effective set.
func (e EffectiveSet) Has(name string) bool {
	for _, field := range e.Fields {
		if field.Name == name {
			return true
		}
	}
	for _, list := range e.Lists {
		if list.Name == name {
			return true
		}
	}
	for _, active := range e.Branches {
		if active.Group.Driver.Name == name {
			return true
		}
	}
	return false
}

// Effective computes the effective field set for the snapshot.
func (s Schema) Effective(snapshot map[string]any) (EffectiveSet, error) {
	active, err := s.ActiveBranches(snapshot)
	if err != nil {
		return EffectiveSet{}, err
	}
	branches := make([]Branch, 0, len(active))
	var lists []ListSpec
	for _, entry := range active {
		branches = append(branches, entry.Branch)
		if entry.Branch.List != nil {
			lists = append(lists, *entry.Branch.List)
		}
	}
	return EffectiveSet{
		Fields:   s.RequiredFieldsFor(branches),
		Lists:    lists,
		Branches: active,
	}, nil
}
