package model

import (
	"regexp"
	"strings"
)

// Check validates the declaration itself. It runs once when a form is
// constructed; a schema that passes is safe to share read-only.
func (s Schema) Check() error {
	seen := make(map[string]string)
	claim := func(name, owner string) error {
		if strings.TrimSpace(name) == "" {
			return invalidf("%s declares a field without a name", owner)
		}
		if prev, ok := seen[name]; ok {
			return invalidf("field %q declared by %s and %s", name, prev, owner)
		}
		seen[name] = owner
		return nil
	}

	for _, field := range s.Fields {
		if err := claim(field.Name, "base fields"); err != nil {
			return err
		}
		if err := checkField(field); err != nil {
			return err
		}
	}

	groups := make(map[string]struct{}, len(s.Groups))
	for _, group := range s.Groups {
		if strings.TrimSpace(group.Name) == "" {
			return invalidf("group without a name")
		}
		if _, ok := groups[group.Name]; ok {
			return invalidf("duplicate group %q", group.Name)
		}
		groups[group.Name] = struct{}{}

		owner := "group " + group.Name
		if err := claim(group.Driver.Name, owner); err != nil {
			return err
		}
		if err := checkGroup(group); err != nil {
			return err
		}
		for _, branch := range group.Branches {
			branchOwner := owner + " branch " + BranchKey(branch.Value)
			for _, field := range branch.Fields {
				if err := claim(field.Name, branchOwner); err != nil {
					return err
				}
				if err := checkField(field); err != nil {
					return err
				}
			}
			if branch.List == nil {
				continue
			}
			if err := claim(branch.List.Name, branchOwner); err != nil {
				return err
			}
			if err := checkList(*branch.List); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkGroup(group ConditionalGroup) error {
	if len(group.Branches) == 0 {
		return invalidf("group %q declares no branches", group.Name)
	}

	keys := make(map[string]struct{}, len(group.Branches))
	for _, branch := range group.Branches {
		key := BranchKey(branch.Value)
		if key == "" {
			return invalidf("group %q declares a branch without a value", group.Name)
		}
		if _, ok := keys[key]; ok {
			return invalidf("group %q declares branch %q twice", group.Name, key)
		}
		keys[key] = struct{}{}
	}

	switch group.Driver.Type {
	case FieldTypeBoolean:
		_, hasTrue := keys["true"]
		_, hasFalse := keys["false"]
		if len(keys) != 2 || !hasTrue || !hasFalse {
			return invalidf("boolean group %q must declare exactly the branches true and false", group.Name)
		}
	case FieldTypeEnum, FieldTypeString:
		if err := checkDriverEnum(group, keys); err != nil {
			return err
		}
	default:
		return invalidf("group %q driver %q has unsupported type %q", group.Name, group.Driver.Name, group.Driver.Type)
	}

	if _, err := ActiveBranch(group, group.Default); err != nil {
		return invalidf("group %q default %v selects no branch", group.Name, group.Default)
	}
	return nil
}

// checkDriverEnum requires a declared option list to name exactly the
// branches, so every offered option selects one.
func checkDriverEnum(group ConditionalGroup, keys map[string]struct{}) error {
	if len(group.Driver.Enum) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(group.Driver.Enum))
	for _, option := range group.Driver.Enum {
		if _, ok := keys[option]; !ok {
			return invalidf("group %q driver option %q selects no branch", group.Name, option)
		}
		seen[option] = struct{}{}
	}
	for _, branch := range group.Branches {
		key := BranchKey(branch.Value)
		if _, ok := seen[key]; !ok {
			return invalidf("group %q branch %q is missing from the driver options", group.Name, key)
		}
	}
	return nil
}

func checkList(list ListSpec) error {
	if list.MinEntries < 0 {
		return invalidf("list %q has negative minEntries", list.Name)
	}
	if len(list.Item) == 0 {
		return invalidf("list %q declares no item fields", list.Name)
	}
	names := make(map[string]struct{}, len(list.Item))
	for _, field := range list.Item {
		if strings.TrimSpace(field.Name) == "" {
			return invalidf("list %q declares an item field without a name", list.Name)
		}
		if _, ok := names[field.Name]; ok {
			return invalidf("list %q declares item field %q twice", list.Name, field.Name)
		}
		names[field.Name] = struct{}{}
		if err := checkField(field); err != nil {
			return err
		}
	}
	return nil
}

func checkField(field FieldSpec) error {
	switch field.Type {
	case FieldTypeString, FieldTypeBoolean:
	case FieldTypeEnum:
		if len(field.Enum) == 0 {
			return invalidf("enum field %q declares no options", field.Name)
		}
	default:
		return invalidf("field %q has unsupported type %q", field.Name, field.Type)
	}

	for _, rule := range field.Rules {
		switch rule.Kind {
		case ValidationRuleRequired:
		case ValidationRuleMinLength, ValidationRuleMaxLength:
			if rule.Value == nil || *rule.Value < 0 {
				return invalidf("field %q rule %s needs a non-negative value", field.Name, rule.Kind)
			}
		case ValidationRulePattern:
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				return invalidf("field %q pattern %q: %v", field.Name, rule.Pattern, err)
			}
		default:
			return invalidf("field %q has unknown rule %q", field.Name, rule.Kind)
		}
	}
	return nil
}
