package model

// Clone returns a deep copy of the schema so callers can patch labels or
// rules without touching the original declaration.
func (s Schema) Clone() Schema {
	out := s
	out.Fields = cloneFields(s.Fields)
	if s.Groups != nil {
		out.Groups = make([]ConditionalGroup, len(s.Groups))
		for i, group := range s.Groups {
			out.Groups[i] = group.clone()
		}
	}
	return out
}

func (g ConditionalGroup) clone() ConditionalGroup {
	out := g
	out.Driver = g.Driver.clone()
	if g.Branches != nil {
		out.Branches = make([]Branch, len(g.Branches))
		for i, branch := range g.Branches {
			copied := branch
			copied.Fields = cloneFields(branch.Fields)
			if branch.List != nil {
				list := *branch.List
				list.Item = cloneFields(branch.List.Item)
				copied.List = &list
			}
			out.Branches[i] = copied
		}
	}
	return out
}

func (f FieldSpec) clone() FieldSpec {
	out := f
	if f.Enum != nil {
		out.Enum = append([]string(nil), f.Enum...)
	}
	if f.Rules != nil {
		out.Rules = make([]ValidationRule, len(f.Rules))
		for i, rule := range f.Rules {
			if rule.Value != nil {
				value := *rule.Value
				rule.Value = &value
			}
			out.Rules[i] = rule
		}
	}
	return out
}

func cloneFields(fields []FieldSpec) []FieldSpec {
	if fields == nil {
		return nil
	}
	out := make([]FieldSpec, len(fields))
	for i, field := range fields {
		out[i] = field.clone()
	}
	return out
}
