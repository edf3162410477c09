package model

// DefaultValues builds a fresh value map for a new form: base fields at
// their declared defaults and every driver at its group default. Branch
// fields and lists start absent. Each call returns an independent map.
func DefaultValues(s Schema) map[string]any {
	out := make(map[string]any, len(s.Fields)+len(s.Groups))
	for _, field := range s.Fields {
		out[field.Name] = zeroValue(field)
	}
	for _, group := range s.Groups {
		out[group.Driver.Name] = group.Default
	}
	return out
}

func zeroValue(field FieldSpec) any {
	if field.Default != nil {
		return field.Default
	}
	switch field.Type {
	case FieldTypeBoolean:
		return false
	default:
		return ""
	}
}
