package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeEnum    FieldType = "enum"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single constraint applied to a field. Length
// bounds carry their threshold in Value while pattern rules keep the original
// expression in Pattern. Message overrides the default text reported when the
// rule fails.
type ValidationRule struct {
	Kind    string `json:"kind" yaml:"kind"`
	Value   *int   `json:"value,omitempty" yaml:"value,omitempty"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// FieldSpec models an individual input. Type drives the implicit type check;
// Rules are evaluated in declaration order.
type FieldSpec struct {
	Name        string           `json:"name" yaml:"name"`
	Type        FieldType        `json:"type" yaml:"type"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any              `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string         `json:"enum,omitempty" yaml:"enum,omitempty"`
	Rules       []ValidationRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f FieldSpec) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// ListSpec declares a repeated group of sub-entries owned by a branch.
// MinEntries is the floor enforced while the owning branch is active; zero
// means one.
type ListSpec struct {
	Name       string      `json:"name" yaml:"name"`
	Label      string      `json:"label,omitempty" yaml:"label,omitempty"`
	MinEntries int         `json:"minEntries,omitempty" yaml:"minEntries,omitempty"`
	Item       []FieldSpec `json:"item" yaml:"item"`
}

// Min returns the effective entry floor.
func (l ListSpec) Min() int {
	if l.MinEntries <= 0 {
		return 1
	}
	return l.MinEntries
}

// BlankEntry builds the default sub-entry installed on activation.
func (l ListSpec) BlankEntry() map[string]any {
	entry := make(map[string]any, len(l.Item))
	for _, field := range l.Item {
		entry[field.Name] = zeroValue(field)
	}
	return entry
}

// Branch is one mutually exclusive alternative of a group, selected when the
// driver holds Value.
type Branch struct {
	Value  any         `json:"value" yaml:"value"`
	Label  string      `json:"label,omitempty" yaml:"label,omitempty"`
	Fields []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	List   *ListSpec   `json:"list,omitempty" yaml:"list,omitempty"`
}

// ConditionalGroup couples a driver field with its branches. Default is the
// driver value a fresh form starts with.
type ConditionalGroup struct {
	Name     string    `json:"name" yaml:"name"`
	Driver   FieldSpec `json:"driver" yaml:"driver"`
	Default  any       `json:"default" yaml:"default"`
	Branches []Branch  `json:"branches" yaml:"branches"`
}

// Schema is the top-level form declaration.
type Schema struct {
	Name   string             `json:"name" yaml:"name"`
	Title  string             `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldSpec        `json:"fields" yaml:"fields"`
	Groups []ConditionalGroup `json:"groups,omitempty" yaml:"groups,omitempty"`
}
