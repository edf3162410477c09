package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Transformer mutates a Schema before the form is built. Implementations
// can relabel fields, tighten rules or perform arbitrary rewrites; the
// result is checked again when the form is constructed.
type Transformer interface {
	Transform(ctx context.Context, schema *model.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, schema *model.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, schema *model.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, schema)
}

// PresetTransformer applies declarative overrides loaded from a YAML or
// JSON document. Field patches are keyed by field name; list item fields use
// `list.field`. Branch labels are keyed by group, then branch value:
//
//	title: Candidate Profile
//	fields:
//	  fullName: {label: Name, description: As printed on your passport}
//	  languages.name: {label: Language}
//	lists:
//	  languages: {label: Spoken Languages, minEntries: 2}
//	branches:
//	  educationKnowledge: {bachelorsDegree: University Degree}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title    string                 `yaml:"title"`
	Fields   map[string]fieldPatch  `yaml:"fields"`
	Lists    map[string]listPatch   `yaml:"lists"`
	Branches map[string]branchPatch `yaml:"branches"`
}

type fieldPatch struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Message     string `yaml:"message"`
}

type listPatch struct {
	Label      string `yaml:"label"`
	MinEntries int    `yaml:"minEntries"`
}

type branchPatch map[string]string

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied schema. A
// patch naming an undeclared field, list or group is an error.
func (t *PresetTransformer) Transform(ctx context.Context, schema *model.Schema) error {
	if schema == nil {
		return errors.New("preset transformer: schema is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		schema.Title = t.document.Title
	}

	for path, patch := range t.document.Fields {
		field := findField(schema, path)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", path)
		}
		applyFieldPatch(field, patch)
	}

	for name, patch := range t.document.Lists {
		list := findList(schema, name)
		if list == nil {
			return fmt.Errorf("preset transformer: list %q not found", name)
		}
		if patch.Label != "" {
			list.Label = patch.Label
		}
		if patch.MinEntries > 0 {
			list.MinEntries = patch.MinEntries
		}
	}

	for name, labels := range t.document.Branches {
		group := findGroup(schema, name)
		if group == nil {
			return fmt.Errorf("preset transformer: group %q not found", name)
		}
		for idx := range group.Branches {
			branch := &group.Branches[idx]
			if label, ok := labels[model.BranchKey(branch.Value)]; ok {
				branch.Label = label
			}
		}
	}
	return nil
}

func applyFieldPatch(field *model.FieldSpec, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Message != "" {
		for idx := range field.Rules {
			field.Rules[idx].Message = patch.Message
		}
	}
}

// findField resolves base fields, drivers, branch fields and `list.field`
// item paths.
func findField(schema *model.Schema, path string) *model.FieldSpec {
	if listName, item, ok := strings.Cut(path, "."); ok {
		list := findList(schema, listName)
		if list == nil {
			return nil
		}
		return fieldIn(list.Item, item)
	}

	if field := fieldIn(schema.Fields, path); field != nil {
		return field
	}
	for gi := range schema.Groups {
		group := &schema.Groups[gi]
		if group.Driver.Name == path {
			return &group.Driver
		}
		for bi := range group.Branches {
			if field := fieldIn(group.Branches[bi].Fields, path); field != nil {
				return field
			}
		}
	}
	return nil
}

func findList(schema *model.Schema, name string) *model.ListSpec {
	for gi := range schema.Groups {
		for _, branch := range schema.Groups[gi].Branches {
			if branch.List != nil && branch.List.Name == name {
				return branch.List
			}
		}
	}
	return nil
}

func findGroup(schema *model.Schema, name string) *model.ConditionalGroup {
	for gi := range schema.Groups {
		if schema.Groups[gi].Name == name {
			return &schema.Groups[gi]
		}
	}
	return nil
}

func fieldIn(fields []model.FieldSpec, name string) *model.FieldSpec {
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}
