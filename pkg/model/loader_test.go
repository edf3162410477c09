package model_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
)

func TestProfileSchema_Shape(t *testing.T) {
	t.Parallel()

	schema := model.ProfileSchema()
	if schema.Name != "profile" {
		t.Fatalf("unexpected schema name %q", schema.Name)
	}
	if got := len(schema.Groups); got != 3 {
		t.Fatalf("expected 3 groups, got %d", got)
	}

	owner, ok := schema.List("languages")
	if !ok {
		t.Fatalf("languages list missing")
	}
	if owner.Group.Driver.Name != "knowsOtherLanguages" || owner.Branch.Value != true {
		t.Fatalf("languages list has unexpected owner: %#v", owner.Group.Driver)
	}
	if owner.List.Min() != 1 {
		t.Fatalf("expected minEntries 1, got %d", owner.List.Min())
	}

	field, ok := schema.Field("universityName")
	if !ok {
		t.Fatalf("universityName missing")
	}
	if len(field.Rules) != 2 || *field.Rules[1].Value != 255 {
		t.Fatalf("unexpected universityName rules: %#v", field.Rules)
	}
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
  "name": "contact",
  "fields": [{"name": "email", "type": "string", "rules": [{"kind": "required"}]}],
  "groups": [{
    "name": "phone",
    "driver": {"name": "hasPhone", "type": "boolean"},
    "default": false,
    "branches": [
      {"value": true, "fields": [{"name": "phone", "type": "string", "rules": [{"kind": "pattern", "pattern": "^[0-9+ ]+$"}]}]},
      {"value": false}
    ]
  }]
}`)
	schema, err := model.Parse(raw, "contact.json")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := schema.GroupForDriver("hasPhone"); !ok {
		t.Fatalf("hasPhone group missing")
	}
}

func TestLoadFS_InvalidSchema(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"broken.yaml": {Data: []byte("name: broken\nfields:\n  - name: a\n    type: number\n")},
		"empty.yaml":  {Data: []byte("  \n")},
	}

	if _, err := model.LoadFS(fsys, "broken.yaml"); !errors.Is(err, model.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
	if _, err := model.LoadFS(fsys, "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := model.LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestSchemaClone_IsIndependent(t *testing.T) {
	t.Parallel()

	original := model.ProfileSchema()
	copied := original.Clone()
	if diff := cmp.Diff(original, copied); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	copied.Fields[0].Label = "Name"
	*copied.Fields[0].Rules[0].Value = 3
	copied.Groups[1].Branches[0].List.Item[0].Label = "Language"
	copied.Groups[2].Driver.Enum[0] = "none"

	if original.Fields[0].Label != "Full Name" || *original.Fields[0].Rules[0].Value != 1 {
		t.Fatalf("base field aliased: %#v", original.Fields[0])
	}
	if original.Groups[1].Branches[0].List.Item[0].Label != "Language Name" {
		t.Fatalf("list item aliased")
	}
	if original.Groups[2].Driver.Enum[0] != "noFormalEducation" {
		t.Fatalf("driver enum aliased")
	}
}
