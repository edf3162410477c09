package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
)

func TestActiveBranch_TotalAndUnique(t *testing.T) {
	t.Parallel()

	schema := model.ProfileSchema()
	for _, group := range schema.Groups {
		for _, branch := range group.Branches {
			got, err := model.ActiveBranch(group, branch.Value)
			if err != nil {
				t.Fatalf("group %s value %v: unexpected error %v", group.Name, branch.Value, err)
			}
			if model.BranchKey(got.Value) != model.BranchKey(branch.Value) {
				t.Fatalf("group %s: value %v selected branch %v", group.Name, branch.Value, got.Value)
			}

			matches := 0
			for _, candidate := range group.Branches {
				if model.BranchKey(candidate.Value) == model.BranchKey(branch.Value) {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("group %s: value %v matched %d branches", group.Name, branch.Value, matches)
			}
		}
	}
}

func TestActiveBranch_BooleanDriverAcceptsStrings(t *testing.T) {
	t.Parallel()

	group, ok := model.ProfileSchema().GroupForDriver("hasWorkExperience")
	if !ok {
		t.Fatalf("hasWorkExperience group missing")
	}
	branch, err := model.ActiveBranch(group, "true")
	if err != nil {
		t.Fatalf("ActiveBranch returned error: %v", err)
	}
	if len(branch.Fields) != 1 || branch.Fields[0].Name != "companyName" {
		t.Fatalf("expected companyName branch, got %#v", branch.Fields)
	}
}

func TestActiveBranch_UnknownValueIsSchemaError(t *testing.T) {
	t.Parallel()

	group, _ := model.ProfileSchema().GroupForDriver("educationLevel")
	_, err := model.ActiveBranch(group, "doctorate")
	if err == nil {
		t.Fatalf("expected error for undeclared branch")
	}
	if !errors.Is(err, model.ErrNoBranch) {
		t.Fatalf("expected ErrNoBranch, got %v", err)
	}
	var schemaErr *model.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if schemaErr.Driver != "educationLevel" || schemaErr.Value != "doctorate" {
		t.Fatalf("unexpected schema error payload: %#v", schemaErr)
	}

	if _, err := model.ActiveBranch(group, nil); !errors.Is(err, model.ErrNoBranch) {
		t.Fatalf("expected nil driver value to fail, got %v", err)
	}
}

func TestEffective_UnionsActiveBranches(t *testing.T) {
	t.Parallel()

	schema := model.ProfileSchema()
	set, err := schema.Effective(map[string]any{
		"hasWorkExperience":   true,
		"knowsOtherLanguages": true,
		"educationLevel":      "bachelorsDegree",
	})
	if err != nil {
		t.Fatalf("Effective returned error: %v", err)
	}

	var names []string
	for _, field := range set.Fields {
		names = append(names, field.Name)
	}
	want := []string{"fullName", "companyName", "universityName"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("effective fields mismatch (-want +got):\n%s", diff)
	}
	if len(set.Lists) != 1 || set.Lists[0].Name != "languages" {
		t.Fatalf("expected languages list to be active, got %#v", set.Lists)
	}
	if set.Has("schoolName") {
		t.Fatalf("schoolName must not be part of the effective set")
	}
	if !set.Has("educationLevel") {
		t.Fatalf("drivers belong to the effective set")
	}
}

func TestEffective_MissingDriverUsesDefault(t *testing.T) {
	t.Parallel()

	set, err := model.ProfileSchema().Effective(map[string]any{})
	if err != nil {
		t.Fatalf("Effective returned error: %v", err)
	}
	if len(set.Fields) != 1 || set.Fields[0].Name != "fullName" {
		t.Fatalf("expected only fullName, got %#v", set.Fields)
	}
}

func TestDefaultValues_FreshPerCall(t *testing.T) {
	t.Parallel()

	schema := model.ProfileSchema()
	first := model.DefaultValues(schema)
	want := map[string]any{
		"fullName":            "",
		"hasWorkExperience":   false,
		"knowsOtherLanguages": false,
		"educationLevel":      "noFormalEducation",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	first["fullName"] = "mutated"
	if second := model.DefaultValues(schema); second["fullName"] != "" {
		t.Fatalf("defaults alias across calls: %v", second["fullName"])
	}
}

func TestSchemaFieldAt(t *testing.T) {
	t.Parallel()

	schema := model.ProfileSchema()
	tests := map[string]string{
		"fullName":          "fullName",
		"hasWorkExperience": "hasWorkExperience",
		"universityName":    "universityName",
		"languages[3].name": "name",
	}
	for path, want := range tests {
		field, ok := schema.FieldAt(path)
		if !ok {
			t.Fatalf("%s: expected a declaration", path)
		}
		if field.Name != want {
			t.Fatalf("%s: expected %q, got %q", path, want, field.Name)
		}
	}

	for _, path := range []string{"languages", "languages[0].code", "unknown", "fullName[0]"} {
		if _, ok := schema.FieldAt(path); ok {
			t.Fatalf("%s: expected no declaration", path)
		}
	}
}
