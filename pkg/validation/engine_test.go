package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

func profileSnapshot(overrides map[string]any) map[string]any {
	snapshot := model.DefaultValues(model.ProfileSchema())
	for k, v := range overrides {
		snapshot[k] = v
	}
	return snapshot
}

func TestValidate_EmptyFullNameOnly(t *testing.T) {
	t.Parallel()

	result, err := validation.Validate(model.ProfileSchema(), profileSnapshot(nil))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	want := map[string]string{"fullName": "is required"}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_WorkExperienceRequiresCompany(t *testing.T) {
	t.Parallel()

	result, err := validation.Validate(model.ProfileSchema(), profileSnapshot(map[string]any{
		"fullName":          "Ada",
		"hasWorkExperience": true,
		"companyName":       "",
	}))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	want := map[string]string{"companyName": "is required"}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InactiveBranchesNeverLeak(t *testing.T) {
	t.Parallel()

	result, err := validation.Validate(model.ProfileSchema(), profileSnapshot(map[string]any{
		"fullName":       "Ada",
		"companyName":    "",
		"schoolName":     strings.Repeat("x", 500),
		"universityName": 42,
		"languages":      []any{map[string]any{"name": ""}},
	}))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected stale inactive values to be ignored, got %v", result.Errors)
	}
}

func TestValidate_BachelorsDegreeValid(t *testing.T) {
	t.Parallel()

	result, err := validation.Validate(model.ProfileSchema(), profileSnapshot(map[string]any{
		"fullName":       "Ada",
		"educationLevel": "bachelorsDegree",
		"universityName": "MIT",
	}))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Valid || len(result.Errors) != 0 {
		t.Fatalf("expected valid result, got %#v", result)
	}
}

func TestValidate_ListEntriesKeyedByIndex(t *testing.T) {
	t.Parallel()

	result, err := validation.Validate(model.ProfileSchema(), profileSnapshot(map[string]any{
		"fullName":            "Ada",
		"knowsOtherLanguages": true,
		"languages": []map[string]any{
			{"name": "English"},
			{"name": ""},
			{"name": strings.Repeat("a", 256)},
		},
	}))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	want := map[string]string{
		"languages[1].name": "is required",
		"languages[2].name": "must be at most 255 characters",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"languages[1].name", "languages[2].name"}, result.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EmptyActiveListReportsMinimum(t *testing.T) {
	t.Parallel()

	result, err := validation.Validate(model.ProfileSchema(), profileSnapshot(map[string]any{
		"fullName":            "Ada",
		"knowsOtherLanguages": true,
	}))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if msg, _ := result.FieldError("languages"); msg != "must have at least 1 entries" {
		t.Fatalf("unexpected list message %q", msg)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	snapshot := profileSnapshot(map[string]any{
		"hasWorkExperience": true,
		"educationLevel":    "highSchoolDiploma",
	})
	first, err := validation.Validate(model.ProfileSchema(), snapshot)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	second, err := validation.Validate(model.ProfileSchema(), snapshot)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation is not idempotent (-first +second):\n%s", diff)
	}
	if len(first.Errors) != 3 {
		t.Fatalf("expected fullName, companyName and schoolName errors, got %v", first.Errors)
	}
}

func TestValidate_UnknownDriverValueIsProgrammerError(t *testing.T) {
	t.Parallel()

	_, err := validation.Validate(model.ProfileSchema(), profileSnapshot(map[string]any{
		"educationLevel": "phd",
	}))
	if !errors.Is(err, model.ErrNoBranch) {
		t.Fatalf("expected ErrNoBranch, got %v", err)
	}
}

func TestCheckField_FirstRuleWins(t *testing.T) {
	t.Parallel()

	lo, hi := 3, 5
	field := model.FieldSpec{
		Name: "code",
		Type: model.FieldTypeString,
		Rules: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Value: &lo},
			{Kind: model.ValidationRulePattern, Pattern: `^[A-Z]+$`, Message: "use capitals"},
			{Kind: model.ValidationRuleMaxLength, Value: &hi},
		},
	}

	cases := map[string]any{
		"":        "is required",
		"ab":      "must be at least 3 characters",
		"abcd":    "use capitals",
		"ABCDEFG": "must be at most 5 characters",
		"ABCD":    "",
	}
	for input, want := range cases {
		if got := validation.CheckField(field, input); got != want {
			t.Fatalf("CheckField(%q) = %q, want %q", input, got, want)
		}
	}
	if got := validation.CheckField(field, true); got != "must be a string" {
		t.Fatalf("expected type error, got %q", got)
	}
}

func TestCheckField_Enum(t *testing.T) {
	t.Parallel()

	field := model.FieldSpec{Name: "size", Type: model.FieldTypeEnum, Enum: []string{"s", "m"}}
	if got := validation.CheckField(field, "xl"); got != "must be one of: s, m" {
		t.Fatalf("unexpected enum message %q", got)
	}
	if got := validation.CheckField(field, "m"); got != "" {
		t.Fatalf("expected enum value to pass, got %q", got)
	}
	if got := validation.CheckField(field, ""); got != "" {
		t.Fatalf("expected optional enum to accept a blank value, got %q", got)
	}

	field.Rules = []model.ValidationRule{{Kind: model.ValidationRuleRequired, Message: "pick a size"}}
	if got := validation.CheckField(field, nil); got != "pick a size" {
		t.Fatalf("expected required enum message, got %q", got)
	}
}
