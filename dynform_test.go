package dynform_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/pkg/form"
)

func TestNewProfile_SubmitsScenario(t *testing.T) {
	t.Parallel()

	var got dynform.Record
	f, err := dynform.NewProfile(form.WithSubmitHandler(func(_ context.Context, record form.Record) error {
		got = record
		return nil
	}))
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if err := f.SetField("fullName", "Ada"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if _, result, err := f.Submit(context.Background()); err != nil || !result.Valid {
		t.Fatalf("Submit: %v %v", err, result.Errors)
	}
	if got["fullName"] != "Ada" {
		t.Fatalf("handler not called with record: %v", got)
	}
}

func TestParseSchema_AndGenerate(t *testing.T) {
	t.Parallel()

	schema, err := dynform.ParseSchema([]byte(`{
  "name": "consent",
  "title": "Consent",
  "fields": [{"name": "accepted", "type": "boolean"}],
  "groups": [{
    "name": "contact",
    "driver": {"name": "mayContact", "type": "boolean", "label": "May we contact you?"},
    "default": false,
    "branches": [
      {"value": true, "fields": [{"name": "email", "type": "string", "label": "Email", "rules": [{"kind": "required"}]}]},
      {"value": false}
    ]
  }]
}`))
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}

	out, err := dynform.Generate(context.Background(), dynform.Request{
		Schema: &schema,
		Values: map[string]any{"mayContact": true},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(out), "Email:") || !strings.Contains(string(out), "! is required") {
		t.Fatalf("unexpected view:\n%s", out)
	}
}

func TestParseSchema_RejectsInvalid(t *testing.T) {
	t.Parallel()

	if _, err := dynform.ParseSchema([]byte(`name: broken
fields:
  - {name: a, type: number}
`)); err == nil {
		t.Fatalf("expected invalid schema error")
	}
}
