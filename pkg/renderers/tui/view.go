package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/validation"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)
)

// View draws the visible rows of the form with their current values and
// errors, followed by a one-line status.
func View(f *form.Form) string {
	schema := f.Schema()
	title := schema.Title
	if title == "" {
		title = schema.Name
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for _, row := range f.Visible() {
		b.WriteString(viewRow(schema, row))
		b.WriteString("\n")
	}

	result := f.Result()
	switch n := len(result.Errors); {
	case n == 0:
		b.WriteString(successStyle.Render("ready to submit"))
	case n == 1:
		b.WriteString(errorStyle.Render("1 field needs attention"))
	default:
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d fields need attention", n)))
	}
	return b.String()
}

func viewRow(schema model.Schema, row form.FieldState) string {
	prefix := ""
	if row.Kind == form.FieldKindEntry {
		prefix = "  - "
	}

	line := prefix + labelStyle.Render(row.Label+":") + " " + formatValue(schema, row)
	if row.Error != "" {
		line += " " + errorStyle.Render("! "+row.Error)
	}
	return line
}

func formatValue(schema model.Schema, row form.FieldState) string {
	switch row.Kind {
	case form.FieldKindList:
		n, _ := row.Value.(int)
		return countEntries(n)
	case form.FieldKindDriver:
		if row.Type != model.FieldTypeBoolean {
			if group, ok := schema.GroupForDriver(row.Path); ok {
				if branch, err := model.ActiveBranch(group, row.Value); err == nil && branch.Label != "" {
					return branch.Label
				}
			}
		}
	}

	switch v := row.Value.(type) {
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case nil:
		return emptyStyle.Render("(empty)")
	case string:
		if v == "" {
			return emptyStyle.Render("(empty)")
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// NewViewRenderer returns a static renderer that prints View without
// prompting.
func NewViewRenderer() render.Renderer {
	return render.Func{
		ID:   "view",
		Type: "text/plain",
		Handle: func(_ context.Context, f *form.Form) ([]byte, error) {
			return []byte(View(f) + "\n"), nil
		},
	}
}

// Report is the machine readable state of a form.
type Report struct {
	Valid  bool               `json:"valid"`
	Errors []validation.Issue `json:"errors,omitempty"`
	Values map[string]any     `json:"values"`
}

// NewReportRenderer returns a static renderer that emits the validation
// result and current values as JSON.
func NewReportRenderer() render.Renderer {
	return render.Func{
		ID:   "report",
		Type: "application/json",
		Handle: func(_ context.Context, f *form.Form) ([]byte, error) {
			result := f.Result()
			return json.MarshalIndent(Report{
				Valid:  result.Valid,
				Errors: result.Issues(),
				Values: f.Snapshot(),
			}, "", "  ")
		},
	}
}
