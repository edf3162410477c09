package form

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizeText strips markup and returns plain text. bluemonday escapes the
// text it keeps, so entities are decoded back.
func sanitizeText(policy *bluemonday.Policy, text string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(text)))
}

// clean applies the input sanitizer to string values before they are stored,
// so validation always sees what will be submitted.
func (f *Form) clean(value any) any {
	if f.sanitizer == nil {
		return value
	}
	if text, ok := value.(string); ok {
		return sanitizeText(f.sanitizer, text)
	}
	return value
}
