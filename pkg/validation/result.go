package validation

import "sort"

// Issue is one field-level error with its path.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result captures the outcome of a full validation pass.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// FieldError returns the message recorded for path, if any.
func (r Result) FieldError(path string) (string, bool) {
	if len(r.Errors) == 0 {
		return "", false
	}
	msg, ok := r.Errors[path]
	return msg, ok
}

// Paths returns the failing paths in lexical order.
func (r Result) Paths() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for path := range r.Errors {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Issues flattens the error map into a deterministic slice.
func (r Result) Issues() []Issue {
	paths := r.Paths()
	if len(paths) == 0 {
		return nil
	}
	out := make([]Issue, 0, len(paths))
	for _, path := range paths {
		out = append(out, Issue{Path: path, Message: r.Errors[path]})
	}
	return out
}
