package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a field path. Index is -1 for named segments.
type Segment struct {
	Name  string
	Index int
}

// IsIndex reports whether the segment addresses a list position.
func (s Segment) IsIndex() bool {
	return s.Index >= 0
}

// Path is a parsed field path.
type Path []Segment

// ParsePath converts `languages[2].name` or `languages.2.name` into segments.
// Leading `$.`/`#/` prefixes and JSON pointer separators are tolerated so
// paths copied from error payloads resolve to the same field.
func ParsePath(raw string) (Path, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil, fmt.Errorf("values: empty path")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "/", ".")
	clean = replacer.Replace(clean)

	parts := strings.Split(clean, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			return nil, fmt.Errorf("values: malformed path %q", raw)
		}
		if idx, err := strconv.Atoi(segment); err == nil {
			if idx < 0 {
				return nil, fmt.Errorf("values: negative index in path %q", raw)
			}
			if len(out) == 0 {
				return nil, fmt.Errorf("values: path %q starts with an index", raw)
			}
			out = append(out, Segment{Index: idx})
			continue
		}
		out = append(out, Segment{Name: segment, Index: -1})
	}
	return out, nil
}

// String formats the path back into `list[2].field` notation.
func (p Path) String() string {
	var b strings.Builder
	for i, segment := range p {
		if segment.IsIndex() {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(segment.Index))
			b.WriteString("]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(segment.Name)
	}
	return b.String()
}

// Root returns the first named segment of the path.
func (p Path) Root() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].Name
}

// ItemPath formats the path of a sub-field inside a list entry.
func ItemPath(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}

// NormalizePath parses and re-formats raw. Unparseable input is returned
// trimmed so callers can still surface it in messages.
func NormalizePath(raw string) string {
	path, err := ParsePath(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return path.String()
}
