package search

import (
	"fmt"
	"regexp"
	"strings"
)

// MissingKeyPolicy decides what expandTemplate does with a placeholder that
// has no value.
type MissingKeyPolicy int

const (
	// PassThrough keeps the literal placeholder fragment in the output.
	// The dispatcher uses this so a missing optional credential degrades
	// the one provider instead of aborting the request.
	PassThrough MissingKeyPolicy = iota
	// Strict fails the expansion with a TemplateError.
	Strict
)

// TemplateError reports the first placeholder that could not be resolved
// under the Strict policy.
type TemplateError struct {
	Placeholder string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("unresolved template placeholder {%s}", e.Placeholder)
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// expandTemplate substitutes every {name} placeholder in tmpl with
// vars[name]. Values in vars must already be query-encoded where needed.
func expandTemplate(tmpl string, vars map[string]string, policy MissingKeyPolicy) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})
	if missing != "" && policy == Strict {
		return "", &TemplateError{Placeholder: missing}
	}
	return out, nil
}

// containsPlaceholder reports whether tmpl references the named placeholder.
func containsPlaceholder(tmpl, name string) bool {
	return strings.Contains(tmpl, "{"+name+"}")
}
