package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is a cached bluemonday policy that removes all HTML tags and
// attributes. Safe for concurrent use as the policy is read-only after
// build; never call mutating helpers on it after initialization.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // prevents word concatenation
	return p
}()

// Sanitize strips all HTML from arbitrary user input while preserving
// readability. Guest descriptions must pass through here (or Clean) before
// hitting the store; repositories assume already-sanitized input.
func Sanitize(s string) string {
	return strict.Sanitize(s)
}

// Clean sanitizes HTML and normalizes whitespace for storage: strips tags,
// trims, unescapes entities, collapses runs of spaces, and turns
// non-breaking spaces into regular ones.
func Clean(s string) string {
	cleaned := strict.Sanitize(s)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = html.UnescapeString(cleaned)
	cleaned = strings.ReplaceAll(cleaned, " ", " ")

	// Collapse multiple spaces while preserving newlines
	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
