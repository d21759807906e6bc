package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every tag and attribute.
var strictPolicy = bluemonday.StrictPolicy()

// Text strips HTML from a free-text field and trims surrounding space.
// Entities the policy escapes are decoded again so "&" is stored as typed.
// Use for resource names (events, venues, vendors, items, teams, tasks).
func Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(input)))
}

// Fields applies Text to each field in place.
func Fields(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = Text(*f)
		}
	}
}
