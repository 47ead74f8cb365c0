// Package sanitize strips markup from free text before it is sent to the API.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Text removes every HTML element from user-entered free text.
// bluemonday escapes what it keeps, so entities are decoded again to leave plain text.
type Text struct {
	policy *bluemonday.Policy
}

// NewText returns a Text sanitizer. It is safe for concurrent use.
func NewText() *Text {
	return &Text{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns s without markup and surrounding whitespace.
func (t *Text) Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(t.policy.Sanitize(s)))
}
