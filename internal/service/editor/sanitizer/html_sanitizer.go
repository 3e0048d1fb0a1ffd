package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer removes dangerous HTML elements and attributes before the
// markup reaches the deserializer.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer for the embed dialect.
// Starts from the UGC policy and additionally lets through sections, the
// embed tag and data-* attributes, which carry all embed data.
func NewHTMLSanitizer(embedTag string) *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("section", embedTag)
	policy.AllowDataAttributes()

	return &HTMLSanitizer{policy: policy}
}

// Sanitize removes dangerous HTML while preserving the dialect:
// scripts, event handlers and javascript: URLs are dropped, sections,
// headings, lists, quotes and <ndlaembed data-*> survive.
func (s *HTMLSanitizer) Sanitize(html string) (string, error) {
	return s.policy.Sanitize(html), nil
}
