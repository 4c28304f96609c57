package domain

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainText undoes the escaping bluemonday applies to characters that are
// harmless outside a tag. &lt; and &gt; stay escaped.
var plainText = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

// Sanitizer strips markup from free-text fields before they reach a client.
// Title and Description are cleaned; ID, URL and Rating pass through as stored.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer uses a strict policy: every tag is removed and script and style
// bodies are dropped. Text without markup comes back unchanged.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text sanitizes a single string.
func (s *Sanitizer) Text(in string) string {
	return plainText.Replace(s.policy.Sanitize(in))
}

// Bookmark returns a sanitized copy of b.
func (s *Sanitizer) Bookmark(b Bookmark) Bookmark {
	out := b
	out.Title = s.Text(b.Title)
	if b.Description != nil {
		d := s.Text(*b.Description)
		out.Description = &d
	}
	return out
}

// Bookmarks sanitizes every record. The result is never nil.
func (s *Sanitizer) Bookmarks(in []Bookmark) []Bookmark {
	out := make([]Bookmark, 0, len(in))
	for _, b := range in {
		out = append(out, s.Bookmark(b))
	}
	return out
}
