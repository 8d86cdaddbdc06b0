package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")
)

// StripMarkup removes every HTML tag from user-supplied text, keeping the
// readable content as plain text. Escaped markup such as &lt;script&gt;
// stays escaped rather than decoding into a tag.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	out := plainText(s)
	if plainText(out) != out {
		out = angleEscaper.Replace(out)
	}
	return strings.TrimSpace(out)
}

func plainText(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// StripMarkupPtr applies StripMarkup to an optional field.
func StripMarkupPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := StripMarkup(*s)
	return &v
}
