package utils

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML entity-escapes the five characters that can break out of text
// or attribute context. Every user-controlled value goes through it before
// being placed in markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
