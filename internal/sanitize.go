package internal

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Names arrive from the server unfiltered and may have been typed into a web
// form, so they get the strict treatment: no markup at all.
var namePolicy = bluemonday.StrictPolicy()

const maxNameLength = 24

// SanitizeName strips markup, entities and control characters from a
// server-provided username or room name before it reaches the screen.
func SanitizeName(name string) string {
	cleaned := html.UnescapeString(namePolicy.Sanitize(name))
	cleaned = strings.TrimSpace(SanitizeText(cleaned))
	if len(cleaned) > maxNameLength {
		cleaned = cleaned[:maxNameLength]
	}
	if cleaned == "" {
		return "anon"
	}
	return cleaned
}

// SanitizeText removes terminal control characters so untrusted text can
// never smuggle escape sequences into the transcript. Printable runes pass
// through verbatim; markup like <b> is displayed literally, never
// interpreted.
func SanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\t':
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
