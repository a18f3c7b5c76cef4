// Package sanitize applies the basic HTML escaping used on free-text fields.
package sanitize

import (
	"regexp"
	"strings"
)

var scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)

var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#47;",
)

// String removes script blocks, escapes < > " ' and /, and trims surrounding
// whitespace. Ampersands are left alone so the function is idempotent.
func String(s string) string {
	s = scriptBlock.ReplaceAllString(s, "")
	return strings.TrimSpace(escaper.Replace(s))
}

// Strings sanitizes every element into a new slice. A nil input stays nil.
func Strings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = String(s)
	}
	return out
}
