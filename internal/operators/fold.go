// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operators

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips combining marks, so "São José" and
// "sao jose" compare equal. SQLite's LIKE only folds ASCII case.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// likePattern builds a substring LIKE pattern with '\' as the escape
// character, so '%' and '_' in the query match literally.
func likePattern(query string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range fold(query) {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
