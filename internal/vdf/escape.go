package vdf

import "strings"

// Escape converts a raw string into the document's quoted-string form.
// Backslashes are doubled before quotes are escaped; the reverse order
// would re-escape the backslash a quote just gained.
func Escape(raw string) string {
	s := strings.ReplaceAll(raw, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Unescape reverses Escape: a backslash makes the following byte literal.
// A trailing lone backslash is kept as-is. Unescape(Escape(x)) == x for
// any x.
func Unescape(escaped string) string {
	if !strings.ContainsRune(escaped, '\\') {
		return escaped
	}
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c == '\\' && i+1 < len(escaped) {
			i++
			c = escaped[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}
