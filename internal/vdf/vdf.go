// Package vdf provides tolerant, byte-surgical access to Valve KeyValues
// text documents (localconfig.vdf, libraryfolders.vdf, appmanifest ACF
// files). It deliberately does not parse the full grammar: records are
// located by first textual occurrence of their quoted key followed by a
// brace-counted block, matching the shape of the documents Steam actually
// writes, and edits splice bytes so everything else survives untouched.
package vdf

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound reports that a record key does not resolve to a block.
	ErrNotFound = errors.New("record not found")
	// ErrMalformed reports an unbalanced block discovered while scanning.
	ErrMalformed = errors.New("malformed document")
)

// Span delimits the interior of a brace block within a document,
// exclusive of the enclosing braces. Spans are computed fresh from the
// current document bytes per operation and never cached across writes.
type Span struct {
	Start int
	End   int
}

// FindBlock locates the first '{' at or after the given offset and
// returns the span between it and its matching '}'. Braces inside quoted
// values are counted like structural braces; Steam's writer never emits
// unescaped braces in values and this scanner follows that convention
// instead of tokenizing strings.
func FindBlock(doc []byte, after int) (Span, bool) {
	if after < 0 || after > len(doc) {
		return Span{}, false
	}
	rel := bytes.IndexByte(doc[after:], '{')
	if rel < 0 {
		return Span{}, false
	}
	open := after + rel
	depth := 0
	for i := open; i < len(doc); i++ {
		switch doc[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return Span{Start: open + 1, End: i}, true
			}
		}
	}
	return Span{}, false
}

// LocateRecord resolves a path of quoted keys to the interior span of the
// block following the final key. Every key is matched by first textual
// occurrence after the previous key's position; only the final key's
// block is brace-scanned. First-occurrence matching trades generality for
// the narrow real-world shape of these documents, where the record key is
// effectively unique within its section.
//
// The final key must be followed, modulo whitespace, by '{' or the record
// counts as absent. A '{' that never balances is ErrMalformed.
func LocateRecord(doc []byte, path ...string) (Span, error) {
	if len(path) == 0 {
		return Span{}, fmt.Errorf("%w: empty key path", ErrNotFound)
	}
	pos := 0
	for _, key := range path[:len(path)-1] {
		quoted := []byte(`"` + key + `"`)
		rel := bytes.Index(doc[pos:], quoted)
		if rel < 0 {
			return Span{}, fmt.Errorf("%w: key %q", ErrNotFound, key)
		}
		pos += rel + len(quoted)
	}

	last := path[len(path)-1]
	quoted := []byte(`"` + last + `"`)
	rel := bytes.Index(doc[pos:], quoted)
	if rel < 0 {
		return Span{}, fmt.Errorf("%w: key %q", ErrNotFound, last)
	}
	pos += rel + len(quoted)

	brace := pos
	for brace < len(doc) && isSpace(doc[brace]) {
		brace++
	}
	if brace >= len(doc) || doc[brace] != '{' {
		return Span{}, fmt.Errorf("%w: no block follows key %q", ErrNotFound, last)
	}
	span, ok := FindBlock(doc, brace)
	if !ok {
		return Span{}, fmt.Errorf("%w: block after key %q never closes", ErrMalformed, last)
	}
	return span, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// fieldRe matches a quoted key followed by a quoted value that may
// contain escaped quotes and backslashes. Submatch 1 is the raw value
// interior, still escaped.
func fieldRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s+"((?:[^"\\]|\\.)*)"`)
}

// FieldValue returns the decoded value of the first occurrence of a
// quoted key/value pair in doc.
func FieldValue(doc []byte, key string) (string, bool) {
	m := fieldRe(key).FindSubmatch(doc)
	if m == nil {
		return "", false
	}
	return Unescape(string(m[1])), true
}

// FieldValues returns the decoded values of every occurrence of key, in
// document order. libraryfolders.vdf repeats "path" once per library.
func FieldValues(doc []byte, key string) []string {
	var out []string
	for _, m := range fieldRe(key).FindAllSubmatch(doc, -1) {
		out = append(out, Unescape(string(m[1])))
	}
	return out
}
