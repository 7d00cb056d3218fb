package vdf

import "strings"

// Steam writes app properties at six tabs of indentation with two tabs
// between key and value. Inserted fields use these constants rather than
// inferring indentation per record.
const (
	fieldIndent    = "\t\t\t\t\t\t"
	fieldSeparator = "\t\t"
)

// insertAnchors are keys commonly present near the top of an app record.
// A new field is inserted after the line of the last anchor, in this
// order, that is present and line-terminated.
var insertAnchors = []string{"name", "LastUpdated", "SizeOnDisk", "tool"}

// PatchField sets field to rawValue within a record interior and reports
// whether the field was inserted (true) or an existing value replaced
// (false). On replace only the value bytes change; the key token and the
// whitespace separating it from the value keep their original bytes. Only
// the first occurrence is touched: records are assumed to carry at most
// one instance of a field, and a duplicated field keeps its extra copies.
//
// Applying the same field/value twice converges: the second call finds
// the value already in place and rewrites it identically.
func PatchField(record, field, rawValue string) (string, bool) {
	escaped := Escape(rawValue)

	if loc := fieldRe(field).FindStringSubmatchIndex(record); loc != nil {
		return record[:loc[2]] + escaped + record[loc[3]:], false
	}

	entry := `"` + field + `"` + fieldSeparator + `"` + escaped + `"`
	insertAt := -1
	for _, anchor := range insertAnchors {
		idx := strings.Index(record, `"`+anchor+`"`)
		if idx < 0 {
			continue
		}
		if nl := strings.IndexByte(record[idx:], '\n'); nl >= 0 {
			insertAt = idx + nl + 1
		}
	}
	if insertAt >= 0 {
		return record[:insertAt] + fieldIndent + entry + "\n" + record[insertAt:], true
	}
	// No usable anchor line: append just before the record's closing
	// boundary.
	return record + "\n" + fieldIndent + entry, true
}
