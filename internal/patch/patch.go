// Package patch runs the end-to-end field patch pipeline: locate a record
// in a KeyValues document, insert-or-replace one field, and commit the
// result atomically. Every invocation re-reads the target file and
// computes offsets from scratch, which makes repeated calls safe and
// tolerant of external edits made between calls.
package patch

import (
	"fmt"
	"os"

	"optiscalerctl/internal/commit"
	"optiscalerctl/internal/vdf"
)

// Request names one record, one field, and the raw (unescaped) value to
// set. RecordPath is an ordered sequence of quoted keys, e.g. "apps"
// followed by an app id; the block after the final key is the record that
// gets patched. A Request is consumed once and not retained.
type Request struct {
	RecordPath []string
	Field      string
	Value      string
}

// Result reports one completed (or partially completed) patch.
type Result struct {
	// Inserted is true when the field did not exist and was added, false
	// when an existing value was replaced.
	Inserted bool
	// Verified is true when the committed file was re-read and found to
	// contain both the record key and the escaped value.
	Verified bool
	// BackupPath is the pre-patch copy of the file, empty if the backup
	// failed (see BackupErr) or was never attempted.
	BackupPath string
	BackupErr  error
	// Document is the full new document text that was committed.
	Document []byte
}

// Apply patches the file at path according to req. Failures before the
// commit's atomic swap leave the file untouched; a commit.ErrVerification
// means the swap happened but the content could not be confirmed, and the
// returned Result still carries the backup path for manual recovery.
func Apply(path string, req Request, opts commit.Options) (*Result, error) {
	if len(req.RecordPath) == 0 {
		return nil, fmt.Errorf("%w: empty record path", vdf.ErrNotFound)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	span, err := vdf.LocateRecord(doc, req.RecordPath...)
	if err != nil {
		return nil, err
	}

	record := string(doc[span.Start:span.End])
	updated, inserted := vdf.PatchField(record, req.Field, req.Value)

	newDoc := make([]byte, 0, len(doc)-len(record)+len(updated))
	newDoc = append(newDoc, doc[:span.Start]...)
	newDoc = append(newDoc, updated...)
	newDoc = append(newDoc, doc[span.End:]...)

	recordKey := req.RecordPath[len(req.RecordPath)-1]
	verify := [][]byte{
		[]byte(`"` + recordKey + `"`),
		[]byte(vdf.Escape(req.Value)),
	}

	cres, err := commit.Commit(path, newDoc, verify, opts)
	res := &Result{
		Inserted:   inserted,
		Verified:   cres.Verified,
		BackupPath: cres.BackupPath,
		BackupErr:  cres.BackupErr,
		Document:   newDoc,
	}
	if err != nil {
		return res, err
	}
	return res, nil
}
