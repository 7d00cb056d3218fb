// Package commit durably replaces a file's content. The new bytes are
// staged to a temp file in the target's directory so the final rename is
// atomic with respect to concurrent readers: they observe either the old
// or the new content, never a partial write.
package commit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrVerification reports that the replacement was swapped in but a
// re-read did not contain an expected token. On-disk state may differ
// from the intended one; the backup is the recovery path.
var ErrVerification = errors.New("post-commit verification failed")

// Options select commit policies.
type Options struct {
	// TimestampBackup appends a timestamp to the backup name instead of
	// the fixed ".backup" suffix, keeping one backup per commit.
	TimestampBackup bool
}

// Result describes one commit. BackupErr is set when the pre-write backup
// could not be created; by policy that does not abort the commit, since
// losing the rollback copy is less severe than failing the requested
// change. Callers decide whether and how to report it.
type Result struct {
	BackupPath string
	Verified   bool
	BackupErr  error
}

const backupSuffix = ".backup"

func backupName(path string, timestamped bool) string {
	if timestamped {
		return path + backupSuffix + "_" + time.Now().Format("20060102_150405")
	}
	return path + backupSuffix
}

// Commit replaces the file at path with content. The original is copied
// aside first (best effort), content is staged to a temp file in the same
// directory, the temp file atomically renames over the original, and the
// result is re-read to confirm every verify token reached the disk.
// Failures before the rename remove the temp file and leave the original
// untouched.
func Commit(path string, content []byte, verify [][]byte, opts Options) (Result, error) {
	var res Result

	original, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read original %s: %w", path, err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	bp := backupName(path, opts.TimestampBackup)
	if err := os.WriteFile(bp, original, mode); err != nil {
		res.BackupErr = fmt.Errorf("backup %s: %w", bp, err)
	} else {
		res.BackupPath = bp
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return res, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return res, fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return res, fmt.Errorf("close temp: %w", err)
	}
	_ = os.Chmod(tmpName, mode) // best-effort permission sync

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return res, fmt.Errorf("rename temp to %s: %w", path, err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("%w: re-read %s: %v", ErrVerification, path, err)
	}
	for _, token := range verify {
		if !bytes.Contains(written, token) {
			return res, fmt.Errorf("%w: token %q missing", ErrVerification, token)
		}
	}
	res.Verified = true
	return res, nil
}
