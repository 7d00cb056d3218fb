package commit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "localconfig.vdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCommit_ReplacesContent(t *testing.T) {
	path := tempFile(t, "old content")

	res, err := Commit(path, []byte("new content"), [][]byte{[]byte("new")}, Options{})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.NoError(t, res.BackupErr)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))
}

func TestCommit_FixedBackupSuffix(t *testing.T) {
	path := tempFile(t, "original")

	res, err := Commit(path, []byte("changed"), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, path+".backup", res.BackupPath)

	backup, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))
}

func TestCommit_TimestampedBackupSuffix(t *testing.T) {
	path := tempFile(t, "original")

	res, err := Commit(path, []byte("changed"), nil, Options{TimestampBackup: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.BackupPath, path+".backup_"))
	assert.Greater(t, len(res.BackupPath), len(path+".backup_"))

	backup, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))
}

func TestCommit_VerificationFailure(t *testing.T) {
	path := tempFile(t, "old")

	res, err := Commit(path, []byte("new"), [][]byte{[]byte("missing token")}, Options{})
	require.ErrorIs(t, err, ErrVerification)
	assert.False(t, res.Verified)
	// The swap already happened; the caller is pointed at the backup.
	assert.NotEmpty(t, res.BackupPath)
	got, _ := os.ReadFile(path)
	assert.Equal(t, "new", string(got))
}

func TestCommit_MissingOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.vdf")
	_, err := Commit(path, []byte("x"), nil, Options{})
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

// Backup failure must not abort the commit: here the backup path is
// occupied by a directory, so the copy fails while the replace proceeds.
func TestCommit_BackupFailureIsNonFatal(t *testing.T) {
	path := tempFile(t, "old")
	require.NoError(t, os.Mkdir(path+".backup", 0o755))

	res, err := Commit(path, []byte("new"), [][]byte{[]byte("new")}, Options{})
	require.NoError(t, err)
	assert.Error(t, res.BackupErr)
	assert.Empty(t, res.BackupPath)
	assert.True(t, res.Verified)

	got, _ := os.ReadFile(path)
	assert.Equal(t, "new", string(got))
}

func TestCommit_PreservesPermissions(t *testing.T) {
	path := tempFile(t, "content")
	require.NoError(t, os.Chmod(path, 0o600))

	_, err := Commit(path, []byte("new"), nil, Options{})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCommit_NoTempFileLeftBehind(t *testing.T) {
	path := tempFile(t, "old")
	_, err := Commit(path, []byte("new"), nil, Options{})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "-", "stray temp file %s", e.Name())
	}
}

// Aborting before the rename leaves the original untouched. A read-only
// directory makes the temp-file stage fail.
func TestCommit_AbortBeforeSwapLeavesOriginal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.vdf")
	require.NoError(t, os.WriteFile(path, []byte("pristine"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := Commit(path, []byte("mutated"), nil, Options{})
	require.Error(t, err)

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "pristine", string(got))
}
