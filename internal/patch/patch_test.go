package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optiscalerctl/internal/commit"
	"optiscalerctl/internal/vdf"
)

const userConfig = `"UserLocalConfigStore"
{
	"Software"
	{
		"Valve"
		{
			"Steam"
			{
				"apps"
				{
					"12345"
					{
						"name"		"Test Game"
						"LastUpdated"		"1234567890"
						"SizeOnDisk"		"1000000"
						"tool"		"0"
					}
					"54321"
					{
						"name"		"Another Game"
						"LaunchOptions"		"existing_option"
					}
				}
			}
		}
	}
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "localconfig.vdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApply_InsertsField(t *testing.T) {
	path := writeConfig(t, userConfig)

	res, err := Apply(path, Request{
		RecordPath: []string{"apps", "12345"},
		Field:      "LaunchOptions",
		Value:      `WINEDLLOVERRIDES="dxgi=n,b" PROTON_FSR4_UPGRADE=1 %command%`,
	}, commit.Options{})
	require.NoError(t, err)
	assert.True(t, res.Inserted)
	assert.True(t, res.Verified)
	assert.NotEmpty(t, res.BackupPath)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got),
		"\"LaunchOptions\"\t\t\"WINEDLLOVERRIDES=\\\"dxgi=n,b\\\" PROTON_FSR4_UPGRADE=1 %command%\"")

	// Exactly one field was added; every byte outside the record span is
	// unchanged.
	assert.Equal(t, 1, strings.Count(string(got), `"LaunchOptions"`)-strings.Count(userConfig, `"LaunchOptions"`))
	assert.Contains(t, string(got), "\"54321\"\n\t\t\t\t\t{\n\t\t\t\t\t\t\"name\"\t\t\"Another Game\"")
}

func TestApply_ReplacesField(t *testing.T) {
	path := writeConfig(t, userConfig)

	res, err := Apply(path, Request{
		RecordPath: []string{"apps", "54321"},
		Field:      "LaunchOptions",
		Value:      "mangohud %command%",
	}, commit.Options{})
	require.NoError(t, err)
	assert.False(t, res.Inserted)
	assert.True(t, res.Verified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(got), "existing_option")
	assert.Contains(t, string(got), "\"LaunchOptions\"\t\t\"mangohud %command%\"")
	// The other app's record is untouched.
	assert.Contains(t, string(got), "\"name\"\t\t\"Test Game\"")
}

// Scenario: compact record, escaped quotes in the old and new value.
func TestApply_ReplaceEscapedValue(t *testing.T) {
	path := writeConfig(t, `"200"{"X" "old\"val"}`)

	res, err := Apply(path, Request{
		RecordPath: []string{"200"},
		Field:      "X",
		Value:      `new"val`,
	}, commit.Options{})
	require.NoError(t, err)
	assert.False(t, res.Inserted)

	got, _ := os.ReadFile(path)
	assert.Equal(t, `"200"{"X" "new\"val"}`, string(got))
}

// Scenario: compact record without the field; exact inserted bytes.
func TestApply_InsertCompactRecord(t *testing.T) {
	path := writeConfig(t, `"100"{"name" "Foo"}`)

	res, err := Apply(path, Request{
		RecordPath: []string{"100"},
		Field:      "X",
		Value:      "hello",
	}, commit.Options{})
	require.NoError(t, err)
	assert.True(t, res.Inserted)

	got, _ := os.ReadFile(path)
	assert.Equal(t, "\"100\"{\"name\" \"Foo\"\n\t\t\t\t\t\t\"X\"\t\t\"hello\"}", string(got))
}

func TestApply_RecordNotFound(t *testing.T) {
	path := writeConfig(t, userConfig)

	_, err := Apply(path, Request{
		RecordPath: []string{"apps", "999"},
		Field:      "LaunchOptions",
		Value:      "opt",
	}, commit.Options{})
	require.ErrorIs(t, err, vdf.ErrNotFound)

	// Document on disk unchanged, no backup created.
	got, _ := os.ReadFile(path)
	assert.Equal(t, userConfig, string(got))
	_, statErr := os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(statErr))
}

func TestApply_MalformedDocumentAbortsBeforeWrite(t *testing.T) {
	doc := `"apps" { "12345" { "name" "Broken"`
	path := writeConfig(t, doc)

	_, err := Apply(path, Request{
		RecordPath: []string{"apps", "12345"},
		Field:      "LaunchOptions",
		Value:      "opt",
	}, commit.Options{})
	require.ErrorIs(t, err, vdf.ErrMalformed)

	got, _ := os.ReadFile(path)
	assert.Equal(t, doc, string(got))
	_, statErr := os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(statErr))
}

// Two sequential applications of the same request produce byte-identical
// documents.
func TestApply_Idempotent(t *testing.T) {
	path := writeConfig(t, userConfig)
	req := Request{
		RecordPath: []string{"apps", "12345"},
		Field:      "LaunchOptions",
		Value:      `echo "quoted" C:\path %command%`,
	}

	first, err := Apply(path, req, commit.Options{})
	require.NoError(t, err)
	assert.True(t, first.Inserted)
	afterFirst, _ := os.ReadFile(path)

	second, err := Apply(path, req, commit.Options{})
	require.NoError(t, err)
	assert.False(t, second.Inserted)
	afterSecond, _ := os.ReadFile(path)

	assert.Equal(t, string(afterFirst), string(afterSecond))
}

func TestApply_MissingFile(t *testing.T) {
	_, err := Apply(filepath.Join(t.TempDir(), "nope.vdf"), Request{
		RecordPath: []string{"apps", "1"},
		Field:      "LaunchOptions",
		Value:      "opt",
	}, commit.Options{})
	assert.Error(t, err)
}
