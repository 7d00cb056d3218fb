package vdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `"UserLocalConfigStore"
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

func TestFindBlock_Nested(t *testing.T) {
	doc := []byte(`"a" { "b" { "c" "1" } "d" "2" }`)
	span, ok := FindBlock(doc, 0)
	require.True(t, ok)
	assert.Equal(t, ` "b" { "c" "1" } "d" "2" `, string(doc[span.Start:span.End]))

	// Scanning from inside the outer block finds the inner one.
	inner, ok := FindBlock(doc, span.Start)
	require.True(t, ok)
	assert.Equal(t, ` "c" "1" `, string(doc[inner.Start:inner.End]))
}

func TestFindBlock_NoBrace(t *testing.T) {
	_, ok := FindBlock([]byte(`"key" "value"`), 0)
	assert.False(t, ok)
}

func TestFindBlock_Unbalanced(t *testing.T) {
	_, ok := FindBlock([]byte(`"key" { "a" { "b" "1" }`), 0)
	assert.False(t, ok)
}

func TestFindBlock_OffsetOutOfRange(t *testing.T) {
	_, ok := FindBlock([]byte(`{}`), 99)
	assert.False(t, ok)
	_, ok = FindBlock([]byte(`{}`), -1)
	assert.False(t, ok)
}

func TestLocateRecord_Path(t *testing.T) {
	doc := []byte(sampleConfig)
	span, err := LocateRecord(doc, "apps", "12345")
	require.NoError(t, err)
	interior := string(doc[span.Start:span.End])
	assert.Contains(t, interior, `"name"		"Test Game"`)
	assert.NotContains(t, interior, "Another Game")
}

func TestLocateRecord_KeyAbsent(t *testing.T) {
	_, err := LocateRecord([]byte(sampleConfig), "apps", "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateRecord_PathSegmentAbsent(t *testing.T) {
	_, err := LocateRecord([]byte(sampleConfig), "nosuchsection", "12345")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateRecord_KeyWithoutBlock(t *testing.T) {
	doc := []byte(`"100"	"just a value"`)
	_, err := LocateRecord(doc, "100")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateRecord_WhitespaceBeforeBrace(t *testing.T) {
	doc := []byte("\"100\"\n\t\t\t\t\t{\n\t\"name\"\t\"Foo\"\n}")
	span, err := LocateRecord(doc, "100")
	require.NoError(t, err)
	assert.Contains(t, string(doc[span.Start:span.End]), `"name"`)
}

func TestLocateRecord_UnbalancedBlock(t *testing.T) {
	doc := []byte(`"100" { "name" "Foo"`)
	_, err := LocateRecord(doc, "100")
	assert.ErrorIs(t, err, ErrMalformed)
}

// The source documents may repeat an identifying key; the first
// occurrence wins, matching the behavior of the producer this engine
// follows rather than fixing it.
func TestLocateRecord_DuplicateKeyFirstMatch(t *testing.T) {
	doc := []byte(`"100" { "name" "First" } "100" { "name" "Second" }`)
	span, err := LocateRecord(doc, "100")
	require.NoError(t, err)
	assert.Contains(t, string(doc[span.Start:span.End]), "First")
}

func TestFieldValue(t *testing.T) {
	doc := []byte(sampleConfig)
	name, ok := FieldValue(doc, "name")
	require.True(t, ok)
	assert.Equal(t, "Test Game", name)

	_, ok = FieldValue(doc, "nosuchfield")
	assert.False(t, ok)
}

func TestFieldValue_DecodesEscapes(t *testing.T) {
	doc := []byte(`"LaunchOptions"		"echo \"hi\" C:\\games"`)
	v, ok := FieldValue(doc, "LaunchOptions")
	require.True(t, ok)
	assert.Equal(t, `echo "hi" C:\games`, v)
}

func TestFieldValues_Repeated(t *testing.T) {
	doc := []byte(`
"libraryfolders"
{
	"0"
	{
		"path"		"/home/user/.local/share/Steam"
	}
	"1"
	{
		"path"		"/mnt/games/SteamLibrary"
	}
}
`)
	paths := FieldValues(doc, "path")
	assert.Equal(t, []string{"/home/user/.local/share/Steam", "/mnt/games/SteamLibrary"}, paths)
}
