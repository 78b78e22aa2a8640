package fileutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/cityguide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal text",
			input:    "Helsinki Cathedral",
			expected: "Helsinki Cathedral",
		},
		{
			name:     "text with colon",
			input:    "Suomenlinna: Sea Fortress",
			expected: "Suomenlinna - Sea Fortress",
		},
		{
			name:     "slashes",
			input:    "Bus/Tram\\Stop",
			expected: "Bus-Tram-Stop",
		},
		{
			name:     "reserved characters",
			input:    `What? "Best" <cafe> | *bar*`,
			expected: "What 'Best' cafe - bar",
		},
		{
			name:     "surrounding space",
			input:    "  Oodi  ",
			expected: "Oodi",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestGetMarkdownFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("notes", "Senate Square - Helsinki.md"),
		GetMarkdownFilePath("Senate Square: Helsinki", "notes"))
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("present.txt", "x")
	env.WriteFileString("dir/inner.txt", "x")

	assert.True(t, FileExists(env.Path("present.txt")))
	assert.False(t, FileExists(env.Path("missing.txt")))
	assert.False(t, FileExists(env.Path("dir")), "directories are not files")
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("nested", "note.md")

	written, err := WriteFileWithOverwrite(path, []byte("first"), 0644, false)
	require.NoError(t, err)
	assert.True(t, written, "new files are always written")

	written, err = WriteFileWithOverwrite(path, []byte("second"), 0644, false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "first", env.ReadFileString("nested/note.md"))

	written, err = WriteFileWithOverwrite(path, []byte("third"), 0644, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "third", env.ReadFileString("nested/note.md"))
}

func TestWriteJSONFile(t *testing.T) {
	type entry struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	env := testutil.NewTestEnv(t)
	path := env.Path("export", "places.json")

	written, err := WriteJSONFile([]entry{{1, "Oodi"}, {2, "Ateneum"}}, path, false)
	require.NoError(t, err)
	assert.True(t, written)

	raw := env.ReadFileString("export/places.json")
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"name\": \"Oodi\"\n  },\n  {\n    \"id\": 2,\n    \"name\": \"Ateneum\"\n  }\n]\n", raw)

	written, err = WriteJSONFile([]entry{}, path, false)
	require.NoError(t, err)
	assert.False(t, written, "existing file kept without overwrite")

	written, err = WriteJSONFile([]entry{}, path, true)
	require.NoError(t, err)
	assert.True(t, written)

	var decoded []entry
	require.NoError(t, json.Unmarshal(env.ReadFile("export/places.json"), &decoded))
	assert.Empty(t, decoded)
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	env := testutil.NewTestEnv(t)

	written, err := WriteJSONFile(map[string]any{"bad": make(chan int)}, env.Path("bad.json"), true)
	require.Error(t, err)
	assert.False(t, written)
	env.RequireFileNotExists("bad.json")
}
