package obsidian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteBuild(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("title", "Helsinki Cathedral")
	fm.Set("tags", []string{"place", "church"})
	fm.Set("aliases", []string{"Tuomiokirkko"})
	fm.Set("enriched", true)
	fm.Set("image", "")

	content, err := (&Note{Frontmatter: fm, Body: "# Helsinki Cathedral\n"}).Build()
	require.NoError(t, err)

	expected := "---\n" +
		"aliases: [Tuomiokirkko]\n" +
		"enriched: true\n" +
		"tags: [place, church]\n" +
		"title: Helsinki Cathedral\n" +
		"---\n" +
		"\n" +
		"# Helsinki Cathedral\n"
	assert.Equal(t, expected, string(content))
}

func TestNoteBuild_EmptyFrontmatter(t *testing.T) {
	content, err := (&Note{Frontmatter: NewFrontmatter(), Body: "Body only.\n"}).Build()
	require.NoError(t, err)
	assert.Equal(t, "Body only.\n", string(content))
}

func TestNoteBuild_QuotesAmbiguousScalars(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("title", "Yes: no")
	fm.Set("location", "true")

	content, err := (&Note{Frontmatter: fm}).Build()
	require.NoError(t, err)

	parsed, err := ParseMarkdown(content)
	require.NoError(t, err)
	assert.Equal(t, "Yes: no", parsed.Frontmatter.GetString("title"))
	assert.Equal(t, "true", parsed.Frontmatter.GetString("location"))
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantTags  []string
		wantBody  string
		wantErr   bool
	}{
		{
			name:      "flow style lists",
			input:     "---\ntitle: Oodi\ntags: [place, library]\n---\n\nBody.\n",
			wantTitle: "Oodi",
			wantTags:  []string{"place", "library"},
			wantBody:  "Body.\n",
		},
		{
			name:      "block style lists",
			input:     "---\ntitle: Oodi\ntags:\n  - place\n  - library\n---\nBody.",
			wantTitle: "Oodi",
			wantTags:  []string{"place", "library"},
			wantBody:  "Body.",
		},
		{
			name:     "no frontmatter",
			input:    "Just a body.",
			wantTags: []string{},
			wantBody: "Just a body.",
		},
		{
			name:     "empty frontmatter",
			input:    "---\n---\nBody.",
			wantTags: []string{},
			wantBody: "Body.",
		},
		{
			name:     "unterminated frontmatter is body",
			input:    "---\ntitle: Oodi\nBody.",
			wantTags: []string{},
			wantBody: "---\ntitle: Oodi\nBody.",
		},
		{
			name:      "windows line endings",
			input:     "---\r\ntitle: Oodi\r\n---\r\nBody.",
			wantTitle: "Oodi",
			wantTags:  []string{},
			wantBody:  "Body.",
		},
		{
			name:    "invalid yaml",
			input:   "---\ntitle: [unclosed\n---\nBody.",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			note, err := ParseMarkdown([]byte(tc.input))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, note.Frontmatter.GetString("title"))
			assert.Equal(t, tc.wantTags, note.Frontmatter.GetStringArray("tags"))
			assert.Equal(t, tc.wantBody, note.Body)
		})
	}
}

func TestFrontmatterSetGet(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("title", "Oodi")
	fm.Set("category", "library")
	fm.Set("enriched", true)

	assert.Equal(t, []string{"category", "enriched", "title"}, fm.Keys())
	enriched, ok := fm.Get("enriched")
	assert.True(t, ok)
	assert.Equal(t, true, enriched)
	assert.Empty(t, fm.GetStringArray("title"), "wrong type reads as empty")
	assert.Empty(t, fm.GetString("missing"))

	fm.Set("title", "Oodi Central Library")
	assert.Equal(t, "Oodi Central Library", fm.GetString("title"))
	assert.Len(t, fm.Keys(), 3)

	fm.Set("category", "")
	_, ok = fm.Get("category")
	assert.False(t, ok, "empty string removes the key")

	fm.Set("enriched", nil)
	fm.Set("never-set", nil)
	assert.Equal(t, []string{"title"}, fm.Keys())
}

func TestTagSet(t *testing.T) {
	tags := NewTagSet()
	tags.Add("place")
	tags.Add("#Museum & Gallery")
	tags.Add("  category/art   museum ")
	tags.Add("place")
	tags.Add("  ")
	tags.AddIf(false, "skipped")
	tags.AddIf(true, "wikipedia")

	assert.Equal(t, []string{"Museum-and-Gallery", "category/art-museum", "place", "wikipedia"}, tags.GetSorted())
}

func TestNormalizeTag(t *testing.T) {
	tests := map[string]string{
		"church":            "church",
		"#Church":           "Church",
		"Market   Square":   "Market-Square",
		"--edge--":          "edge",
		"Food & Drink":      "Food-and-Drink",
		"place/Helsinki":    "place/Helsinki",
		"# ":                "",
		"":                  "",
		"a - b":             "a-b",
		"Tom's #1 favorite": "Tom's-1-favorite",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeTag(input), "input %q", input)
	}
}
