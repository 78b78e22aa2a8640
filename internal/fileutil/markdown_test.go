package fileutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownBuilder(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddHeading(1, "Helsinki Cathedral").
		AddImage("Helsinki Cathedral", "https://upload.wikimedia.org/c.jpg").
		AddParagraph("A Lutheran cathedral.").
		AddParagraph("").
		AddCallout("quote", "Also known as", "Tuomiokirkko\nNikolainkirkko").
		AddTable("Field", "Value", map[string]string{"style": "Neoclassical", "architect": "C. L. Engel | 1830"}).
		AddExternalLink("Wikipedia", "https://en.wikipedia.org/wiki/Helsinki%20Cathedral").
		Build()

	expected := "# Helsinki Cathedral\n\n" +
		"![Helsinki Cathedral](https://upload.wikimedia.org/c.jpg)\n\n" +
		"A Lutheran cathedral.\n\n" +
		">[!quote]- Also known as\n> Tuomiokirkko\n> Nikolainkirkko\n\n" +
		"| Field | Value |\n| --- | --- |\n| architect | C. L. Engel \\| 1830 |\n| style | Neoclassical |\n\n" +
		"[Wikipedia](https://en.wikipedia.org/wiki/Helsinki%20Cathedral)\n"

	assert.Equal(t, expected, doc)
}

func TestMarkdownBuilder_SkipsEmptySections(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddHeading(2, "").
		AddImage("alt", "").
		AddCallout("info", "Nothing", "").
		AddTable("k", "v", nil).
		AddExternalLink("Link", "").
		Build()

	assert.Empty(t, doc)
}

func TestMarkdownBuilder_HeadingLevelClamped(t *testing.T) {
	assert.Equal(t, "# A\n", NewMarkdownBuilder().AddHeading(0, "A").Build())
	assert.Equal(t, "###### B\n", NewMarkdownBuilder().AddHeading(9, "B").Build())
}

func TestMarkdownBuilder_EscapesBrackets(t *testing.T) {
	doc := NewMarkdownBuilder().AddExternalLink("[1] note", "https://example.org").Build()
	assert.Equal(t, "[\\[1\\] note](https://example.org)\n", doc)
}
