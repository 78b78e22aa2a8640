package fileutil

import (
	"fmt"
	"slices"
	"strings"
)

// MarkdownBuilder assembles a markdown note body section by section.
// Empty inputs are skipped so callers can add optional sections blindly.
type MarkdownBuilder struct {
	content strings.Builder
}

// NewMarkdownBuilder creates a new markdown builder
func NewMarkdownBuilder() *MarkdownBuilder {
	return &MarkdownBuilder{}
}

// AddHeading adds a heading of the given level (1-6)
func (mb *MarkdownBuilder) AddHeading(level int, text string) *MarkdownBuilder {
	if text == "" {
		return mb
	}
	level = min(max(level, 1), 6)
	fmt.Fprintf(&mb.content, "%s %s\n\n", strings.Repeat("#", level), text)
	return mb
}

// AddParagraph adds a paragraph of text to the content
func (mb *MarkdownBuilder) AddParagraph(text string) *MarkdownBuilder {
	if text == "" {
		return mb
	}

	mb.content.WriteString(text)
	mb.content.WriteString("\n\n")
	return mb
}

// AddImage adds an image with optional alt text
func (mb *MarkdownBuilder) AddImage(alt, imageURL string) *MarkdownBuilder {
	if imageURL == "" {
		return mb
	}

	fmt.Fprintf(&mb.content, "![%s](%s)\n\n", escapeBrackets(alt), imageURL)
	return mb
}

// AddCallout adds a collapsed callout section to the content
func (mb *MarkdownBuilder) AddCallout(calloutType, title, content string) *MarkdownBuilder {
	if content == "" {
		return mb
	}

	if title != "" {
		fmt.Fprintf(&mb.content, ">[!%s]- %s\n", calloutType, title)
	} else {
		fmt.Fprintf(&mb.content, ">[!%s]\n", calloutType)
	}

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(&mb.content, "> %s\n", line)
	}

	mb.content.WriteString("\n")
	return mb
}

// AddTable adds a two-column table of fields sorted by key
func (mb *MarkdownBuilder) AddTable(keyHeader, valueHeader string, fields map[string]string) *MarkdownBuilder {
	if len(fields) == 0 {
		return mb
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Fprintf(&mb.content, "| %s | %s |\n| --- | --- |\n", keyHeader, valueHeader)
	for _, k := range keys {
		fmt.Fprintf(&mb.content, "| %s | %s |\n", escapeCell(k), escapeCell(fields[k]))
	}
	mb.content.WriteString("\n")
	return mb
}

// AddExternalLink adds an external link to the content
func (mb *MarkdownBuilder) AddExternalLink(title, url string) *MarkdownBuilder {
	if url == "" {
		return mb
	}

	fmt.Fprintf(&mb.content, "[%s](%s)\n\n", escapeBrackets(title), url)
	return mb
}

// Build returns the markdown body, ending in a single newline
func (mb *MarkdownBuilder) Build() string {
	body := strings.TrimRight(mb.content.String(), "\n")
	if body == "" {
		return ""
	}
	return body + "\n"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func escapeBrackets(s string) string {
	return strings.NewReplacer("[", "\\[", "]", "\\]").Replace(s)
}
