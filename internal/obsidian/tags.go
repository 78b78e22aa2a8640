package obsidian

import (
	"regexp"
	"sort"
	"strings"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	hyphenPattern     = regexp.MustCompile(`-+`)
)

// NormalizeTag turns free text into an Obsidian tag: case is kept, a
// leading # is dropped, & becomes "and", whitespace becomes hyphens and
// hyphen runs collapse. "/" is kept for tag hierarchy.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")
	tag = whitespacePattern.ReplaceAllString(tag, "-")
	tag = hyphenPattern.ReplaceAllString(tag, "-")

	return strings.Trim(tag, "-")
}

// TagSet collects normalized, deduplicated tags.
type TagSet struct {
	tags map[string]bool
}

// NewTagSet creates a new TagSet for collecting tags.
func NewTagSet() *TagSet {
	return &TagSet{
		tags: make(map[string]bool),
	}
}

// Add adds a tag to the set after normalization. Empty results are dropped.
func (ts *TagSet) Add(tag string) {
	if normalized := NormalizeTag(tag); normalized != "" {
		ts.tags[normalized] = true
	}
}

// AddIf conditionally adds a tag if the condition is true.
func (ts *TagSet) AddIf(condition bool, tag string) {
	if condition {
		ts.Add(tag)
	}
}

// GetSorted returns all tags as a sorted slice.
func (ts *TagSet) GetSorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}
