package obsidian

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// flowKeys are written as single-line YAML sequences: [a, b, c].
var flowKeys = map[string]bool{
	"tags":    true,
	"aliases": true,
}

// Note is a markdown document with YAML frontmatter.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Frontmatter holds note metadata and serializes it with sorted keys so the
// output is deterministic.
type Frontmatter struct {
	fields map[string]any
	keys   []string
}

// NewFrontmatter creates a new empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{
		fields: make(map[string]any),
		keys:   []string{},
	}
}

// ParseMarkdown splits content into frontmatter and body. A document
// without a frontmatter block is all body.
func ParseMarkdown(content []byte) (*Note, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	if !strings.HasPrefix(text, "---\n") {
		return &Note{Frontmatter: NewFrontmatter(), Body: text}, nil
	}

	rest := text[len("---\n"):]
	var header, body string
	if strings.HasPrefix(rest, "---\n") {
		body = rest[len("---\n"):]
	} else {
		end := strings.Index(rest, "\n---\n")
		if end == -1 {
			return &Note{Frontmatter: NewFrontmatter(), Body: text}, nil
		}
		header = rest[:end]
		body = rest[end+len("\n---\n"):]
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(header), &data); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	fm := NewFrontmatter()
	for key, value := range data {
		fm.Set(key, value)
	}

	return &Note{Frontmatter: fm, Body: strings.TrimPrefix(body, "\n")}, nil
}

// Build serializes the note. The frontmatter block is omitted when empty.
func (n *Note) Build() ([]byte, error) {
	var buf bytes.Buffer

	if n.Frontmatter != nil && len(n.Frontmatter.keys) > 0 {
		frontmatter, err := yaml.Marshal(n.Frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(frontmatter)
		buf.WriteString("---\n")
		if n.Body != "" {
			buf.WriteString("\n")
		}
	}

	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}

// Get retrieves a value from frontmatter.
func (f *Frontmatter) Get(key string) (any, bool) {
	val, ok := f.fields[key]
	return val, ok
}

// Set stores value under key. Nil values and empty strings remove the key.
func (f *Frontmatter) Set(key string, value any) {
	if value == nil {
		f.remove(key)
		return
	}
	if s, ok := value.(string); ok && s == "" {
		f.remove(key)
		return
	}

	if _, exists := f.fields[key]; !exists {
		i, _ := slices.BinarySearch(f.keys, key)
		f.keys = slices.Insert(f.keys, i, key)
	}
	f.fields[key] = value
}

func (f *Frontmatter) remove(key string) {
	if _, ok := f.fields[key]; !ok {
		return
	}
	delete(f.fields, key)
	if i, found := slices.BinarySearch(f.keys, key); found {
		f.keys = slices.Delete(f.keys, i, i+1)
	}
}

// GetString retrieves a string value, returning empty string if not found or wrong type.
func (f *Frontmatter) GetString(key string) string {
	s, _ := f.fields[key].(string)
	return s
}

// GetStringArray retrieves a string list, returning an empty slice if not found.
func (f *Frontmatter) GetStringArray(key string) []string {
	return stringsFromAny(f.fields[key])
}

// Keys returns a copy of the sorted frontmatter keys.
func (f *Frontmatter) Keys() []string {
	return slices.Clone(f.keys)
}

// MarshalYAML emits keys in sorted order, with list keys such as tags and
// aliases in flow style.
func (f *Frontmatter) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(f.keys)*2),
	}

	for _, key := range f.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

		valueNode := &yaml.Node{}
		if flowKeys[key] {
			valueNode.Kind = yaml.SequenceNode
			valueNode.Style = yaml.FlowStyle
			for _, item := range stringsFromAny(f.fields[key]) {
				valueNode.Content = append(valueNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
			}
		} else if err := valueNode.Encode(f.fields[key]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

// stringsFromAny extracts non-empty strings from a []string or from the
// []any that YAML decoding produces.
func stringsFromAny(val any) []string {
	result := []string{}
	switch v := val.(type) {
	case []string:
		for _, s := range v {
			if s != "" {
				result = append(result, s)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
	}
	return result
}
