package wikipedia

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var citationPattern = regexp.MustCompile(`\[\d+\]`)

// blockElements get a separating space around their text so that list
// items and cells do not run together.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "dd": true, "dt": true,
	"tr": true, "td": true, "th": true, "br": true,
}

// nodeText renders the visible text of a selection as a single line with
// citation markers removed.
func nodeText(s *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range s.Nodes {
		writeText(&sb, n)
	}
	return CleanText(sb.String())
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if isHidden(n) {
			return
		}
		if blockElements[n.Data] {
			sb.WriteByte(' ')
			defer sb.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}

// CleanText removes bracketed numeric citation markers such as "[12]",
// collapses whitespace (including non-breaking spaces) and trims the result.
func CleanText(s string) string {
	for citationPattern.MatchString(s) {
		s = citationPattern.ReplaceAllString(s, "")
	}
	return strings.Join(strings.Fields(s), " ")
}
