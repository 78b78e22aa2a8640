package wikipedia

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeMatcher turns a node predicate into a goquery.Matcher so traversal
// reads as tag/class checks rather than selector strings.
type nodeMatcher func(*html.Node) bool

func (m nodeMatcher) Match(n *html.Node) bool {
	return m(n)
}

// MatchAll returns n and its descendants that match, in document order.
func (m nodeMatcher) MatchAll(n *html.Node) []*html.Node {
	var matched []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if m(node) {
			matched = append(matched, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return matched
}

func (m nodeMatcher) Filter(nodes []*html.Node) []*html.Node {
	var matched []*html.Node
	for _, n := range nodes {
		if m(n) {
			matched = append(matched, n)
		}
	}
	return matched
}

// element matches elements with the given tag carrying every listed class.
func element(tag string, classes ...string) nodeMatcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag && hasClasses(n, classes...)
	}
}

// withClass matches any element carrying every listed class.
func withClass(classes ...string) nodeMatcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClasses(n, classes...)
	}
}

func hasClasses(n *html.Node, classes ...string) bool {
	if len(classes) == 0 {
		return true
	}
	present := strings.Fields(attr(n, "class"))
	for _, want := range classes {
		found := false
		for _, have := range present {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// isHidden reports elements that never render text: styles, scripts and
// anything hidden inline with display:none (Wikipedia uses it for
// machine-readable coordinates).
func isHidden(n *html.Node) bool {
	switch n.Data {
	case "style", "script", "noscript":
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(attr(n, "style")), " ", "")
	return strings.Contains(style, "display:none")
}
