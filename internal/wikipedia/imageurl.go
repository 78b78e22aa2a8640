package wikipedia

import (
	"regexp"
	"strings"
)

const wikipediaOrigin = "https://en.wikipedia.org"

// sizeSuffixPattern matches thumbnail file names such as "220px-Foo.jpg",
// "lossy-page1-220px-Foo.tif.jpg" or "langen-120px-Map.svg.png".
var sizeSuffixPattern = regexp.MustCompile(`^(?:[a-z]+-)*(?:page\d+-)?\d+px-`)

// NormalizeImageURL turns an <img> src from rendered Wikipedia HTML into a
// fully-qualified https URL of the original asset. Scheme-relative and
// site-relative sources are qualified, "/thumb/" is removed together with
// the size-suffixed file name that follows the original file name, and any
// query or fragment is dropped. The second result is false when src cannot
// be turned into an https URL (empty, data: URIs, other schemes).
func NormalizeImageURL(src string) (string, bool) {
	src = strings.TrimSpace(src)

	var rest string
	switch {
	case strings.HasPrefix(src, "//"):
		rest = strings.TrimPrefix(src, "//")
	case strings.HasPrefix(src, "https://"):
		rest = strings.TrimPrefix(src, "https://")
	case strings.HasPrefix(src, "http://"):
		rest = strings.TrimPrefix(src, "http://")
	case strings.HasPrefix(src, "/"):
		rest = strings.TrimPrefix(wikipediaOrigin, "https://") + src
	default:
		return "", false
	}

	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	host, path, _ := strings.Cut(rest, "/")
	if host == "" || path == "" {
		return "", false
	}

	return "https://" + host + stripThumbnail("/"+path), true
}

// stripThumbnail rewrites /a/thumb/x/xy/Foo.jpg/220px-Foo.jpg to /a/x/xy/Foo.jpg.
func stripThumbnail(path string) string {
	i := strings.Index(path, "/thumb/")
	if i < 0 {
		return path
	}
	path = path[:i] + path[i+len("/thumb"):]

	last := strings.LastIndex(path, "/")
	if last > i && sizeSuffixPattern.MatchString(path[last+1:]) {
		path = path[:last]
	}
	return path
}
