package wikipedia

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extract builds an Enrichment from the rendered HTML of the page with the
// given canonical title. Every field is extracted independently: a missing
// or malformed section only leaves its own field empty.
func Extract(title, rawHTML string) *Enrichment {
	return extract(title, rawHTML, defaultWikiURL)
}

func extract(title, rawHTML, wikiBaseURL string) *Enrichment {
	enrichment := &Enrichment{
		Title:   title,
		Aliases: []string{},
		WikiURL: wikiBaseURL + "/" + url.PathEscape(title),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		slog.Warn("Failed to parse Wikipedia HTML", "title", title, "error", err)
		return enrichment
	}

	if lead := leadParagraph(doc.Selection); lead != nil {
		enrichment.Summary = nodeText(lead)
		enrichment.Aliases = extractAliases(lead)
	}

	if box := doc.FindMatcher(element("table", "infobox", "vcard")).First(); box.Length() > 0 {
		enrichment.Infobox = extractInfobox(box)
		enrichment.ImageURL = extractPrimaryImage(box)
	}

	enrichment.Gallery = extractGallery(doc.Selection)

	return enrichment
}

// leadParagraph returns the first paragraph of the article body that has
// visible text and is not part of a table.
func leadParagraph(doc *goquery.Selection) *goquery.Selection {
	root := doc.FindMatcher(withClass("mw-parser-output")).First()
	if root.Length() == 0 {
		root = doc
	}

	var lead *goquery.Selection
	root.FindMatcher(element("p")).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if p.IsMatcher(withClass("mw-empty-elt")) || p.ParentsMatcher(element("table")).Length() > 0 {
			return true
		}
		if nodeText(p) == "" {
			return true
		}
		lead = p
		return false
	})
	return lead
}

// extractAliases returns the bold spans of the lead paragraph after the
// first one, which is the subject's own name.
func extractAliases(lead *goquery.Selection) []string {
	aliases := []string{}
	lead.FindMatcher(element("b")).Each(func(i int, b *goquery.Selection) {
		if i == 0 {
			return
		}
		if text := nodeText(b); text != "" {
			aliases = append(aliases, text)
		}
	})
	return aliases
}

func extractInfobox(box *goquery.Selection) map[string]string {
	fields := make(map[string]string)
	section := ""
	box.FindMatcher(element("tr")).Each(func(_ int, row *goquery.Selection) {
		header := row.ChildrenMatcher(element("th")).First()
		data := row.ChildrenMatcher(element("td")).First()
		if header.Length() > 0 && data.Length() == 0 {
			section = nodeText(header)
			return
		}
		if header.Length() == 0 || data.Length() == 0 {
			return
		}

		label := nodeText(header)
		key := NormalizeFieldName(label)
		value := nodeText(data)
		if key == "" || value == "" {
			return
		}
		// Repeated sub-labels such as "• Total" are qualified by their section
		if _, seen := fields[key]; seen && section != "" {
			key = NormalizeFieldName(section + " " + label)
		}
		if _, seen := fields[key]; seen {
			return
		}
		fields[key] = value
	})

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func extractPrimaryImage(box *goquery.Selection) string {
	src, ok := box.FindMatcher(element("img")).First().Attr("src")
	if !ok {
		return ""
	}
	imageURL, ok := NormalizeImageURL(src)
	if !ok {
		return ""
	}
	return imageURL
}

func extractGallery(doc *goquery.Selection) []GalleryItem {
	var items []GalleryItem
	doc.FindMatcher(element("ul", "gallery")).Each(func(_ int, gallery *goquery.Selection) {
		gallery.FindMatcher(element("li", "gallerybox")).Each(func(_ int, box *goquery.Selection) {
			src, ok := box.FindMatcher(element("img")).First().Attr("src")
			if !ok {
				return
			}
			imageURL, ok := NormalizeImageURL(src)
			if !ok {
				return
			}
			items = append(items, GalleryItem{
				Caption:  nodeText(box.FindMatcher(withClass("gallerytext")).First()),
				ImageURL: imageURL,
			})
		})
	})
	return items
}
