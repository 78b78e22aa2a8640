package place

import (
	"github.com/lepinkainen/cityguide/internal/wikipedia"
)

// View is a stored place combined with its Wikipedia enrichment, as served
// to clients and written by the export.
type View struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	ImageURL    string                  `json:"imageUrl,omitempty"`
	Category    string                  `json:"category,omitempty"`
	Location    string                  `json:"location,omitempty"`
	Aliases     []string                `json:"aliases"`
	Infobox     map[string]string       `json:"infobox,omitempty"`
	Gallery     []wikipedia.GalleryItem `json:"gallery,omitempty"`
	WikiURL     string                  `json:"wikiUrl,omitempty"`
	Enriched    bool                    `json:"enriched"`
}

// Merge builds the view of p. Enrichment fields take precedence; the stored
// name, description and image fill in wherever the enrichment is empty, and
// are used as-is when e is nil.
func Merge(p *Place, e *wikipedia.Enrichment) *View {
	view := &View{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Location:    p.Location,
		Aliases:     []string{},
	}

	if e == nil {
		return view
	}

	view.Enriched = true
	view.Name = firstNonEmpty(e.Title, p.Name)
	view.Description = firstNonEmpty(e.Summary, p.Description)
	view.ImageURL = firstNonEmpty(e.ImageURL, p.ImageURL)
	if e.Aliases != nil {
		view.Aliases = e.Aliases
	}
	view.Infobox = e.Infobox
	view.Gallery = e.Gallery
	view.WikiURL = e.WikiURL

	return view
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
