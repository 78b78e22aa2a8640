package wikipedia

// Enrichment is the structured summary extracted from one Wikipedia page.
// It is built fresh for every call and never persisted.
type Enrichment struct {
	// Title is the canonical page title after redirect resolution.
	Title string `json:"title"`

	// Aliases are bold names in the lead paragraph after the first one.
	// Never nil.
	Aliases []string `json:"aliases"`

	// Summary is the lead paragraph as plain text without citation markers.
	Summary string `json:"summary"`

	// ImageURL is the full-size primary infobox image, empty when absent.
	ImageURL string `json:"imageUrl,omitempty"`

	// Infobox maps normalized field names to values. Nil when the page has
	// no infobox or no usable rows.
	Infobox map[string]string `json:"infobox,omitempty"`

	// Gallery holds gallery images in document order. Nil when absent.
	Gallery []GalleryItem `json:"gallery,omitempty"`

	// WikiURL is the article URL for the canonical title.
	WikiURL string `json:"wikiUrl"`
}

// GalleryItem is one captioned image from a gallery section.
type GalleryItem struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"imageUrl"`
}

// parseResponse is the envelope returned by action=parse&format=json.
type parseResponse struct {
	Parse *parsedPage `json:"parse"`
	Error *apiError   `json:"error"`
}

type parsedPage struct {
	Title     string     `json:"title"`
	PageID    int        `json:"pageid"`
	Redirects []redirect `json:"redirects"`
	Text      struct {
		HTML string `json:"*"`
	} `json:"text"`
}

type redirect struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}
