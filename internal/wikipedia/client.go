// Package wikipedia enriches locally stored places with data scraped from
// their English Wikipedia article: title, alternate names, lead summary,
// infobox fields, primary image and gallery.
package wikipedia

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIURL    = "https://en.wikipedia.org/w/api.php"
	defaultWikiURL   = "https://en.wikipedia.org/wiki"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "cityguide/1.0 (https://github.com/lepinkainen/cityguide)"
	maxResponseBytes = int64(8 << 20)
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches Wikipedia pages through the parse API and extracts an
// Enrichment from them. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	apiURL     string
	wikiURL    string
	userAgent  string
	timeout    time.Duration
	httpClient HTTPDoer
	maxBody    int64
}

// NewClient creates a new Wikipedia client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		apiURL:    defaultAPIURL,
		wikiURL:   defaultWikiURL,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		maxBody:   maxResponseBytes,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Built after the options so WithTimeout also bounds the default transport
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets the parse API endpoint (e.g. https://en.wikipedia.org/w/api.php).
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.apiURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithWikiBaseURL sets the prefix used to build article URLs.
func WithWikiBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.wikiURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout bounds every outbound call. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header. Wikimedia rejects requests without one.
func WithUserAgent(userAgent string) Option {
	return func(client *Client) {
		if userAgent != "" {
			client.userAgent = userAgent
		}
	}
}
