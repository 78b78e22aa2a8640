package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing export files should be overwritten
	OverwriteFiles bool
	// DatabaseFile is the SQLite database holding the stored places
	DatabaseFile string

	// WikipediaAPIURL is the parse API endpoint
	WikipediaAPIURL string
	// WikipediaWikiURL is the prefix for article links
	WikipediaWikiURL string
	// WikipediaTimeout bounds every outbound Wikipedia call
	WikipediaTimeout time.Duration
	// WikipediaUserAgent is sent with every Wikipedia request
	WikipediaUserAgent string

	// ServerAddr is the listen address of the HTTP API
	ServerAddr string

	// ExportRatePerSecond caps Wikipedia calls made by the export
	ExportRatePerSecond int
	// ExportConcurrency is the number of places enriched in parallel
	ExportConcurrency int
	// ExportJSONFile is where the merged views are written, empty to skip
	ExportJSONFile string
	// ExportMarkdownDir receives one note per place, empty to skip
	ExportMarkdownDir string
)

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("database.file", "./cityguide.db")
	viper.SetDefault("wikipedia.api_url", "https://en.wikipedia.org/w/api.php")
	viper.SetDefault("wikipedia.wiki_url", "https://en.wikipedia.org/wiki")
	viper.SetDefault("wikipedia.timeout", "10s")
	viper.SetDefault("wikipedia.user_agent", "cityguide/1.0 (https://github.com/lepinkainen/cityguide)")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("export.rate_per_second", 2)
	viper.SetDefault("export.concurrency", 4)
	viper.SetDefault("export.json_file", "./export/places.json")
	viper.SetDefault("export.markdown_dir", "./export/markdown/")
	viper.SetDefault("overwrite", false)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OverwriteFiles = viper.GetBool("overwrite")
	DatabaseFile = viper.GetString("database.file")

	WikipediaAPIURL = viper.GetString("wikipedia.api_url")
	WikipediaWikiURL = viper.GetString("wikipedia.wiki_url")
	WikipediaTimeout = viper.GetDuration("wikipedia.timeout")
	WikipediaUserAgent = viper.GetString("wikipedia.user_agent")

	ServerAddr = viper.GetString("server.addr")

	ExportRatePerSecond = viper.GetInt("export.rate_per_second")
	ExportConcurrency = viper.GetInt("export.concurrency")
	ExportJSONFile = viper.GetString("export.json_file")
	ExportMarkdownDir = viper.GetString("export.markdown_dir")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetDatabaseFile overrides the configured database path when non-empty
func SetDatabaseFile(path string) {
	if path != "" {
		DatabaseFile = path
	}
}
