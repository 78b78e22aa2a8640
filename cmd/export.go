package cmd

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/cityguide/internal/config"
	"github.com/lepinkainen/cityguide/internal/export"
	"github.com/lepinkainen/cityguide/internal/place"
	"github.com/lepinkainen/cityguide/internal/ratelimit"
)

// ExportCmd represents the export command
type ExportCmd struct {
	JSONFile    string `help:"Path to JSON output file (defaults to export.json_file in config)"`
	MarkdownDir string `short:"o" help:"Directory for markdown notes (defaults to export.markdown_dir in config)"`
	NoJSON      bool   `help:"Skip the JSON output"`
	NoMarkdown  bool   `help:"Skip the markdown notes"`
	Concurrency int    `help:"Number of places enriched in parallel (defaults to export.concurrency in config)"`
	Rate        int    `help:"Wikipedia requests per second (defaults to export.rate_per_second in config)"`
}

func (e *ExportCmd) Run(ctx context.Context) error {
	opts := export.Options{
		Enricher:    newEnricher(),
		Limiter:     ratelimit.New("wikipedia", firstPositive(e.Rate, config.ExportRatePerSecond)),
		Concurrency: firstPositive(e.Concurrency, config.ExportConcurrency),
		Overwrite:   config.OverwriteFiles,
	}
	if !e.NoJSON {
		opts.JSONFile = firstNonEmpty(e.JSONFile, config.ExportJSONFile)
	}
	if !e.NoMarkdown {
		opts.MarkdownDir = firstNonEmpty(e.MarkdownDir, config.ExportMarkdownDir)
	}

	return withStore(func(store *place.Store) error {
		opts.Store = store
		summary, err := export.Run(ctx, opts)
		if err != nil {
			return err
		}
		slog.Info("Export complete",
			"places", summary.Places,
			"enriched", summary.Enriched,
			"json", summary.JSONWritten,
			"notes", summary.NotesWritten,
			"skipped", summary.NotesSkipped)
		return nil
	})
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
