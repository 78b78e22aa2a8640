// Package export writes every stored place, merged with its Wikipedia
// enrichment, to a JSON file and to one markdown note per place.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/cityguide/internal/fileutil"
	"github.com/lepinkainen/cityguide/internal/place"
	"github.com/lepinkainen/cityguide/internal/ratelimit"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Options configures an export run.
type Options struct {
	Store    *place.Store
	Enricher place.Enricher
	// Limiter paces enrichment calls across all workers. Nil means unlimited.
	Limiter *ratelimit.Limiter
	// Concurrency is the number of places enriched in parallel.
	Concurrency int
	// JSONFile receives the merged views as a JSON array. Empty skips it.
	JSONFile string
	// MarkdownDir receives one note per place. Empty skips notes.
	MarkdownDir string
	Overwrite   bool
}

// Summary reports what an export run did.
type Summary struct {
	Places       int
	Enriched     int
	JSONWritten  bool
	NotesWritten int
	NotesSkipped int
}

// Run enriches every stored place and writes the configured outputs in
// store order. A place whose enrichment fails is exported from its stored
// record; only store, write and cancellation errors abort the run.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Store == nil {
		return nil, errors.New("export: no place store")
	}

	places, err := opts.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	views, err := enrichAll(ctx, place.NewService(opts.Store, opts.Enricher), places, opts)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Places: len(views)}
	for _, v := range views {
		if v.Enriched {
			summary.Enriched++
		}
	}
	slog.Info("Enriched places", "total", summary.Places, "enriched", summary.Enriched)

	if opts.JSONFile != "" {
		written, err := fileutil.WriteJSONFile(views, opts.JSONFile, opts.Overwrite)
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", opts.JSONFile, err)
		}
		summary.JSONWritten = written
	}

	if opts.MarkdownDir != "" {
		written, skipped, err := writeNotes(views, opts.MarkdownDir, opts.Overwrite)
		if err != nil {
			return nil, err
		}
		summary.NotesWritten = written
		summary.NotesSkipped = skipped
	}

	return summary, nil
}

func enrichAll(ctx context.Context, service *place.Service, places []*place.Place, opts Options) ([]*place.View, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	views := make([]*place.View, len(places))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, p := range places {
		eg.Go(func() error {
			if opts.Limiter != nil {
				if err := opts.Limiter.Wait(egCtx); err != nil {
					return err
				}
			}
			views[i] = service.View(egCtx, p)
			slog.Debug("Exported place", "name", p.Name, "enriched", views[i].Enriched)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("export cancelled: %w", err)
	}
	return views, nil
}
