package place

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/cityguide/internal/wikipedia"
)

// Enricher looks up the Wikipedia enrichment for a subject name. It returns
// nil when no enrichment is available.
type Enricher interface {
	Enrich(ctx context.Context, subject string) *wikipedia.Enrichment
}

// Service combines the store with an Enricher.
type Service struct {
	Store    *Store
	Enricher Enricher
}

// NewService creates a new Service.
func NewService(store *Store, enricher Enricher) *Service {
	return &Service{Store: store, Enricher: enricher}
}

// Detail loads the place with the given id and merges it with its
// enrichment. Store errors (ErrInvalidID, ErrNotFound) are returned as-is;
// a missing enrichment is not an error.
func (s *Service) Detail(ctx context.Context, id string) (*View, error) {
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.View(ctx, p), nil
}

// View merges an already loaded place with its enrichment.
func (s *Service) View(ctx context.Context, p *Place) *View {
	var enrichment *wikipedia.Enrichment
	if s.Enricher != nil {
		enrichment = s.Enricher.Enrich(ctx, p.Name)
	}
	if enrichment == nil {
		slog.Debug("Serving place without enrichment", "id", p.ID, "name", p.Name)
	}
	return Merge(p, enrichment)
}
