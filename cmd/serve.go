package cmd

import (
	"context"

	"github.com/lepinkainen/cityguide/internal/config"
	"github.com/lepinkainen/cityguide/internal/place"
	"github.com/lepinkainen/cityguide/internal/server"
)

// ServeCmd represents the serve command
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to server.addr in config)"`
}

func (s *ServeCmd) Run(ctx context.Context) error {
	addr := firstNonEmpty(s.Addr, config.ServerAddr)

	return withStore(func(store *place.Store) error {
		return server.New(place.NewService(store, newEnricher())).Run(ctx, addr)
	})
}
