package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/cityguide/internal/place"
	"github.com/spf13/viper"
)

// PlacesCmd represents the places command and its subcommands
type PlacesCmd struct {
	Import PlacesImportCmd `cmd:"" help:"Import places from a YAML seed file"`
	List   PlacesListCmd   `cmd:"" help:"List stored places"`
	Show   PlacesShowCmd   `cmd:"" help:"Show a place merged with its Wikipedia data"`
	Delete PlacesDeleteCmd `cmd:"" help:"Delete a stored place"`
}

// PlacesImportCmd represents the places import command
type PlacesImportCmd struct {
	Input string `short:"f" help:"Path to YAML seed file"`
}

// PlacesListCmd represents the places list command
type PlacesListCmd struct{}

// PlacesShowCmd represents the places show command
type PlacesShowCmd struct {
	ID string `arg:"" help:"Place id"`
}

// PlacesDeleteCmd represents the places delete command
type PlacesDeleteCmd struct {
	ID string `arg:"" help:"Place id"`
}

func (c *PlacesImportCmd) Run(ctx context.Context) error {
	// Read from config if value not provided via flag
	input := c.Input
	if input == "" {
		input = viper.GetString("places.seedfile")
	}

	// Check if required value is still missing
	if input == "" {
		return fmt.Errorf("input YAML file is required (provide via --input flag or places.seedfile in config)")
	}

	places, err := place.LoadFile(input)
	if err != nil {
		return err
	}

	return withStore(func(store *place.Store) error {
		if err := store.SaveAll(ctx, places); err != nil {
			return fmt.Errorf("failed to import %s: %w", input, err)
		}
		slog.Info("Imported places", "file", input, "count", len(places), "database", store.Path())
		return nil
	})
}

func (c *PlacesListCmd) Run(ctx context.Context) error {
	return withStore(func(store *place.Store) error {
		places, err := store.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(places)
	})
}

func (c *PlacesShowCmd) Run(ctx context.Context) error {
	return withStore(func(store *place.Store) error {
		view, err := place.NewService(store, newEnricher()).Detail(ctx, c.ID)
		if err != nil {
			return err
		}
		return printJSON(view)
	})
}

func (c *PlacesDeleteCmd) Run(ctx context.Context) error {
	return withStore(func(store *place.Store) error {
		if err := store.Delete(ctx, c.ID); err != nil {
			return err
		}
		slog.Info("Deleted place", "id", c.ID)
		return nil
	})
}
