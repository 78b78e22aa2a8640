package cmd

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/cityguide/internal/config"
	"github.com/lepinkainen/cityguide/internal/place"
	"github.com/lepinkainen/cityguide/internal/wikipedia"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

var (
	output    io.Writer = os.Stdout
	openStore           = place.NewStore
	// newEnricher builds the Wikipedia client from the loaded configuration.
	newEnricher = func() place.Enricher { return newWikipediaClient() }
)

// CLI represents the complete command structure for the cityguide application
type CLI struct {
	// Global flags
	Debug     bool   `help:"Enable debug logging"`
	Overwrite bool   `help:"Overwrite existing export files"`
	Database  string `short:"d" help:"Path to the places SQLite database (defaults to database.file in config)"`

	Enrich EnrichCmd `cmd:"" help:"Fetch Wikipedia enrichment for a subject and print it as JSON"`
	Places PlacesCmd `cmd:"" help:"Manage stored places"`
	Export ExportCmd `cmd:"" help:"Export every place merged with Wikipedia data"`
	Serve  ServeCmd  `cmd:"" help:"Serve the read-only places API"`
}

// EnrichCmd represents the enrich command
type EnrichCmd struct {
	Subject string `arg:"" help:"Page title or subject to look up"`
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(&cli,
		kong.Name("cityguide"),
		kong.Description("Stores city places and enriches them with Wikipedia data."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	initLogging(level)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	if err := kctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// CITYGUIDE_EXPORT_CONCURRENCY overrides export.concurrency
	viper.SetEnvPrefix("CITYGUIDE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stdErrors.As(err, &notFound) {
			return err
		}
		slog.Debug("Config file not found, using defaults")
	}

	// Initialize global config
	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	// A false flag leaves the configured value alone
	if cli.Overwrite {
		config.SetOverwriteFiles(true)
	}
	config.SetDatabaseFile(cli.Database)
}

func initLogging(level slog.Level) {
	// Logs go to stderr so JSON output on stdout stays pipeable
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

func newWikipediaClient() *wikipedia.Client {
	return wikipedia.NewClient(
		wikipedia.WithBaseURL(config.WikipediaAPIURL),
		wikipedia.WithWikiBaseURL(config.WikipediaWikiURL),
		wikipedia.WithTimeout(config.WikipediaTimeout),
		wikipedia.WithUserAgent(config.WikipediaUserAgent),
	)
}

func withStore(fn func(*place.Store) error) (err error) {
	store, err := openStore(config.DatabaseFile)
	if err != nil {
		return err
	}
	defer func() {
		err = stdErrors.Join(err, store.Close())
	}()

	return fn(store)
}

func printJSON(v any) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Run methods for each command

func (e *EnrichCmd) Run(ctx context.Context) error {
	enrichment := newEnricher().Enrich(ctx, e.Subject)
	if enrichment == nil {
		return fmt.Errorf("no enrichment available for %q", e.Subject)
	}
	return printJSON(enrichment)
}
