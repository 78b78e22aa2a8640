package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/cityguide/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles      bool
	DatabaseFile        string
	WikipediaAPIURL     string
	WikipediaWikiURL    string
	WikipediaTimeout    time.Duration
	WikipediaUserAgent  string
	ServerAddr          string
	ExportRatePerSecond int
	ExportConcurrency   int
	ExportJSONFile      string
	ExportMarkdownDir   string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles:      config.OverwriteFiles,
		DatabaseFile:        config.DatabaseFile,
		WikipediaAPIURL:     config.WikipediaAPIURL,
		WikipediaWikiURL:    config.WikipediaWikiURL,
		WikipediaTimeout:    config.WikipediaTimeout,
		WikipediaUserAgent:  config.WikipediaUserAgent,
		ServerAddr:          config.ServerAddr,
		ExportRatePerSecond: config.ExportRatePerSecond,
		ExportConcurrency:   config.ExportConcurrency,
		ExportJSONFile:      config.ExportJSONFile,
		ExportMarkdownDir:   config.ExportMarkdownDir,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.DatabaseFile = state.DatabaseFile
	config.WikipediaAPIURL = state.WikipediaAPIURL
	config.WikipediaWikiURL = state.WikipediaWikiURL
	config.WikipediaTimeout = state.WikipediaTimeout
	config.WikipediaUserAgent = state.WikipediaUserAgent
	config.ServerAddr = state.ServerAddr
	config.ExportRatePerSecond = state.ExportRatePerSecond
	config.ExportConcurrency = state.ExportConcurrency
	config.ExportJSONFile = state.ExportJSONFile
	config.ExportMarkdownDir = state.ExportMarkdownDir
}

// ResetConfig saves the current config state, resets viper and restores
// both when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig loads the default configuration and points the database and
// export outputs into env, restoring everything when the test completes.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	ResetConfig(t)
	config.InitConfig()

	config.OverwriteFiles = true
	config.DatabaseFile = env.DatabasePath()
	config.ExportJSONFile = env.Path("export", "places.json")
	config.ExportMarkdownDir = env.Path("export", "markdown")
	config.ExportRatePerSecond = 1000
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		// viper has no Unset, so an unset key cannot be restored
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}
