package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetOverwriteFiles(t *testing.T) {
	// Save the original value to restore after the test
	originalValue := OverwriteFiles
	t.Cleanup(func() { OverwriteFiles = originalValue })

	testCases := []struct {
		name     string
		input    bool
		expected bool
	}{
		{
			name:     "set to true",
			input:    true,
			expected: true,
		},
		{
			name:     "set to false",
			input:    false,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetOverwriteFiles(tc.input)
			assert.Equal(t, tc.expected, OverwriteFiles)
		})
	}
}

func TestSetDatabaseFile(t *testing.T) {
	originalValue := DatabaseFile
	t.Cleanup(func() { DatabaseFile = originalValue })

	DatabaseFile = "./cityguide.db"

	SetDatabaseFile("")
	assert.Equal(t, "./cityguide.db", DatabaseFile, "empty override keeps the configured path")

	SetDatabaseFile("/tmp/other.db")
	assert.Equal(t, "/tmp/other.db", DatabaseFile)
}

func TestInitConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.False(t, OverwriteFiles)
	assert.Equal(t, "./cityguide.db", DatabaseFile)
	assert.Equal(t, "https://en.wikipedia.org/w/api.php", WikipediaAPIURL)
	assert.Equal(t, "https://en.wikipedia.org/wiki", WikipediaWikiURL)
	assert.Equal(t, 10*time.Second, WikipediaTimeout)
	assert.NotEmpty(t, WikipediaUserAgent)
	assert.Equal(t, ":8080", ServerAddr)
	assert.Equal(t, 2, ExportRatePerSecond)
	assert.Equal(t, 4, ExportConcurrency)
	assert.Equal(t, "./export/places.json", ExportJSONFile)
	assert.Equal(t, "./export/markdown/", ExportMarkdownDir)
}

func TestInitConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("overwrite", true)
	viper.Set("database.file", "/data/places.db")
	viper.Set("wikipedia.timeout", "2500ms")
	viper.Set("export.concurrency", 16)
	viper.Set("export.json_file", "")

	InitConfig()

	assert.True(t, OverwriteFiles)
	assert.Equal(t, "/data/places.db", DatabaseFile)
	assert.Equal(t, 2500*time.Millisecond, WikipediaTimeout)
	assert.Equal(t, 16, ExportConcurrency)
	assert.Empty(t, ExportJSONFile)
}
