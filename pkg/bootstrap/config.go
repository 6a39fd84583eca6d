package bootstrap

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the full configuration surface for a publish run.
type Config struct {
	// Schedule
	SpreadsheetID string
	SheetName     string

	// Source audio / images
	EpisodesFolderID string

	// Object storage
	Bucket         string
	FeedObject     string
	EpisodesPrefix string

	// Feed channel metadata, used when bootstrapping a fresh feed
	FeedTitle       string
	FeedLink        string
	FeedDescription string
	GUIDNamespace   string

	// Local scratch space for downloaded and rendered artifacts
	ScratchDir string

	// External encoder binary
	FFmpegBinary string

	// Optional override of "today" (YYYY-MM-DD) for deterministic runs
	PublishDate string

	// Optional GitHub mirror of the feed document
	GitHubToken string
	GitHubRepo  string

	SentryDSN string
}

// ConfigError reports required configuration that was not provided.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		SpreadsheetID:    os.Getenv("SPREADSHEET_ID"),
		SheetName:        getenv("SHEET_NAME", "Main Schedule"),
		EpisodesFolderID: os.Getenv("EPISODES_FOLDER_ID"),
		Bucket:           getenv("BUCKET_NAME", "deep-dive-podcast-assets"),
		FeedObject:       getenv("RSS_BLOB_NAME", "rss.xml"),
		EpisodesPrefix:   getenv("BUCKET_EPISODES_PREFIX", "episodes"),
		FeedTitle:        getenv("FEED_TITLE", "Deep Dive Devotions"),
		FeedLink:         getenv("FEED_LINK", "https://github.com/deepdivedevotions"),
		FeedDescription:  getenv("FEED_DESCRIPTION", "Daily devotional content"),
		GUIDNamespace:    getenv("GUID_NAMESPACE", "deepdive"),
		ScratchDir:       getenv("SCRATCH_DIR", "/tmp/deepdive"),
		FFmpegBinary:     getenv("FFMPEG_BINARY", "ffmpeg"),
		PublishDate:      os.Getenv("PUBLISH_DATE"),
		GitHubToken:      os.Getenv("GITHUB_TOKEN"),
		GitHubRepo:       os.Getenv("GITHUB_REPOSITORY"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
	}
}

// Validate checks that all required values are present. It is called once
// at process start; the pipeline assumes a validated config.
func (c *Config) Validate() error {
	var missing []string
	if c.SpreadsheetID == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}
	if c.EpisodesFolderID == "" {
		missing = append(missing, "EPISODES_FOLDER_ID")
	}
	if c.Bucket == "" {
		missing = append(missing, "BUCKET_NAME")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// MirrorEnabled reports whether the GitHub feed mirror is configured.
func (c *Config) MirrorEnabled() bool {
	return c.GitHubToken != "" && c.GitHubRepo != ""
}
