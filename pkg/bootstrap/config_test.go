package bootstrap

import (
	"errors"
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("EPISODES_FOLDER_ID", "folder-456")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := LoadConfig()

	if cfg.SheetName != "Main Schedule" {
		t.Errorf("SheetName = %q", cfg.SheetName)
	}
	if cfg.Bucket != "deep-dive-podcast-assets" {
		t.Errorf("Bucket = %q", cfg.Bucket)
	}
	if cfg.FeedObject != "rss.xml" {
		t.Errorf("FeedObject = %q", cfg.FeedObject)
	}
	if cfg.EpisodesPrefix != "episodes" {
		t.Errorf("EpisodesPrefix = %q", cfg.EpisodesPrefix)
	}
	if cfg.GUIDNamespace != "deepdive" {
		t.Errorf("GUIDNamespace = %q", cfg.GUIDNamespace)
	}
	if cfg.FFmpegBinary != "ffmpeg" {
		t.Errorf("FFmpegBinary = %q", cfg.FFmpegBinary)
	}
	if cfg.PublishDate != "" {
		t.Errorf("PublishDate should default to empty, got %q", cfg.PublishDate)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHEET_NAME", "Backlog")
	t.Setenv("BUCKET_NAME", "other-bucket")
	t.Setenv("PUBLISH_DATE", "2024-03-01")

	cfg := LoadConfig()

	if cfg.SheetName != "Backlog" {
		t.Errorf("SheetName = %q", cfg.SheetName)
	}
	if cfg.Bucket != "other-bucket" {
		t.Errorf("Bucket = %q", cfg.Bucket)
	}
	if cfg.PublishDate != "2024-03-01" {
		t.Errorf("PublishDate = %q", cfg.PublishDate)
	}
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)
	if err := LoadConfig().Validate(); err != nil {
		t.Fatalf("Validate() with required env: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "")
	t.Setenv("EPISODES_FOLDER_ID", "folder-456")

	err := LoadConfig().Validate()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if len(cfgErr.Missing) != 1 || cfgErr.Missing[0] != "SPREADSHEET_ID" {
		t.Errorf("Missing = %v", cfgErr.Missing)
	}
	if !strings.Contains(err.Error(), "SPREADSHEET_ID") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestMirrorEnabled(t *testing.T) {
	tests := []struct {
		name  string
		token string
		repo  string
		want  bool
	}{
		{"Both set", "tok", "owner/repo", true},
		{"Token only", "tok", "", false},
		{"Repo only", "", "owner/repo", false},
		{"Neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{GitHubToken: tt.token, GitHubRepo: tt.repo}
			if got := cfg.MirrorEnabled(); got != tt.want {
				t.Errorf("MirrorEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
