// Command publish runs one daily publish cycle: it selects the schedule
// row due today, renders and uploads the episode artifacts, updates the
// RSS feed, and marks the row processed. It is designed to be invoked by
// an external scheduler exactly once per day; overlapping invocations
// are the scheduler's problem, not ours.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/deepdivedevotions/publisher/pkg/bootstrap"
	"github.com/deepdivedevotions/publisher/pkg/infrastructure/sentry"
	"github.com/deepdivedevotions/publisher/pkg/integrations/github"
	"github.com/deepdivedevotions/publisher/pkg/pipeline"
	"github.com/deepdivedevotions/publisher/pkg/video"
)

func main() {
	dateFlag := flag.String("date", "", "Publish date override (YYYY-MM-DD); defaults to today")
	flag.Parse()

	logger := bootstrap.NewLogger("publish").With("run_id", uuid.NewString())

	cfg := bootstrap.LoadConfig()
	if *dateFlag != "" {
		cfg.PublishDate = *dateFlag
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := sentry.Init(sentry.Config{
		DSN:        cfg.SentryDSN,
		ServerName: "publish",
	}, logger); err != nil {
		logger.Error("Sentry init failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		fail(logger, err)
	}

	p := &pipeline.Pipeline{
		Sheets:   svc.Sheets,
		Files:    svc.Files,
		Store:    svc.Store,
		Renderer: video.NewFFmpeg(video.WithBinary(cfg.FFmpegBinary)),
		Config:   cfg,
		Logger:   logger,
	}
	if cfg.MirrorEnabled() {
		p.Mirror = github.NewClient(ctx, cfg.GitHubToken, cfg.GitHubRepo)
	}

	result, err := p.Run(ctx)
	if err != nil {
		fail(logger, err)
	}

	if result.Skipped {
		fmt.Println("No episode scheduled for today.")
		return
	}
	fmt.Printf("Published %q\n  audio: %s\n  video: %s\n", result.Title, result.AudioURL, result.VideoURL)
}

func fail(logger *slog.Logger, err error) {
	logger.Error("Publish run failed", "error", err)
	sentry.CaptureException(err, nil, nil)
	sentry.Flush(2 * time.Second)
	os.Exit(1)
}
