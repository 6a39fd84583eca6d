// Package pipeline runs the end-to-end publish of one scheduled episode:
// select the row due today, fetch its source files, render the video,
// upload both artifacts, insert the feed item, and mark the row done.
//
// The run is strictly sequential and single-episode. Every failure
// aborts before the processed-flag commit, so a failed run is retriable
// by simply invoking the process again.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	shared "github.com/deepdivedevotions/publisher/pkg"
	"github.com/deepdivedevotions/publisher/pkg/artifacts"
	"github.com/deepdivedevotions/publisher/pkg/bootstrap"
	"github.com/deepdivedevotions/publisher/pkg/feed"
	"github.com/deepdivedevotions/publisher/pkg/infrastructure/storage"
	"github.com/deepdivedevotions/publisher/pkg/publishing"
	"github.com/deepdivedevotions/publisher/pkg/schedule"
)

const dateLayout = "2006-01-02"

// FeedMirror pushes a copy of the feed document somewhere secondary.
// Mirror failures never fail the run.
type FeedMirror interface {
	PutFile(ctx context.Context, path string, content []byte, message string) error
}

// Pipeline wires the collaborators for one publish run.
type Pipeline struct {
	Sheets   shared.SheetValues
	Files    shared.FileStore
	Store    shared.BlobStore
	Renderer shared.Renderer
	// Mirror is optional; nil disables mirroring.
	Mirror FeedMirror
	Config *bootstrap.Config
	Logger *slog.Logger
	// Now is injectable for deterministic runs; defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a finished run.
type Result struct {
	// Skipped means no row was scheduled for the target date. That is
	// the expected steady state, not an error.
	Skipped   bool
	Title     string
	RowNumber int
	AudioURL  string
	VideoURL  string
}

// Run executes the pipeline once.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	target, err := p.targetDate(now)
	if err != nil {
		return nil, err
	}
	dateStr := target.Format(dateLayout)

	// --- Row selection ---
	logger := p.Logger.With("component", "schedule")
	readRange := fmt.Sprintf("'%s'!A1:Z", p.Config.SheetName)
	table, err := p.Sheets.ReadRange(ctx, p.Config.SpreadsheetID, readRange)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	if len(table) == 0 {
		logger.Info("Schedule sheet is empty", "date", dateStr)
		return &Result{Skipped: true}, nil
	}

	cols, err := schedule.ResolveColumns(table[0], schedule.DefaultRoleCandidates)
	if err != nil {
		return nil, err
	}
	row, err := schedule.SelectRow(table, cols, target)
	if err != nil {
		return nil, err
	}
	if row == nil {
		logger.Info("No episode scheduled", "date", dateStr)
		return &Result{Skipped: true}, nil
	}
	logger.Info("Selected schedule row",
		"row", row.Number,
		"title", row.Title,
		"file", row.FileName,
	)

	// --- Artifact fetch ---
	logger = p.Logger.With("component", "artifacts")
	fetcher := &artifacts.Fetcher{Files: p.Files, ScratchDir: p.Config.ScratchDir}
	audio, image, err := fetcher.FetchEpisode(ctx, p.Config.EpisodesFolderID, row)
	if err != nil {
		return nil, err
	}
	logger.Info("Fetched episode sources",
		"audio_bytes", audio.Size,
		"image_bytes", image.Size,
	)

	// --- Render ---
	logger = p.Logger.With("component", "render")
	videoPath := fetcher.VideoPath()
	if err := p.Renderer.Render(ctx, image.LocalPath, audio.LocalPath, videoPath); err != nil {
		return nil, err
	}
	logger.Info("Rendered episode video", "output", videoPath)

	// --- Publish ---
	logger = p.Logger.With("component", "publish")
	pub := &publishing.Publisher{Store: p.Store, Bucket: p.Config.Bucket}

	audioBlob := fmt.Sprintf("%s/%s/%s", p.Config.EpisodesPrefix, dateStr, row.FileName)
	audioAsset, err := pub.Publish(ctx, audio.LocalPath, audioBlob, audioMIME(row.FileName))
	if err != nil {
		return nil, err
	}
	logPublicizeWarning(logger, audioAsset)

	videoBlob := fmt.Sprintf("%s/%s/%s.mp4", p.Config.EpisodesPrefix, dateStr, fileStem(row.FileName))
	videoAsset, err := pub.Publish(ctx, videoPath, videoBlob, "video/mp4")
	if err != nil {
		return nil, err
	}
	logPublicizeWarning(logger, videoAsset)
	logger.Info("Published episode artifacts",
		"audio_url", audioAsset.URL,
		"video_url", videoAsset.URL,
	)

	// --- Feed merge ---
	logger = p.Logger.With("component", "feed")
	feedXML, err := p.loadFeed(ctx, logger, now())
	if err != nil {
		return nil, err
	}
	updated, err := feed.Merge(feedXML, feed.Item{
		Title:           row.Title,
		Description:     row.Description,
		GUID:            feed.GUID(p.Config.GUIDNamespace, dateStr, row.FileName),
		PubDate:         now().UTC(),
		EnclosureURL:    audioAsset.URL,
		EnclosureLength: audioAsset.Size,
		EnclosureType:   audioAsset.MIMEType,
	})
	if err != nil {
		return nil, err
	}
	if err := p.Store.Write(ctx, p.Config.Bucket, p.Config.FeedObject, []byte(updated), "application/xml"); err != nil {
		return nil, fmt.Errorf("write feed: %w", err)
	}
	if err := p.Store.SetPublic(ctx, p.Config.Bucket, p.Config.FeedObject); err != nil {
		logger.Warn("Could not make feed public", "error", err)
	}
	logger.Info("Feed updated", "object", p.Config.FeedObject)

	if p.Mirror != nil {
		message := fmt.Sprintf("Update RSS feed - %s", dateStr)
		if err := p.Mirror.PutFile(ctx, p.Config.FeedObject, []byte(updated), message); err != nil {
			logger.Warn("Feed mirror failed", "error", err)
		} else {
			logger.Info("Feed mirrored")
		}
	}

	// --- Commit ---
	// The only write that changes what a future run selects. Everything
	// before this point is safe to redo.
	logger = p.Logger.With("component", "schedule")
	if err := schedule.MarkProcessed(ctx, p.Sheets, p.Config.SpreadsheetID, p.Config.SheetName, row.Number, cols[schedule.RoleProcessed]); err != nil {
		return nil, err
	}
	logger.Info("Marked row processed", "row", row.Number)

	return &Result{
		Title:     row.Title,
		RowNumber: row.Number,
		AudioURL:  audioAsset.URL,
		VideoURL:  videoAsset.URL,
	}, nil
}

// loadFeed reads the current feed document, generating a fresh channel
// when the object does not exist yet.
func (p *Pipeline) loadFeed(ctx context.Context, logger *slog.Logger, now time.Time) (string, error) {
	text, err := p.Store.ReadText(ctx, p.Config.Bucket, p.Config.FeedObject)
	if err == nil {
		return text, nil
	}
	if !storage.IsNotExist(err) {
		return "", fmt.Errorf("read feed: %w", err)
	}

	logger.Info("No feed object yet, starting a new channel", "object", p.Config.FeedObject)
	return feed.NewDocument(feed.Channel{
		Title:       p.Config.FeedTitle,
		Link:        p.Config.FeedLink,
		Description: p.Config.FeedDescription,
	}, now)
}

func (p *Pipeline) targetDate(now func() time.Time) (time.Time, error) {
	if p.Config.PublishDate == "" {
		return now(), nil
	}
	target, err := time.Parse(dateLayout, p.Config.PublishDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse publish date override %q: %w", p.Config.PublishDate, err)
	}
	return target, nil
}

func logPublicizeWarning(logger *slog.Logger, asset *publishing.Asset) {
	if asset.PublicizeErr != nil {
		logger.Warn("Could not make object public", "blob", asset.BlobPath, "error", asset.PublicizeErr)
	}
}

func fileStem(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

func audioMIME(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	default:
		// m4a and mp4 containers both ship as audio/mp4.
		return "audio/mp4"
	}
}
