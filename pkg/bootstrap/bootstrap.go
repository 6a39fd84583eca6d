package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	shared "github.com/deepdivedevotions/publisher/pkg"
	infradrive "github.com/deepdivedevotions/publisher/pkg/infrastructure/drive"
	infrasheets "github.com/deepdivedevotions/publisher/pkg/infrastructure/sheets"
	infrastorage "github.com/deepdivedevotions/publisher/pkg/infrastructure/storage"
)

// Service holds initialized dependencies
type Service struct {
	Sheets shared.SheetValues
	Files  shared.FileStore
	Store  shared.BlobStore
	Config *Config
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		Handler:   h.Handler.WithGroup(name),
		component: h.component,
	}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newComp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			newComp = a.Value.String()
		}
	}
	return &ComponentHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		component: newComp,
	}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false // stop
		}
		return true
	})

	if comp != "" {
		newMsg := fmt.Sprintf("[%s] %s", comp, r.Message)
		newRecord := slog.NewRecord(r.Time, r.Level, newMsg, r.PC)
		r.Attrs(func(a slog.Attr) bool {
			newRecord.AddAttrs(a)
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// NewLogger creates a configured logger instance
func NewLogger(serviceName string) *slog.Logger {
	logLevelStr := os.Getenv("LOG_LEVEL")
	var level slog.Level
	switch strings.ToLower(logLevelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := GetSlogHandlerOptions(level)
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// NewService initializes all external collaborators. Credentials come from
// Application Default Credentials; no key handling happens here.
func NewService(ctx context.Context, cfg *Config, logger *slog.Logger) (*Service, error) {
	logger.Info("Initializing service",
		"spreadsheet_id", cfg.SpreadsheetID,
		"bucket", cfg.Bucket,
	)

	sheetsSvc, err := sheets.NewService(ctx)
	if err != nil {
		logger.Error("Sheets init failed", "error", err)
		return nil, fmt.Errorf("sheets init: %w", err)
	}

	driveSvc, err := drive.NewService(ctx)
	if err != nil {
		logger.Error("Drive init failed", "error", err)
		return nil, fmt.Errorf("drive init: %w", err)
	}

	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		logger.Error("Storage init failed", "error", err)
		return nil, fmt.Errorf("storage init: %w", err)
	}

	return &Service{
		Sheets: &infrasheets.SheetsAdapter{Service: sheetsSvc},
		Files:  &infradrive.DriveAdapter{Service: driveSvc},
		Store:  &infrastorage.StorageAdapter{Client: gcsClient},
		Config: cfg,
	}, nil
}
