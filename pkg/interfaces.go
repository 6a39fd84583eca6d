package shared

import (
	"context"
)

// --- Spreadsheet Interfaces ---

// SheetValues reads and writes cell ranges on a spreadsheet.
type SheetValues interface {
	// ReadRange returns the rows in the given A1-notation range.
	// Trailing empty cells may be omitted by the backing service.
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	// WriteRange overwrites the given A1-notation range with rows.
	WriteRange(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error
}

// --- File Storage Interfaces ---

// FileStore locates and downloads files from a cloud drive.
type FileStore interface {
	// FindInFolder resolves a file name to a file ID within one folder.
	// Exact name match, trashed files excluded, first match wins.
	FindInFolder(ctx context.Context, folderID, name string) (string, error)
	// Download streams the file's content to destPath, overwriting any
	// existing file, and returns the number of bytes written.
	Download(ctx context.Context, fileID, destPath string) (int64, error)
}

// --- Blob Storage Interfaces ---

// BlobStore provides blob storage operations.
type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte, contentType string) error
	// SetPublic marks the object publicly readable. Callers treat a
	// failure as a warning, not a pipeline error.
	SetPublic(ctx context.Context, bucket, object string) error
	ReadText(ctx context.Context, bucket, object string) (string, error)
}

// --- Encoder Interfaces ---

// Renderer turns a still image plus an audio track into a video file.
type Renderer interface {
	Render(ctx context.Context, imagePath, audioPath, outputPath string) error
}
