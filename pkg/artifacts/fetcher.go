// Package artifacts pulls a scheduled episode's source files out of the
// drive folder into local scratch storage.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	shared "github.com/deepdivedevotions/publisher/pkg"
	"github.com/deepdivedevotions/publisher/pkg/schedule"
)

// Artifact is one downloaded file in scratch storage. Scratch files are
// discarded at process exit; nothing here is durable.
type Artifact struct {
	RemoteID  string
	LocalPath string
	Size      int64
}

// TransferError reports a failed download. A partially written local file
// must not be trusted after this error.
type TransferError struct {
	RemoteID string
	Path     string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s to %s: %v", e.RemoteID, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Fetcher downloads episode source files into a scratch directory,
// overwriting leftovers from earlier runs at the same fixed paths.
type Fetcher struct {
	Files      shared.FileStore
	ScratchDir string
}

// FetchEpisode resolves the row's audio file by name within the episodes
// folder and downloads it together with the cover image, which the row
// references by ID directly.
func (f *Fetcher) FetchEpisode(ctx context.Context, folderID string, row *schedule.Row) (audio, image *Artifact, err error) {
	if err := os.MkdirAll(f.ScratchDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("scratch dir %s: %w", f.ScratchDir, err)
	}

	audioID, err := f.Files.FindInFolder(ctx, folderID, row.FileName)
	if err != nil {
		return nil, nil, err
	}

	audio, err = f.fetch(ctx, audioID, "audio"+audioExt(row.FileName))
	if err != nil {
		return nil, nil, err
	}
	image, err = f.fetch(ctx, row.ImageFileID, "image.png")
	if err != nil {
		return nil, nil, err
	}
	return audio, image, nil
}

// VideoPath is the fixed scratch location the renderer writes to.
func (f *Fetcher) VideoPath() string {
	return filepath.Join(f.ScratchDir, "output.mp4")
}

func (f *Fetcher) fetch(ctx context.Context, fileID, localName string) (*Artifact, error) {
	dest := filepath.Join(f.ScratchDir, localName)
	size, err := f.Files.Download(ctx, fileID, dest)
	if err != nil {
		return nil, &TransferError{RemoteID: fileID, Path: dest, Err: err}
	}
	return &Artifact{RemoteID: fileID, LocalPath: dest, Size: size}, nil
}

func audioExt(fileName string) string {
	if ext := filepath.Ext(fileName); ext != "" {
		return ext
	}
	return ".m4a"
}
