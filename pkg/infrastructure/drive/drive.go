// Package drive adapts the Google Drive API to the find/download surface
// the artifact fetcher needs.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/drive/v3"
)

// DriveAdapter provides file lookup and download using the Drive API.
type DriveAdapter struct {
	Service *drive.Service
}

// ErrNotFound is returned by FindInFolder when no file matches.
type ErrNotFound struct {
	Name     string
	FolderID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("drive file not found: %q in folder %s", e.Name, e.FolderID)
}

// FindInFolder resolves a file name to its ID within one parent folder.
// The query is an exact name match excluding trashed files. If several
// files share the name the first match wins.
func (a *DriveAdapter) FindInFolder(ctx context.Context, folderID, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQueryValue(name), folderID)

	list, err := a.Service.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive list: %w", err)
	}
	if len(list.Files) == 0 {
		return "", &ErrNotFound{Name: name, FolderID: folderID}
	}
	return list.Files[0].Id, nil
}

// Download streams the file content to destPath, truncating any existing
// file, and returns the number of bytes written. destPath must not be
// trusted after an error.
func (a *DriveAdapter) Download(ctx context.Context, fileID, destPath string) (int64, error) {
	resp, err := a.Service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return 0, fmt.Errorf("drive get media %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", destPath, err)
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download %s: %w", fileID, err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("close %s: %w", destPath, err)
	}
	return n, nil
}

func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
