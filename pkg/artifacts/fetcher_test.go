package artifacts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deepdivedevotions/publisher/pkg/schedule"
)

type fakeFileStore struct {
	// byName maps folderID/name to a file ID.
	byName map[string]string
	// content maps file ID to the bytes Download writes.
	content     map[string][]byte
	downloadErr error
	finds       []string
	downloads   []string
}

func (f *fakeFileStore) FindInFolder(ctx context.Context, folderID, name string) (string, error) {
	f.finds = append(f.finds, folderID+"/"+name)
	id, ok := f.byName[folderID+"/"+name]
	if !ok {
		return "", errors.New("drive file not found: " + name)
	}
	return id, nil
}

func (f *fakeFileStore) Download(ctx context.Context, fileID, destPath string) (int64, error) {
	f.downloads = append(f.downloads, fileID)
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	data, ok := f.content[fileID]
	if !ok {
		return 0, errors.New("no such file: " + fileID)
	}
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func testRow() *schedule.Row {
	return &schedule.Row{
		Number:      2,
		PublishDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Title:       "Genesis 1",
		FileName:    "gen1.m4a",
		ImageFileID: "img-123",
	}
}

func TestFetchEpisode(t *testing.T) {
	files := &fakeFileStore{
		byName: map[string]string{"folder-1/gen1.m4a": "audio-456"},
		content: map[string][]byte{
			"audio-456": []byte("audio-bytes"),
			"img-123":   []byte("png-bytes"),
		},
	}
	fetcher := &Fetcher{Files: files, ScratchDir: filepath.Join(t.TempDir(), "scratch")}

	audio, image, err := fetcher.FetchEpisode(context.Background(), "folder-1", testRow())
	if err != nil {
		t.Fatalf("FetchEpisode() error: %v", err)
	}

	if audio.RemoteID != "audio-456" {
		t.Errorf("audio RemoteID = %q", audio.RemoteID)
	}
	if audio.Size != int64(len("audio-bytes")) {
		t.Errorf("audio Size = %d", audio.Size)
	}
	if filepath.Base(audio.LocalPath) != "audio.m4a" {
		t.Errorf("audio LocalPath = %q, want scratch audio.m4a", audio.LocalPath)
	}

	// The image is referenced by ID directly; no name lookup happens.
	if image.RemoteID != "img-123" {
		t.Errorf("image RemoteID = %q", image.RemoteID)
	}
	if filepath.Base(image.LocalPath) != "image.png" {
		t.Errorf("image LocalPath = %q", image.LocalPath)
	}
	if len(files.finds) != 1 {
		t.Errorf("expected one name lookup, got %v", files.finds)
	}

	for _, a := range []*Artifact{audio, image} {
		if _, err := os.Stat(a.LocalPath); err != nil {
			t.Errorf("artifact not on disk: %v", err)
		}
	}
}

func TestFetchEpisode_AudioNotFound(t *testing.T) {
	files := &fakeFileStore{byName: map[string]string{}}
	fetcher := &Fetcher{Files: files, ScratchDir: t.TempDir()}

	_, _, err := fetcher.FetchEpisode(context.Background(), "folder-1", testRow())
	if err == nil {
		t.Fatal("expected error when audio file is absent")
	}
	if len(files.downloads) != 0 {
		t.Errorf("nothing should be downloaded after a failed lookup, got %v", files.downloads)
	}
}

func TestFetchEpisode_DownloadFailureIsTransferError(t *testing.T) {
	files := &fakeFileStore{
		byName:      map[string]string{"folder-1/gen1.m4a": "audio-456"},
		downloadErr: errors.New("stream reset"),
	}
	fetcher := &Fetcher{Files: files, ScratchDir: t.TempDir()}

	_, _, err := fetcher.FetchEpisode(context.Background(), "folder-1", testRow())
	var transferErr *TransferError
	if !errors.As(err, &transferErr) {
		t.Fatalf("expected *TransferError, got %v", err)
	}
	if transferErr.RemoteID != "audio-456" {
		t.Errorf("RemoteID = %q", transferErr.RemoteID)
	}
}

func TestAudioExtFallback(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"gen1.m4a", ".m4a"},
		{"gen1.mp3", ".mp3"},
		{"gen1", ".m4a"},
	}
	for _, tt := range tests {
		if got := audioExt(tt.fileName); got != tt.want {
			t.Errorf("audioExt(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}

func TestVideoPath(t *testing.T) {
	fetcher := &Fetcher{ScratchDir: "/tmp/deepdive"}
	if got := fetcher.VideoPath(); got != "/tmp/deepdive/output.mp4" {
		t.Errorf("VideoPath() = %q", got)
	}
}
