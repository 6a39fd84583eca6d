// Package publishing uploads run artifacts to durable object storage and
// derives their public URLs.
package publishing

import (
	"context"
	"fmt"
	"os"

	shared "github.com/deepdivedevotions/publisher/pkg"
)

// Asset is one uploaded artifact. Immutable once created. PublicizeErr
// carries the best-effort make-public outcome; callers log it as a
// warning because the object is durably stored either way.
type Asset struct {
	URL          string
	BlobPath     string
	MIMEType     string
	Size         int64
	PublicizeErr error
}

// UploadError reports a failed blob write.
type UploadError struct {
	BlobPath string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.BlobPath, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Publisher writes artifacts into one bucket.
type Publisher struct {
	Store  shared.BlobStore
	Bucket string
}

// Publish uploads the local file to blobPath and attempts to make it
// publicly readable. The reported size comes from the local file; the
// upload already guarantees the remote bytes match, so no second round
// trip is made.
func (p *Publisher) Publish(ctx context.Context, localPath, blobPath, mimeType string) (*Asset, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, &UploadError{BlobPath: blobPath, Err: err}
	}
	if err := p.Store.Write(ctx, p.Bucket, blobPath, data, mimeType); err != nil {
		return nil, &UploadError{BlobPath: blobPath, Err: err}
	}

	asset := &Asset{
		URL:      PublicURL(p.Bucket, blobPath),
		BlobPath: blobPath,
		MIMEType: mimeType,
		Size:     int64(len(data)),
	}
	asset.PublicizeErr = p.Store.SetPublic(ctx, p.Bucket, blobPath)
	return asset, nil
}

// PublicURL is the canonical fetchable location of an object.
func PublicURL(bucket, blobPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, blobPath)
}
