package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// StorageAdapter provides blob storage operations using Google Cloud Storage
type StorageAdapter struct {
	Client *storage.Client
}

// ErrObjectNotExist reports that the requested object does not exist.
var ErrObjectNotExist = storage.ErrObjectNotExist

func (a *StorageAdapter) Write(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	wc := a.Client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

// SetPublic grants allUsers read access to the object. Buckets with uniform
// bucket-level access reject per-object ACLs; callers log and continue.
func (a *StorageAdapter) SetPublic(ctx context.Context, bucketName, objectName string) error {
	acl := a.Client.Bucket(bucketName).Object(objectName).ACL()
	if err := acl.Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return fmt.Errorf("set public %s/%s: %w", bucketName, objectName, err)
	}
	return nil
}

func (a *StorageAdapter) ReadText(ctx context.Context, bucketName, objectName string) (string, error) {
	rc, err := a.Client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsNotExist reports whether err means the object was absent.
func IsNotExist(err error) bool {
	return errors.Is(err, storage.ErrObjectNotExist)
}
