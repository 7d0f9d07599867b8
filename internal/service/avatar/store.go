package avatar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const (
	objectPrefix = "avatars/"
	cacheControl = "public, max-age=86400"
)

// ErrForeignRef is returned when deleting a reference that does not point into the bucket.
var ErrForeignRef = errors.New("avatar reference outside bucket")

// Store persists avatar bytes and returns a public reference.
type Store interface {
	Put(ctx context.Context, userID string, img Image) (string, error)
	Delete(ctx context.Context, ref string) error
}

// GCSStore writes avatars to a Cloud Storage bucket.
type GCSStore struct {
	bucket  *storage.BucketHandle
	name    string
	baseURL string
}

// NewGCSStore creates a store for bucket. baseURL is the public endpoint the references
// are built from, e.g. https://storage.googleapis.com.
func NewGCSStore(bucket *storage.BucketHandle, bucketName, baseURL string) *GCSStore {
	return &GCSStore{bucket: bucket, name: bucketName, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *GCSStore) refPrefix() string {
	return s.baseURL + "/" + s.name + "/"
}

// Put uploads img under avatars/{userID}/ with a random object name.
func (s *GCSStore) Put(ctx context.Context, userID string, img Image) (string, error) {
	object := objectPrefix + userID + "/" + uuid.NewString() + img.Extension()

	w := s.bucket.Object(object).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = img.ContentType
	w.CacheControl = cacheControl
	if _, err := w.Write(img.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write avatar: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return s.refPrefix() + object, nil
}

// Delete removes the object behind ref. Missing objects are not an error.
func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	object, ok := strings.CutPrefix(ref, s.refPrefix())
	if !ok || !strings.HasPrefix(object, objectPrefix) {
		return ErrForeignRef
	}
	err := s.bucket.Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

// Compile-time interface check
var _ Store = (*GCSStore)(nil)
