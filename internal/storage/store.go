// Package storage holds the object store used for listing and helper images and
// the resolver that turns stored image references into public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

// Named buckets
const (
	BucketPropertyImages = "property-images"
	BucketHelperImages   = "helper-images"
)

// PublicPathPrefix is where the HTTP layer serves public objects.
const PublicPathPrefix = "/storage/v1/object/public"

var (
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrExists is returned by Upload without upsert when the path is taken.
	ErrExists = errors.New("object already exists")
	// ErrUnknownBucket is returned for bucket names outside the known set.
	ErrUnknownBucket = errors.New("unknown bucket")
	// ErrInvalidPath is returned for empty or escaping object paths.
	ErrInvalidPath = errors.New("invalid object path")
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// ObjectStore is a bucketed file store with public URL resolution.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader, contentType string, upsert bool) error
	Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, ObjectInfo, error)
	PublicURL(bucket, objectPath string) (string, error)
	Ping(ctx context.Context) error
}

// KnownBucket reports whether name is one of the configured buckets.
func KnownBucket(name string) bool {
	return name == BucketPropertyImages || name == BucketHelperImages
}

// CleanPath validates bucket and object path and returns the cleaned path.
func CleanPath(bucket, objectPath string) (string, error) {
	if !KnownBucket(bucket) {
		return "", fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	p := strings.TrimPrefix(strings.TrimSpace(objectPath), "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	return cleaned, nil
}

// publicURL builds the public URL served by the HTTP layer.
func publicURL(baseURL, bucket, objectPath string) (string, error) {
	p, err := CleanPath(bucket, objectPath)
	if err != nil {
		return "", err
	}
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimSuffix(baseURL, "/") + PublicPathPrefix + "/" + bucket + "/" + strings.Join(segments, "/"), nil
}
