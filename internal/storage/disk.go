package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// DiskStore keeps each bucket in a directory under Root.
type DiskStore struct {
	Root    string
	BaseURL string
}

// NewDiskStore creates the bucket directories under root.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	for _, bucket := range []string{BucketPropertyImages, BucketHelperImages} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket directory %s: %w", bucket, err)
		}
	}
	return &DiskStore{Root: root, BaseURL: baseURL}, nil
}

func (s *DiskStore) filename(bucket, objectPath string) (string, error) {
	p, err := CleanPath(bucket, objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Root, bucket, filepath.FromSlash(p)), nil
}

func (s *DiskStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, contentType string, upsert bool) error {
	name, err := s.filename(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !upsert {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s/%s", ErrExists, bucket, objectPath)
		}
		return fmt.Errorf("failed to open object file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	return f.Close()
}

func (s *DiskStore) Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, ObjectInfo, error) {
	name, err := s.filename(bucket, objectPath)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ObjectInfo{}, ErrNotFound
	}
	return f, ObjectInfo{
		Size:        st.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		UpdatedAt:   st.ModTime().UTC(),
	}, nil
}

func (s *DiskStore) PublicURL(bucket, objectPath string) (string, error) {
	return publicURL(s.BaseURL, bucket, objectPath)
}

func (s *DiskStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.Root)
	return err
}
