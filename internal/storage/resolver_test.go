package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore remembers the paths it was asked to resolve.
type recordingStore struct {
	*MemoryStore
	paths []string
	err   error
	empty bool
	panic bool
}

func (s *recordingStore) PublicURL(bucket, objectPath string) (string, error) {
	s.paths = append(s.paths, objectPath)
	if s.panic {
		panic("storage client blew up")
	}
	if s.err != nil {
		return "", s.err
	}
	if s.empty {
		return "", nil
	}
	return s.MemoryStore.PublicURL(bucket, objectPath)
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: NewMemoryStore("https://cdn.example.com")}
}

func TestResolvePublicURLAbsolute(t *testing.T) {
	store := newRecordingStore()
	r := NewResolver(store)

	assert.Equal(t, "https://x/y.png", r.ResolvePublicURL("https://x/y.png", BucketHelperImages))
	assert.Equal(t, "http://x/y.png", r.ResolvePublicURL("  http://x/y.png ", BucketHelperImages))
	assert.Empty(t, store.paths, "store must not be consulted for absolute URLs")
}

func TestResolvePublicURLPlaceholder(t *testing.T) {
	store := newRecordingStore()
	r := NewResolver(store)

	assert.Equal(t, Placeholder, r.ResolvePublicURL(nil, BucketHelperImages))
	assert.Equal(t, Placeholder, r.ResolvePublicURL("", BucketHelperImages))
	assert.Equal(t, Placeholder, r.ResolvePublicURL("   ", BucketHelperImages))
	assert.Empty(t, store.paths)
}

func TestResolvePublicURLStripsLeadingSlash(t *testing.T) {
	store := newRecordingStore()
	r := NewResolver(store)

	got := r.ResolvePublicURL("/foo/bar.png", BucketPropertyImages)
	require.Equal(t, []string{"foo/bar.png"}, store.paths)
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/property-images/foo/bar.png", got)
}

func TestResolvePublicURLStoreFailures(t *testing.T) {
	failing := newRecordingStore()
	failing.err = errors.New("boom")
	assert.Equal(t, Placeholder, NewResolver(failing).ResolvePublicURL("a.png", BucketHelperImages))

	empty := newRecordingStore()
	empty.empty = true
	assert.Equal(t, Placeholder, NewResolver(empty).ResolvePublicURL("a.png", BucketHelperImages))

	panicking := newRecordingStore()
	panicking.panic = true
	assert.Equal(t, Placeholder, NewResolver(panicking).ResolvePublicURL("a.png", BucketHelperImages))

	assert.Equal(t, Placeholder, NewResolver(nil).ResolvePublicURL("a.png", BucketHelperImages))

	var nilResolver *Resolver
	assert.Equal(t, Placeholder, nilResolver.ResolvePublicURL("a.png", BucketHelperImages))
}

func TestResolvePublicURLUnknownBucket(t *testing.T) {
	r := NewResolver(NewMemoryStore("https://cdn.example.com"))
	assert.Equal(t, Placeholder, r.ResolvePublicURL("a.png", "avatars"))
}

func TestResolveAllSkipsBlanks(t *testing.T) {
	r := NewResolver(NewMemoryStore("http://localhost:3000"))
	got := r.ResolveAll([]string{"https://a/1.png", "", "p/2.png"}, BucketHelperImages)
	assert.Equal(t, []string{
		"https://a/1.png",
		"http://localhost:3000/storage/v1/object/public/helper-images/p/2.png",
	}, got)
}

func TestUploadAndResolve(t *testing.T) {
	store := NewMemoryStore("http://localhost:3000")
	r := NewResolver(store)

	u, err := r.UploadAndResolve(context.Background(), BucketPropertyImages, "abc/images-0-room 1.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/storage/v1/object/public/property-images/abc/images-0-room%201.jpg", u)

	rc, info, err := store.Open(context.Background(), BucketPropertyImages, "abc/images-0-room 1.jpg")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(body))
	assert.Equal(t, "image/jpeg", info.ContentType)
}
