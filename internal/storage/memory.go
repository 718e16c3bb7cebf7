package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

type memoryObject struct {
	data []byte
	info ObjectInfo
}

// MemoryStore keeps objects in process memory. Used for development and tests.
type MemoryStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, contentType string, upsert bool) error {
	p, err := CleanPath(bucket, objectPath)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	key := bucket + "/" + p
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; ok && !upsert {
		return fmt.Errorf("%w: %s", ErrExists, key)
	}
	s.objects[key] = memoryObject{
		data: data,
		info: ObjectInfo{Size: int64(len(data)), ContentType: contentType, UpdatedAt: time.Now().UTC()},
	}
	return nil
}

func (s *MemoryStore) Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, ObjectInfo, error) {
	p, err := CleanPath(bucket, objectPath)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	s.mu.RLock()
	obj, ok := s.objects[bucket+"/"+p]
	s.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (s *MemoryStore) PublicURL(bucket, objectPath string) (string, error) {
	return publicURL(s.BaseURL, bucket, objectPath)
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
