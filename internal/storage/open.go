package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/roomfinder/roomfinder-api/internal/config"
)

// Open builds the object store selected by STORAGE_DRIVER. The returned close
// function releases any client the store holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (ObjectStore, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Println("Using in-memory object store, uploads are lost on restart")
		return NewMemoryStore(cfg.PublicBaseURL), func() {}, nil

	case config.StorageDisk:
		store, err := NewDiskStore(cfg.StorageDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.StorageGridFS:
		store, err := NewGridFSStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				log.Printf("Failed to close GridFS store: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
}
