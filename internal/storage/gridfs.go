package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore keeps each named bucket in its own GridFS bucket. Object paths are
// stored as GridFS filenames.
type GridFSStore struct {
	BaseURL string

	client *mongo.Client
	db     *mongo.Database
}

// NewGridFSStore connects to MongoDB and returns a store on database dbName.
func NewGridFSStore(ctx context.Context, uri, dbName, baseURL string) (*GridFSStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Printf("Connected to GridFS object store: %s", dbName)

	return &GridFSStore{BaseURL: baseURL, client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the underlying client.
func (s *GridFSStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *GridFSStore) bucket(ctx context.Context, name string) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = b.SetReadDeadline(deadline)
		_ = b.SetWriteDeadline(deadline)
	}
	return b, nil
}

type gridfsFile struct {
	ID any `bson:"_id"`
}

func (s *GridFSStore) revisions(ctx context.Context, b *gridfs.Bucket, filename string) ([]gridfsFile, error) {
	cursor, err := b.Find(bson.M{"filename": filename})
	if err != nil {
		return nil, err
	}
	var files []gridfsFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *GridFSStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, contentType string, upsert bool) error {
	p, err := CleanPath(bucket, objectPath)
	if err != nil {
		return err
	}
	b, err := s.bucket(ctx, bucket)
	if err != nil {
		return err
	}

	existing, err := s.revisions(ctx, b, p)
	if err != nil {
		return fmt.Errorf("failed to look up %s/%s: %w", bucket, p, err)
	}
	if len(existing) > 0 && !upsert {
		return fmt.Errorf("%w: %s/%s", ErrExists, bucket, p)
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if _, err := b.UploadFromStream(p, r, opts); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, p, err)
	}

	// Older revisions go once the new one is in place.
	for _, f := range existing {
		if err := b.Delete(f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			log.Printf("Failed to remove old revision of %s/%s: %v", bucket, p, err)
		}
	}
	return nil
}

func (s *GridFSStore) Open(ctx context.Context, bucket, objectPath string) (io.ReadCloser, ObjectInfo, error) {
	p, err := CleanPath(bucket, objectPath)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	b, err := s.bucket(ctx, bucket)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	stream, err := b.OpenDownloadStreamByName(p)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, err
	}

	info := ObjectInfo{}
	if f := stream.GetFile(); f != nil {
		info.Size = f.Length
		info.UpdatedAt = f.UploadDate
		if len(f.Metadata) > 0 {
			if ct, ok := f.Metadata.Lookup("contentType").StringValueOK(); ok {
				info.ContentType = ct
			}
		}
	}
	return stream, info, nil
}

func (s *GridFSStore) PublicURL(bucket, objectPath string) (string, error) {
	return publicURL(s.BaseURL, bucket, objectPath)
}

func (s *GridFSStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
