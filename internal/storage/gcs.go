package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSObjectStore implements ObjectStore against Google Cloud Storage
// buckets. Head maps to an object attrs fetch; a missing object
// surfaces as an error, which the orchestrator treats as fatal to the
// run.
type GCSObjectStore struct {
	client *storage.Client
}

func NewGCSObjectStore(ctx context.Context) (*GCSObjectStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSObjectStore{client: client}, nil
}

func (s *GCSObjectStore) Head(ctx context.Context, container, objectPath string) (ObjectInfo, error) {
	attrs, err := s.client.Bucket(container).Object(objectPath).Attrs(ctx)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("head object %s/%s: %w", container, objectPath, err)
	}
	return ObjectInfo{
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Updated:     attrs.Updated,
	}, nil
}

// Close releases the underlying client.
func (s *GCSObjectStore) Close() error {
	return s.client.Close()
}
