package storage

import (
	"context"
	"time"
)

// ObjectInfo is the metadata returned by an existence check.
type ObjectInfo struct {
	Size        int64
	ContentType string
	Updated     time.Time
}

// ObjectStore is the durable store holding document bytes. The
// pipeline only ever checks existence; bytes are referenced by
// location and read by the OCR service, never by this core.
type ObjectStore interface {
	Head(ctx context.Context, container, objectPath string) (ObjectInfo, error)
}
