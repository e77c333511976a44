package repository

import (
	"context"

	"github.com/joseph-ayodele/medintake/internal/entity"
)

// RecordStore is the persistence surface the orchestrator depends on.
// Put is an idempotent upsert keyed by (DocumentID, Timestamp): the
// initial and final writes of a run share the key, so the final
// version replaces the initial one in place.
type RecordStore interface {
	Put(ctx context.Context, rec *entity.DocumentRecord) error
}

// RecordLister is the read surface used by exports only; the core
// pipeline never queries.
type RecordLister interface {
	List(ctx context.Context) ([]entity.DocumentRecord, error)
}
