package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/medintake/internal/entity"
)

// SQLiteStore persists document records in a local SQLite database.
// The full record is stored as JSON alongside a few queryable columns;
// (document_id, ts) is the primary key and Put upserts on it.
type SQLiteStore struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

func NewSQLiteStore(ctx context.Context, path, table string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if table == "" {
		table = "document_records"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db, table: table, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("store.sqlite.open", "path", path, "table", table)
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		document_id           TEXT NOT NULL,
		ts                    TEXT NOT NULL,
		status                TEXT NOT NULL,
		object_path           TEXT NOT NULL,
		document_category     TEXT NOT NULL,
		extraction_status     TEXT,
		classification_status TEXT,
		extracted_text_length INTEGER NOT NULL DEFAULT 0,
		completed_at          TEXT,
		record                TEXT NOT NULL,
		PRIMARY KEY (document_id, ts)
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate %s: %w", s.table, err)
	}
	return nil
}

func (s *SQLiteStore) Put(ctx context.Context, rec *entity.DocumentRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	var completedAt any
	if rec.CompletedAt != nil {
		completedAt = rec.CompletedAt.UTC().Format(time.RFC3339Nano)
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (
		document_id, ts, status, object_path, document_category,
		extraction_status, classification_status, extracted_text_length,
		completed_at, record
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (document_id, ts) DO UPDATE SET
		status = excluded.status,
		extraction_status = excluded.extraction_status,
		classification_status = excluded.classification_status,
		extracted_text_length = excluded.extracted_text_length,
		completed_at = excluded.completed_at,
		record = excluded.record`, s.table)

	_, err = s.db.ExecContext(ctx, stmt,
		rec.DocumentID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		string(rec.Status),
		rec.ObjectPath,
		string(rec.DocumentCategory),
		string(rec.ExtractionStatus),
		string(rec.ClassificationStatus),
		rec.ExtractedTextLength,
		completedAt,
		string(blob),
	)
	if err != nil {
		return fmt.Errorf("put record %s: %w", rec.DocumentID, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]entity.DocumentRecord, error) {
	stmt := fmt.Sprintf(`SELECT record FROM %s ORDER BY ts, document_id`, s.table)
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []entity.DocumentRecord
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec entity.DocumentRecord
		if err := json.Unmarshal([]byte(blob), &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
