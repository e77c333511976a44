package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/medintake/internal/entity"
)

// PostgresStore persists document records in Postgres via a pgx pool.
// Same shape as the SQLite backend: JSONB blob plus queryable columns,
// upsert on (document_id, ts).
type PostgresStore struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

func NewPostgresStore(ctx context.Context, dsn, table string, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if table == "" {
		table = "document_records"
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "medintake"

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &PostgresStore{pool: pool, table: table, logger: logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("store.postgres.open", "table", table)
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		document_id           TEXT NOT NULL,
		ts                    TIMESTAMPTZ NOT NULL,
		status                TEXT NOT NULL,
		object_path           TEXT NOT NULL,
		document_category     TEXT NOT NULL,
		extraction_status     TEXT,
		classification_status TEXT,
		extracted_text_length BIGINT NOT NULL DEFAULT 0,
		completed_at          TIMESTAMPTZ,
		record                JSONB NOT NULL,
		PRIMARY KEY (document_id, ts)
	)`, s.table)
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, rec *entity.DocumentRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (
		document_id, ts, status, object_path, document_category,
		extraction_status, classification_status, extracted_text_length,
		completed_at, record
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (document_id, ts) DO UPDATE SET
		status = excluded.status,
		extraction_status = excluded.extraction_status,
		classification_status = excluded.classification_status,
		extracted_text_length = excluded.extracted_text_length,
		completed_at = excluded.completed_at,
		record = excluded.record`, s.table)

	_, err = s.pool.Exec(ctx, stmt,
		rec.DocumentID,
		rec.Timestamp,
		string(rec.Status),
		rec.ObjectPath,
		string(rec.DocumentCategory),
		string(rec.ExtractionStatus),
		string(rec.ClassificationStatus),
		rec.ExtractedTextLength,
		rec.CompletedAt,
		blob,
	)
	if err != nil {
		return fmt.Errorf("put record %s: %w", rec.DocumentID, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]entity.DocumentRecord, error) {
	stmt := fmt.Sprintf(`SELECT record FROM %s ORDER BY ts, document_id`, s.table)
	rows, err := s.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []entity.DocumentRecord
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec entity.DocumentRecord
		if err := json.Unmarshal(blob, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
