/**
 * @description
 * PostgreSQL implementation of the Records contract. Documents live in a
 * single `records` table as jsonb, one row per record, keyed by collection
 * and the document's own id. Field-equality filters map onto jsonb
 * containment (`@>`) and patches onto jsonb concatenation (`||`), so the
 * store never needs to know the shape of what it holds.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5/pgxpool: The PostgreSQL driver and connection
 *   pool manager used across the codebase.
 */
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    doc        JSONB NOT NULL,
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS records_doc_idx ON records USING GIN (doc jsonb_path_ops);
`

// PostgresRecords is the pgx-backed Records implementation.
type PostgresRecords struct {
	db *pgxpool.Pool
}

// NewPostgresRecords creates the store and ensures its schema exists.
func NewPostgresRecords(ctx context.Context, db *pgxpool.Pool) (*PostgresRecords, error) {
	if _, err := db.Exec(ctx, recordsSchema); err != nil {
		return nil, fmt.Errorf("ensuring records schema: %w", err)
	}
	return &PostgresRecords{db: db}, nil
}

func marshalFilter(filter Filter) ([]byte, error) {
	if filter == nil {
		filter = Filter{}
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshalling filter: %w", err)
	}
	return data, nil
}

// FindOne returns the first matching record decoded into dest.
func (s *PostgresRecords) FindOne(ctx context.Context, collection string, filter Filter, dest any) error {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return err
	}

	var doc []byte
	query := `SELECT doc FROM records WHERE collection = $1 AND doc @> $2 LIMIT 1`
	if err := s.db.QueryRow(ctx, query, collection, filterJSON).Scan(&doc); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("querying %s: %w", collection, err)
	}
	if err := json.Unmarshal(doc, dest); err != nil {
		return fmt.Errorf("decoding %s record: %w", collection, err)
	}
	return nil
}

// FindMany returns up to limit matching records decoded into dest.
func (s *PostgresRecords) FindMany(ctx context.Context, collection string, filter Filter, limit int, dest any) error {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return err
	}

	query := `SELECT doc FROM records WHERE collection = $1 AND doc @> $2`
	args := []any{collection, filterJSON}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []json.RawMessage{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return fmt.Errorf("scanning %s record: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s records: %w", collection, err)
	}

	combined, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("combining %s records: %w", collection, err)
	}
	if err := json.Unmarshal(combined, dest); err != nil {
		return fmt.Errorf("decoding %s records: %w", collection, err)
	}
	return nil
}

// InsertOne stores a new record under the document's own id.
func (s *PostgresRecords) InsertOne(ctx context.Context, collection string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling %s record: %w", collection, err)
	}

	var idHolder struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &idHolder); err != nil || idHolder.ID == "" {
		return fmt.Errorf("record for %s is missing an id", collection)
	}

	query := `INSERT INTO records (collection, id, doc) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, query, collection, idHolder.ID, data); err != nil {
		return fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return nil
}

// UpdateOne patches at most one matching record.
func (s *PostgresRecords) UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error) {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return 0, fmt.Errorf("marshalling patch: %w", err)
	}

	query := `
        WITH target AS (
            SELECT ctid FROM records WHERE collection = $1 AND doc @> $2 LIMIT 1
        )
        UPDATE records SET doc = doc || $3
        FROM target WHERE records.ctid = target.ctid
    `
	tag, err := s.db.Exec(ctx, query, collection, filterJSON, patchJSON)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

// UpdateMany patches every matching record.
func (s *PostgresRecords) UpdateMany(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error) {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return 0, fmt.Errorf("marshalling patch: %w", err)
	}

	// Rows already holding every patched value are excluded so the affected
	// count reports modifications, not matches.
	query := `UPDATE records SET doc = doc || $3 WHERE collection = $1 AND doc @> $2 AND NOT doc @> $3`
	tag, err := s.db.Exec(ctx, query, collection, filterJSON, patchJSON)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOne removes at most one matching record.
func (s *PostgresRecords) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}

	query := `
        WITH target AS (
            SELECT ctid FROM records WHERE collection = $1 AND doc @> $2 LIMIT 1
        )
        DELETE FROM records USING target WHERE records.ctid = target.ctid
    `
	tag, err := s.db.Exec(ctx, query, collection, filterJSON)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteMany removes every matching record.
func (s *PostgresRecords) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}

	query := `DELETE FROM records WHERE collection = $1 AND doc @> $2`
	tag, err := s.db.Exec(ctx, query, collection, filterJSON)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", collection, err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of matching records.
func (s *PostgresRecords) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}

	var count int64
	query := `SELECT count(*) FROM records WHERE collection = $1 AND doc @> $2`
	if err := s.db.QueryRow(ctx, query, collection, filterJSON).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", collection, err)
	}
	return count, nil
}
