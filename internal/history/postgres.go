package history

import (
	"context"
	"database/sql"

	"schema-engine/internal/common/errors"
)

const (
	insertEntryQuery = `
		INSERT INTO generation_history
			(run_id, shop_domain, generated_at, product_count, document_count, failure_count, score, valid, incomplete)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	recentEntriesQuery = `
		SELECT run_id, shop_domain, generated_at, product_count, document_count, failure_count, score, valid, incomplete
		FROM generation_history
		WHERE shop_domain = $1
		ORDER BY generated_at DESC
		LIMIT $2`
)

// PostgresStore implements Store on a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, entry *Entry) error {
	_, err := s.db.ExecContext(ctx, insertEntryQuery,
		entry.RunID,
		entry.ShopDomain,
		entry.GeneratedAt,
		entry.ProductCount,
		entry.DocumentCount,
		entry.FailureCount,
		entry.Score,
		entry.Valid,
		entry.Incomplete,
	)
	if err != nil {
		return errors.NewHistoryWriteFailedError(err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, shopDomain string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, recentEntriesQuery, shopDomain, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.RunID,
			&e.ShopDomain,
			&e.GeneratedAt,
			&e.ProductCount,
			&e.DocumentCount,
			&e.FailureCount,
			&e.Score,
			&e.Valid,
			&e.Incomplete,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
