package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresArchive struct {
	db *pgxpool.Pool
}

func NewPostgresArchive(db *pgxpool.Pool) *PostgresArchive {
	return &PostgresArchive{db: db}
}

func (r *PostgresArchive) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Order)
	if err != nil {
		return fmt.Errorf("marshaling order payload: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (id, call_id, payload, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.CallID, payload, rec.Status, rec.Error, rec.CreatedAt)
	return err
}

func (r *PostgresArchive) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	return r.list(ctx, `
		SELECT id, call_id, payload, status, error, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *PostgresArchive) ListFailed(ctx context.Context, limit int) ([]Record, error) {
	return r.list(ctx, `
		SELECT id, call_id, payload, status, error, created_at
		FROM orders
		WHERE status = 'FAILED'
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
}

func (r *PostgresArchive) MarkSubmitted(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $1, error = '' WHERE id = $2
	`, StatusSubmitted, id)
	return err
}

func (r *PostgresArchive) list(ctx context.Context, query string, limit int) ([]Record, error) {
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.CallID, &payload, &rec.Status, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &rec.Order); err != nil {
			return nil, fmt.Errorf("unmarshaling order %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
