package activitylog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryColumns = `id, order_id, action, endpoint, method, timestamp, details`

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO activity_logs (order_id, action, endpoint, method, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp`,
		e.OrderID, e.Action, e.Endpoint, e.Method, e.Details,
	).Scan(&e.ID, &e.Timestamp)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM activity_logs ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total)
}

func (r *repoPG) ListByOrder(ctx context.Context, orderID int64, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_logs WHERE order_id = $1`, orderID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM activity_logs WHERE order_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`,
		orderID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total)
}

func collect(rows pgx.Rows, total int) ([]*Entry, int, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Action, &e.Endpoint, &e.Method, &e.Timestamp, &e.Details); err != nil {
			return nil, 0, err
		}
		entries = append(entries, &e)
	}
	return entries, total, rows.Err()
}
