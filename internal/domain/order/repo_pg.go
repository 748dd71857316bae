package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const orderColumns = `id, first_name, last_name, date_of_birth, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, o *Order) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO orders (first_name, last_name, date_of_birth)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		o.FirstName, o.LastName, o.DateOfBirth,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *repoPG) Update(ctx context.Context, o *Order) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE orders SET
			first_name = $2, last_name = $3, date_of_birth = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		o.ID, o.FirstName, o.LastName, o.DateOfBirth,
	).Scan(&o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.FirstName, &o.LastName, &o.DateOfBirth, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
