package customer

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/product-manager/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Ensure(ctx context.Context, name string) (int64, error) {
	q := database.Conn(ctx, r.db)
	if _, err := q.ExecContext(ctx, `
		INSERT INTO customers (customer_name) VALUES ($1)
		ON CONFLICT (lower(customer_name)) DO NOTHING`, name); err != nil {
		return 0, err
	}
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM customers WHERE lower(customer_name)=lower($1)`, name).Scan(&id)
	return id, err
}

func (r *postgresRepo) Link(ctx context.Context, productID, customerID int64) error {
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO product_customers (product_id, customer_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, productID, customerID)
	return err
}

func (r *postgresRepo) Unlink(ctx context.Context, productID, customerID int64) (bool, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_customers WHERE product_id=$1 AND customer_id=$2`, productID, customerID)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) UnlinkAll(ctx context.Context, productID int64) (int64, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_customers WHERE product_id=$1`, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) Rename(ctx context.Context, id int64, name string) (*Customer, error) {
	c := &Customer{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx,
		`UPDATE customers SET customer_name=$1 WHERE id=$2 RETURNING id, customer_name`, name, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) FindByName(ctx context.Context, name string) (*Customer, error) {
	c := &Customer{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, customer_name FROM customers WHERE lower(customer_name)=lower($1)`, name).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) FindFirstMatching(ctx context.Context, substr string) (*Customer, error) {
	c := &Customer{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, customer_name FROM customers
		WHERE customer_name ILIKE $1
		ORDER BY id LIMIT 1`, database.Contains(substr)).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) LinkedProductIDs(ctx context.Context, customerID int64) ([]int64, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT product_id FROM product_customers WHERE customer_id=$1 ORDER BY product_id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID int64) ([]Customer, error) {
	return r.query(ctx, `
		SELECT c.id, c.customer_name
		FROM product_customers pc
		JOIN customers c ON pc.customer_id = c.id
		WHERE pc.product_id=$1
		ORDER BY c.id`, productID)
}

func (r *postgresRepo) List(ctx context.Context) ([]Customer, error) {
	return r.query(ctx, `SELECT id, customer_name FROM customers ORDER BY id`)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...any) ([]Customer, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
