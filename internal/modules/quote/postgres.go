package quote

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/georgemunganga/product-manager/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const selectQuote = `
	SELECT q.id, q.product_id, q.customer_id, c.customer_name, q.quote, q.quote_remark, q."timestamp"
	FROM quotes q
	JOIN customers c ON q.customer_id = c.id`

func scanQuote(scan func(...any) error) (*Quote, error) {
	q := &Quote{}
	err := scan(&q.ID, &q.ProductID, &q.CustomerID, &q.CustomerName, &q.Quote, &q.Remark, &q.Timestamp)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *postgresRepo) Insert(ctx context.Context, productID, customerID int64, value *float64, remark *string) (int64, error) {
	var id int64
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO quotes (product_id, customer_id, quote, quote_remark)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		productID, customerID, value, remark).Scan(&id)
	return id, err
}

func (r *postgresRepo) Delete(ctx context.Context, productID, quoteID int64) (bool, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM quotes WHERE id=$1 AND product_id=$2`, quoteID, productID)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM quotes WHERE product_id=$1`, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) Update(ctx context.Context, id int64, u Update) (bool, error) {
	sets := []string{}
	args := []any{}
	n := 1
	if u.CustomerID != nil {
		sets = append(sets, fmt.Sprintf("customer_id=$%d", n))
		args = append(args, *u.CustomerID)
		n++
	}
	if u.Quote != nil {
		sets = append(sets, fmt.Sprintf("quote=$%d", n))
		args = append(args, *u.Quote)
		n++
	}
	if u.Remark != nil {
		sets = append(sets, fmt.Sprintf("quote_remark=$%d", n))
		args = append(args, *u.Remark)
		n++
	}
	if len(sets) == 0 {
		return false, fmt.Errorf("update quote %d: no fields", id)
	}
	args = append(args, id)

	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		fmt.Sprintf(`UPDATE quotes SET %s WHERE id=$%d`, strings.Join(sets, ", "), n), args...)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Quote, error) {
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, selectQuote+` WHERE q.id=$1`, id)
	return scanQuote(row.Scan)
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID int64) ([]Quote, error) {
	return r.query(ctx, selectQuote+` WHERE q.product_id=$1 ORDER BY q.id`, productID)
}

func (r *postgresRepo) List(ctx context.Context) ([]Quote, error) {
	return r.query(ctx, selectQuote+` ORDER BY q.id`)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...any) ([]Quote, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []Quote{}
	for rows.Next() {
		q, err := scanQuote(rows.Scan)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	return quotes, rows.Err()
}
