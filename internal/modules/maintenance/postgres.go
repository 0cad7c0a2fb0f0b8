package maintenance

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/product-manager/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) DeleteOrphanTags(ctx context.Context) (int64, error) {
	return r.exec(ctx, `
		DELETE FROM tags t
		WHERE NOT EXISTS (SELECT 1 FROM product_tags pt WHERE pt.tag_id = t.id)`)
}

func (r *postgresRepo) DeleteOrphanCustomers(ctx context.Context) (int64, error) {
	return r.exec(ctx, `
		DELETE FROM customers c
		WHERE NOT EXISTS (SELECT 1 FROM product_customers pc WHERE pc.customer_id = c.id)
		  AND NOT EXISTS (SELECT 1 FROM quotes q WHERE q.customer_id = c.id)`)
}

// Quotes of soft-deleted products count as orphans too.
func (r *postgresRepo) DeleteOrphanQuotes(ctx context.Context) (int64, error) {
	return r.exec(ctx, `
		DELETE FROM quotes q
		WHERE NOT EXISTS (SELECT 1 FROM product_manager p WHERE p.id = q.product_id AND NOT p.deleted)`)
}

func (r *postgresRepo) exec(ctx context.Context, query string) (int64, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
