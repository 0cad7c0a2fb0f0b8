package image

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/product-manager/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Insert(ctx context.Context, productID int64, paths []string) error {
	q := database.Conn(ctx, r.db)
	for _, p := range paths {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO product_images (product_id, img) VALUES ($1, $2)`, productID, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, productID, imageID int64) (bool, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_images WHERE id=$1 AND product_id=$2`, imageID, productID)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_images WHERE product_id=$1`, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID int64) ([]Image, error) {
	return r.query(ctx, `SELECT id, product_id, img FROM product_images WHERE product_id=$1 ORDER BY id`, productID)
}

func (r *postgresRepo) List(ctx context.Context) ([]Image, error) {
	return r.query(ctx, `SELECT id, product_id, img FROM product_images ORDER BY id`)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...any) ([]Image, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Img); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
