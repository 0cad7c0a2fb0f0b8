package tag

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
		INSERT INTO tags (tag_name) VALUES ($1)
		ON CONFLICT (lower(tag_name)) DO NOTHING`, name); err != nil {
		return 0, err
	}
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM tags WHERE lower(tag_name)=lower($1)`, name).Scan(&id)
	return id, err
}

func (r *postgresRepo) Link(ctx context.Context, productID, tagID int64) error {
	_, err := database.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, productID, tagID)
	return err
}

func (r *postgresRepo) Unlink(ctx context.Context, productID, tagID int64) (bool, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_tags WHERE product_id=$1 AND tag_id=$2`, productID, tagID)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) UnlinkAll(ctx context.Context, productID int64) (int64, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_tags WHERE product_id=$1`, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) Rename(ctx context.Context, id int64, name string) (*Tag, error) {
	t := &Tag{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx,
		`UPDATE tags SET tag_name=$1 WHERE id=$2 RETURNING id, tag_name`, name, id).
		Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) FindFirstMatching(ctx context.Context, substr string) (*Tag, error) {
	t := &Tag{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, tag_name FROM tags
		WHERE tag_name ILIKE $1
		ORDER BY id LIMIT 1`, database.Contains(substr)).
		Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) LinkedProductIDs(ctx context.Context, tagID int64) ([]int64, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT product_id FROM product_tags WHERE tag_id=$1 ORDER BY product_id`, tagID)
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

func (r *postgresRepo) ListByProduct(ctx context.Context, productID int64) ([]Tag, error) {
	return r.query(ctx, `
		SELECT t.id, t.tag_name
		FROM product_tags pt
		JOIN tags t ON pt.tag_id = t.id
		WHERE pt.product_id=$1
		ORDER BY t.id`, productID)
}

func (r *postgresRepo) List(ctx context.Context) ([]Tag, error) {
	return r.query(ctx, `SELECT id, tag_name FROM tags ORDER BY id`)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...any) ([]Tag, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
