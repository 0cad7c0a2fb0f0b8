package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/georgemunganga/product-manager/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, ref_num, name, barcode, pcs_innerbox, pcs_ctn, weight, price_usd, price_rmb,
	remarks, packing, deleted, last_updated, locked_by, locked_timestamp`

func scanProduct(scan func(...any) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.RefNum, &p.Name, &p.Barcode, &p.PcsInnerbox, &p.PcsCtn,
		&p.Weight, &p.PriceUSD, &p.PriceRMB, &p.Remarks, &p.Packing,
		&p.Deleted, &p.LastUpdated, &p.LockedBy, &p.LockedTimestamp)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	return database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO product_manager
		  (ref_num, name, barcode, pcs_innerbox, pcs_ctn, weight, price_usd, price_rmb, remarks, packing)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, last_updated`,
		p.RefNum, p.Name, p.Barcode, p.PcsInnerbox, p.PcsCtn,
		p.Weight, p.PriceUSD, p.PriceRMB, p.Remarks, p.Packing).
		Scan(&p.ID, &p.LastUpdated)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM product_manager WHERE id=$1 AND NOT deleted`, id)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM product_manager
		WHERE id = ANY($1) AND NOT deleted ORDER BY id`, pq.Array(ids))
}

func (r *postgresRepo) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM product_manager WHERE NOT deleted ORDER BY id`)
}

func (r *postgresRepo) SearchByName(ctx context.Context, substr string) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM product_manager
		WHERE name ILIKE $1 AND NOT deleted ORDER BY id`, database.Contains(substr))
}

func (r *postgresRepo) FindByBarcode(ctx context.Context, barcode int64) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM product_manager
		WHERE barcode=$1 AND NOT deleted ORDER BY id`, barcode)
}

func (r *postgresRepo) FindByRefNum(ctx context.Context, refNum string) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM product_manager
		WHERE ref_num=$1 AND NOT deleted`, refNum)
}

func (r *postgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_manager WHERE id=$1 AND NOT deleted)`, id).Scan(&ok)
	return ok, err
}

func (r *postgresRepo) Update(ctx context.Context, id int64, u Update) (bool, error) {
	sets := []string{}
	args := []any{}
	n := 1
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s=$%d", col, n))
		args = append(args, v)
		n++
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Barcode != nil {
		add("barcode", *u.Barcode)
	}
	if u.PcsInnerbox != nil {
		add("pcs_innerbox", *u.PcsInnerbox)
	}
	if u.PcsCtn != nil {
		add("pcs_ctn", *u.PcsCtn)
	}
	if u.Weight != nil {
		add("weight", *u.Weight)
	}
	if u.PriceUSD != nil {
		add("price_usd", *u.PriceUSD)
	}
	if u.PriceRMB != nil {
		add("price_rmb", *u.PriceRMB)
	}
	if u.Remarks != nil {
		add("remarks", *u.Remarks)
	}
	if u.Packing != nil {
		add("packing", *u.Packing)
	}
	sets = append(sets, "last_updated=NOW()")
	args = append(args, id)

	res, err := database.Conn(ctx, r.db).ExecContext(ctx, fmt.Sprintf(
		`UPDATE product_manager SET %s WHERE id=$%d AND NOT deleted`, strings.Join(sets, ", "), n), args...)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE product_manager SET deleted=TRUE WHERE id=$1 AND NOT deleted`, id)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) SetLock(ctx context.Context, id int64, holder *string) (bool, error) {
	query := `UPDATE product_manager SET locked_by=$1, locked_timestamp=NOW() WHERE id=$2 AND NOT deleted`
	if holder == nil {
		query = `UPDATE product_manager SET locked_by=$1, locked_timestamp=NULL WHERE id=$2 AND NOT deleted`
	}
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query, holder, id)
	if err != nil {
		return false, err
	}
	return database.RowsAffected(res)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
