package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a price offered to one customer for one product.
type Quote struct {
	ID           int64     `json:"quote_id"`
	ProductID    int64     `json:"product_id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Quote        *float64  `json:"quote"`
	Remark       *string   `json:"quote_remark"`
	Timestamp    time.Time `json:"timestamp"`
}

// MaxValue is the exclusive upper bound of the NUMERIC(14,2) quote column.
const MaxValue = 1e12

// Detail is the per-customer payload of a quote submission.
type Detail struct {
	Quote  *float64 `json:"quote" validate:"omitempty,gte=0,lt=1000000000000"`
	Remark *string  `json:"remark"`
}

// Update lists the quote fields that may change; nil means untouched.
type Update struct {
	CustomerID *int64   `json:"customer_id" validate:"omitempty,gt=0"`
	Quote      *float64 `json:"quote" validate:"omitempty,gte=0,lt=1000000000000"`
	Remark     *string  `json:"quote_remark"`
}

func (u Update) empty() bool {
	return u.CustomerID == nil && u.Quote == nil && u.Remark == nil
}

// Round rounds v half away from zero to two decimal places.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// inRange reports whether the column can hold the rounded quote v.
func inRange(v *float64) bool {
	return v == nil || (*v >= 0 && *v < MaxValue)
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round(*v)
	return &r
}
