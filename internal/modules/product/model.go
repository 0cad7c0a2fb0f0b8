package product

import (
	"time"

	"github.com/georgemunganga/product-manager/internal/modules/customer"
	"github.com/georgemunganga/product-manager/internal/modules/image"
	"github.com/georgemunganga/product-manager/internal/modules/quote"
	"github.com/georgemunganga/product-manager/internal/modules/tag"
)

// Product is a row of the product_manager table. Nullable columns are
// pointers; RefNum never changes after creation.
type Product struct {
	ID              int64      `json:"id"`
	RefNum          string     `json:"ref_num"`
	Name            *string    `json:"name"`
	Barcode         *int64     `json:"barcode"`
	PcsInnerbox     *int64     `json:"pcs_innerbox"`
	PcsCtn          *int64     `json:"pcs_ctn"`
	Weight          *float64   `json:"weight"`
	PriceUSD        *float64   `json:"price_usd"`
	PriceRMB        *float64   `json:"price_rmb"`
	Remarks         *string    `json:"remarks"`
	Packing         *string    `json:"packing"`
	Deleted         bool       `json:"deleted"`
	LastUpdated     time.Time  `json:"last_updated"`
	LockedBy        *string    `json:"locked_by"`
	LockedTimestamp *time.Time `json:"locked_timestamp"`
}

// Locked reports whether someone holds the advisory lock.
func (p *Product) Locked() bool { return p.LockedBy != nil }

// View is a product together with everything linked to it.
type View struct {
	Product
	Imgs      []image.Image       `json:"imgs"`
	Tags      []tag.Tag           `json:"tags"`
	Customers []customer.Customer `json:"customers"`
	Quote     []quote.Quote       `json:"quote"`
}

// SearchFilter selects products by exactly one criterion. When several are
// set the first non-empty one in field order wins.
type SearchFilter struct {
	Name     string
	Tag      string
	Customer string
	Barcode  *int64
	RefNum   string
}
