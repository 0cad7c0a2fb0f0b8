package product

import (
	"sort"
	"strings"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/modules/quote"
	"github.com/georgemunganga/product-manager/internal/web"
)

// CreateRequest holds a new product and the records created along with it.
type CreateRequest struct {
	RefNum      string   `json:"ref_num" validate:"required"`
	Name        *string  `json:"name"`
	Barcode     *int64   `json:"barcode" validate:"omitempty,gte=0"`
	PcsInnerbox *int64   `json:"pcs_innerbox" validate:"omitempty,gte=0,lte=2147483647"`
	PcsCtn      *int64   `json:"pcs_ctn" validate:"omitempty,gte=0,lte=2147483647"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=0"`
	PriceUSD    *float64 `json:"price_usd" validate:"omitempty,gte=0"`
	PriceRMB    *float64 `json:"price_rmb" validate:"omitempty,gte=0"`
	Remarks     *string  `json:"remarks"`
	Packing     *string  `json:"packing"`

	Customers []string                `json:"customers"`
	Tags      []string                `json:"tags"`
	Imgs      []string                `json:"imgs"`
	Quote     map[string]quote.Detail `json:"quote" validate:"omitempty,dive,keys,required,endkeys"`

	dupQuote string
}

func (req *CreateRequest) Normalize() {
	req.RefNum = strings.TrimSpace(req.RefNum)
	web.TrimPtr(req.Name)
	web.TrimPtr(req.Remarks)
	web.TrimPtr(req.Packing)
	req.Customers = web.Trim(req.Customers)
	req.Tags = web.Trim(req.Tags)
	req.Imgs = web.Trim(req.Imgs)
	req.Quote, req.dupQuote = trimKeys(req.Quote)
}

func (req *CreateRequest) Check() error { return checkQuotes("quote", req.Quote, req.dupQuote) }

// Update lists the editable product columns; nil fields are left alone.
// ref_num is not editable and has no field here.
type Update struct {
	Name        *string  `json:"name"`
	Barcode     *int64   `json:"barcode" validate:"omitempty,gte=0"`
	PcsInnerbox *int64   `json:"pcs_innerbox" validate:"omitempty,gte=0,lte=2147483647"`
	PcsCtn      *int64   `json:"pcs_ctn" validate:"omitempty,gte=0,lte=2147483647"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=0"`
	PriceUSD    *float64 `json:"price_usd" validate:"omitempty,gte=0"`
	PriceRMB    *float64 `json:"price_rmb" validate:"omitempty,gte=0"`
	Remarks     *string  `json:"remarks"`
	Packing     *string  `json:"packing"`
}

func (u *Update) Normalize() {
	web.TrimPtr(u.Name)
	web.TrimPtr(u.Remarks)
	web.TrimPtr(u.Packing)
}

// LockRequest toggles the advisory lock.
type LockRequest struct {
	Locked *bool `json:"locked" validate:"required"`
}

type imagesRequest struct {
	Imgs []string `json:"imgs" validate:"required,min=1"`
}

func (req *imagesRequest) Normalize() { req.Imgs = web.Trim(req.Imgs) }

type customersRequest struct {
	Customers []string `json:"customers" validate:"required,min=1"`
}

func (req *customersRequest) Normalize() { req.Customers = web.Trim(req.Customers) }

type tagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1"`
}

func (req *tagsRequest) Normalize() { req.Tags = web.Trim(req.Tags) }

type quotesRequest struct {
	Quotes map[string]quote.Detail `json:"quotes" validate:"required,min=1,dive,keys,required,endkeys"`

	dupQuote string
}

func (req *quotesRequest) Normalize() { req.Quotes, req.dupQuote = trimKeys(req.Quotes) }

func (req *quotesRequest) Check() error { return checkQuotes("quotes", req.Quotes, req.dupQuote) }

// trimKeys trims every customer name and returns the first name that two
// keys collapsed into, if any.
func trimKeys(m map[string]quote.Detail) (map[string]quote.Detail, string) {
	if m == nil {
		return nil, ""
	}
	out := make(map[string]quote.Detail, len(m))
	dup := ""
	for k, v := range m {
		k = strings.TrimSpace(k)
		if _, seen := out[k]; seen && (dup == "" || k < dup) {
			dup = k
		}
		out[k] = v
	}
	return out, dup
}

// checkQuotes rejects duplicate customer names and validates every entry.
func checkQuotes(field string, m map[string]quote.Detail, dup string) error {
	if dup != "" {
		return apierror.NewValidation("%s: customer %q given more than once", field, dup)
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := m[name]
		if err := web.Validate(&d); err != nil {
			return apierror.NewValidation("%s for %q must be between 0 and %.2f", field, name, quote.MaxValue-0.01)
		}
	}
	return nil
}
