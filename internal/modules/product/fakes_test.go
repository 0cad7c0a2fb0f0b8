package product

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/modules/customer"
	"github.com/georgemunganga/product-manager/internal/modules/image"
	"github.com/georgemunganga/product-manager/internal/modules/quote"
	"github.com/georgemunganga/product-manager/internal/modules/tag"
)

type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

// stubRepo keeps products in memory and hides soft-deleted rows the way the
// SQL queries do.
type stubRepo struct {
	rows   []*Product
	clock  time.Time
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *stubRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *stubRepo) get(id int64) *Product {
	for _, p := range r.rows {
		if p.ID == id && !p.Deleted {
			return p
		}
	}
	return nil
}

func (r *stubRepo) filter(keep func(*Product) bool) []Product {
	out := []Product{}
	for _, p := range r.rows {
		if !p.Deleted && keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (r *stubRepo) Create(_ context.Context, p *Product) error {
	for _, row := range r.rows {
		if row.RefNum == p.RefNum {
			return &pq.Error{Code: "23505"}
		}
	}
	r.nextID++
	p.ID = r.nextID
	p.LastUpdated = r.tick()
	row := *p
	r.rows = append(r.rows, &row)
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id int64) (*Product, error) {
	if p := r.get(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *stubRepo) GetByIDs(_ context.Context, ids []int64) ([]Product, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(p *Product) bool { return want[p.ID] }), nil
}

func (r *stubRepo) List(_ context.Context) ([]Product, error) {
	return r.filter(func(*Product) bool { return true }), nil
}

func (r *stubRepo) SearchByName(_ context.Context, substr string) ([]Product, error) {
	return r.filter(func(p *Product) bool {
		return p.Name != nil && strings.Contains(strings.ToLower(*p.Name), strings.ToLower(substr))
	}), nil
}

func (r *stubRepo) FindByBarcode(_ context.Context, barcode int64) ([]Product, error) {
	return r.filter(func(p *Product) bool { return p.Barcode != nil && *p.Barcode == barcode }), nil
}

func (r *stubRepo) FindByRefNum(_ context.Context, refNum string) ([]Product, error) {
	return r.filter(func(p *Product) bool { return p.RefNum == refNum }), nil
}

func (r *stubRepo) Exists(_ context.Context, id int64) (bool, error) {
	return r.get(id) != nil, nil
}

func (r *stubRepo) Update(_ context.Context, id int64, u Update) (bool, error) {
	p := r.get(id)
	if p == nil {
		return false, nil
	}
	if u.Name != nil {
		p.Name = u.Name
	}
	if u.Barcode != nil {
		p.Barcode = u.Barcode
	}
	if u.PcsInnerbox != nil {
		p.PcsInnerbox = u.PcsInnerbox
	}
	if u.PcsCtn != nil {
		p.PcsCtn = u.PcsCtn
	}
	if u.Weight != nil {
		p.Weight = u.Weight
	}
	if u.PriceUSD != nil {
		p.PriceUSD = u.PriceUSD
	}
	if u.PriceRMB != nil {
		p.PriceRMB = u.PriceRMB
	}
	if u.Remarks != nil {
		p.Remarks = u.Remarks
	}
	if u.Packing != nil {
		p.Packing = u.Packing
	}
	p.LastUpdated = r.tick()
	return true, nil
}

func (r *stubRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	p := r.get(id)
	if p == nil {
		return false, nil
	}
	p.Deleted = true
	return true, nil
}

func (r *stubRepo) SetLock(_ context.Context, id int64, holder *string) (bool, error) {
	p := r.get(id)
	if p == nil {
		return false, nil
	}
	p.LockedBy = holder
	p.LockedTimestamp = nil
	if holder != nil {
		ts := r.tick()
		p.LockedTimestamp = &ts
	}
	return true, nil
}

type fakeImages struct {
	rows   []image.Image
	nextID int64
}

func (f *fakeImages) Add(_ context.Context, productID int64, paths []string) error {
	for _, p := range paths {
		f.nextID++
		f.rows = append(f.rows, image.Image{ID: f.nextID, ProductID: productID, Img: p})
	}
	return nil
}

func (f *fakeImages) Delete(_ context.Context, productID, imageID int64) error {
	for i, img := range f.rows {
		if img.ID == imageID && img.ProductID == productID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return apierror.NewNotFound("image %d not found", imageID)
}

func (f *fakeImages) RemoveAll(_ context.Context, productID int64) error {
	kept := []image.Image{}
	for _, img := range f.rows {
		if img.ProductID != productID {
			kept = append(kept, img)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeImages) ListForProduct(_ context.Context, productID int64) ([]image.Image, error) {
	out := []image.Image{}
	for _, img := range f.rows {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeImages) List(context.Context) ([]image.Image, error) { return f.rows, nil }

// fakeLinks backs both the customer and the tag fakes: named rows shared
// between products through a link set.
type fakeLinks[T any] struct {
	names []string
	links map[[2]int64]bool
	build func(id int64, name string) T
}

func newFakeLinks[T any](mk func(int64, string) T) *fakeLinks[T] {
	return &fakeLinks[T]{links: map[[2]int64]bool{}, build: mk}
}

func (f *fakeLinks[T]) find(name string) int64 {
	for i, n := range f.names {
		if strings.EqualFold(n, name) {
			return int64(i + 1)
		}
	}
	return 0
}

func (f *fakeLinks[T]) Add(_ context.Context, productID int64, names []string) error {
	for _, name := range names {
		id := f.find(name)
		if id == 0 {
			f.names = append(f.names, name)
			id = int64(len(f.names))
		}
		f.links[[2]int64{productID, id}] = true
	}
	return nil
}

func (f *fakeLinks[T]) Unlink(_ context.Context, productID, id int64) error {
	k := [2]int64{productID, id}
	if !f.links[k] {
		return apierror.NewNotFound("link not found")
	}
	delete(f.links, k)
	return nil
}

func (f *fakeLinks[T]) UnlinkAll(_ context.Context, productID int64) error {
	for k := range f.links {
		if k[0] == productID {
			delete(f.links, k)
		}
	}
	return nil
}

func (f *fakeLinks[T]) Rename(_ context.Context, id int64, name string) (*T, error) {
	f.names[id-1] = name
	v := f.build(id, name)
	return &v, nil
}

func (f *fakeLinks[T]) Resolve(_ context.Context, name string) (*T, error) {
	id := f.find(name)
	if id == 0 {
		return nil, apierror.NewNotFound("%q not found", name)
	}
	v := f.build(id, f.names[id-1])
	return &v, nil
}

func (f *fakeLinks[T]) Search(_ context.Context, substr string) ([]int64, error) {
	for i, n := range f.names {
		if !strings.Contains(strings.ToLower(n), strings.ToLower(substr)) {
			continue
		}
		ids := []int64{}
		for k := range f.links {
			if k[1] == int64(i+1) {
				ids = append(ids, k[0])
			}
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		return ids, nil
	}
	return nil, apierror.NewNotFound("%q not found", substr)
}

func (f *fakeLinks[T]) ListForProduct(_ context.Context, productID int64) ([]T, error) {
	out := []T{}
	for i, n := range f.names {
		if f.links[[2]int64{productID, int64(i + 1)}] {
			out = append(out, f.build(int64(i+1), n))
		}
	}
	return out, nil
}

func (f *fakeLinks[T]) List(context.Context) ([]T, error) {
	out := []T{}
	for i, n := range f.names {
		out = append(out, f.build(int64(i+1), n))
	}
	return out, nil
}

type fakeQuotes struct {
	rows      []quote.Quote
	nextID    int64
	customers *fakeLinks[customer.Customer]
}

func (f *fakeQuotes) Add(ctx context.Context, productID int64, quotes map[string]quote.Detail) error {
	names := make([]string, 0, len(quotes))
	for n := range quotes {
		names = append(names, n)
	}
	sort.Strings(names)
	pending := []quote.Quote{}
	for _, n := range names {
		c, err := f.customers.Resolve(ctx, n)
		if err != nil {
			return err
		}
		d := quotes[n]
		var v *float64
		if d.Quote != nil {
			r := quote.Round(*d.Quote)
			v = &r
		}
		f.nextID++
		pending = append(pending, quote.Quote{
			ID: f.nextID, ProductID: productID, CustomerID: c.ID, CustomerName: c.Name, Quote: v, Remark: d.Remark,
		})
	}
	f.rows = append(f.rows, pending...)
	return nil
}

func (f *fakeQuotes) Delete(_ context.Context, productID, quoteID int64) error {
	for i, q := range f.rows {
		if q.ID == quoteID && q.ProductID == productID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return apierror.NewNotFound("quote %d not found", quoteID)
}

func (f *fakeQuotes) RemoveAll(_ context.Context, productID int64) error {
	kept := []quote.Quote{}
	for _, q := range f.rows {
		if q.ProductID != productID {
			kept = append(kept, q)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeQuotes) Edit(context.Context, int64, quote.Update) (*quote.Quote, error) {
	return nil, nil
}

func (f *fakeQuotes) Get(context.Context, int64) (*quote.Quote, error) { return nil, nil }

func (f *fakeQuotes) ListForProduct(_ context.Context, productID int64) ([]quote.Quote, error) {
	out := []quote.Quote{}
	for _, q := range f.rows {
		if q.ProductID == productID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuotes) List(context.Context) ([]quote.Quote, error) { return f.rows, nil }

type fixture struct {
	repo      *stubRepo
	images    *fakeImages
	customers *fakeLinks[customer.Customer]
	tags      *fakeLinks[tag.Tag]
	quotes    *fakeQuotes
	svc       Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newStubRepo(),
		images:    &fakeImages{},
		customers: newFakeLinks(func(id int64, n string) customer.Customer { return customer.Customer{ID: id, Name: n} }),
		tags:      newFakeLinks(func(id int64, n string) tag.Tag { return tag.Tag{ID: id, Name: n} }),
	}
	f.quotes = &fakeQuotes{customers: f.customers}
	f.svc = NewService(f.repo, Deps{
		Images:    f.images,
		Customers: f.customers,
		Tags:      f.tags,
		Quotes:    f.quotes,
	}, passTx{})
	return f
}

func ptr[T any](v T) *T { return &v }
