package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/catalog"
)

// The fakes below back the service tests with an in-memory table per entity.
// Mutation helpers hold the table lock for the whole read-modify-write, which
// mirrors the single-statement atomicity of the real repositories.

type fakeInstrumentRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*catalog.Instrument

	findAllCalls  int
	findByIDCalls int
	findByType    int
	findByCond    int
}

func newFakeInstrumentRepo() *fakeInstrumentRepo {
	return &fakeInstrumentRepo{items: make(map[int64]*catalog.Instrument)}
}

func (r *fakeInstrumentRepo) all() []*catalog.Instrument {
	out := make([]*catalog.Instrument, 0, len(r.items))
	for _, inst := range r.items {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeInstrumentRepo) filter(keep func(*catalog.Instrument) bool) []*catalog.Instrument {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Instrument
	for _, inst := range r.all() {
		if keep(inst) {
			out = append(out, inst)
		}
	}
	return out
}

func (r *fakeInstrumentRepo) FindAll(context.Context) ([]*catalog.Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAllCalls++
	return r.all(), nil
}

func (r *fakeInstrumentRepo) FindByID(_ context.Context, id int64) (*catalog.Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDCalls++
	return r.items[id], nil
}

func (r *fakeInstrumentRepo) FindByNameContaining(_ context.Context, name string) ([]*catalog.Instrument, error) {
	needle := strings.ToLower(name)
	return r.filter(func(i *catalog.Instrument) bool {
		return strings.Contains(strings.ToLower(i.Name), needle)
	}), nil
}

func (r *fakeInstrumentRepo) FindByBrandContaining(_ context.Context, brand string) ([]*catalog.Instrument, error) {
	needle := strings.ToLower(brand)
	return r.filter(func(i *catalog.Instrument) bool {
		return strings.Contains(strings.ToLower(i.Brand), needle)
	}), nil
}

func (r *fakeInstrumentRepo) FindByType(_ context.Context, t catalog.InstrumentType) ([]*catalog.Instrument, error) {
	r.mu.Lock()
	r.findByType++
	r.mu.Unlock()
	return r.filter(func(i *catalog.Instrument) bool { return i.Type == t }), nil
}

func (r *fakeInstrumentRepo) FindByCondition(_ context.Context, c catalog.Condition) ([]*catalog.Instrument, error) {
	r.mu.Lock()
	r.findByCond++
	r.mu.Unlock()
	return r.filter(func(i *catalog.Instrument) bool { return i.Condition == c }), nil
}

func (r *fakeInstrumentRepo) FindByStockGreaterThan(_ context.Context, quantity int) ([]*catalog.Instrument, error) {
	return r.filter(func(i *catalog.Instrument) bool { return i.StockQuantity > quantity }), nil
}

func (r *fakeInstrumentRepo) FindByStockAtMost(_ context.Context, quantity int) ([]*catalog.Instrument, error) {
	return r.filter(func(i *catalog.Instrument) bool { return i.StockQuantity <= quantity }), nil
}

func (r *fakeInstrumentRepo) FindByPriceBetween(_ context.Context, min, max decimal.Decimal) ([]*catalog.Instrument, error) {
	return r.filter(func(i *catalog.Instrument) bool {
		return i.Price.GreaterThanOrEqual(min) && i.Price.LessThanOrEqual(max)
	}), nil
}

func (r *fakeInstrumentRepo) FindByTypeAndPriceBetween(_ context.Context, t catalog.InstrumentType, min, max decimal.Decimal) ([]*catalog.Instrument, error) {
	return r.filter(func(i *catalog.Instrument) bool {
		return i.Type == t && i.Price.GreaterThanOrEqual(min) && i.Price.LessThanOrEqual(max)
	}), nil
}

func (r *fakeInstrumentRepo) FindByBrandAndType(_ context.Context, brand string, t catalog.InstrumentType) ([]*catalog.Instrument, error) {
	return r.filter(func(i *catalog.Instrument) bool {
		return strings.EqualFold(i.Brand, brand) && i.Type == t
	}), nil
}

func (r *fakeInstrumentRepo) FindPage(_ context.Context, page, size int, _ string) ([]*catalog.Instrument, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.all()
	total := len(items)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], total, nil
}

func (r *fakeInstrumentRepo) CountByType(_ context.Context, t catalog.InstrumentType) (int64, error) {
	return int64(len(r.filter(func(i *catalog.Instrument) bool { return i.Type == t }))), nil
}

func (r *fakeInstrumentRepo) Insert(_ context.Context, inst *catalog.Instrument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inst.ID = r.nextID
	r.items[inst.ID] = inst
	return nil
}

func (r *fakeInstrumentRepo) Update(_ context.Context, inst *catalog.Instrument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[inst.ID]; ok {
		r.items[inst.ID] = inst
	}
	return nil
}

func (r *fakeInstrumentRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeInstrumentRepo) SetStock(_ context.Context, id int64, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.items[id]
	if !ok {
		return false, nil
	}
	inst.StockQuantity = quantity
	return true, nil
}

func (r *fakeInstrumentRepo) IncrementStock(_ context.Context, id int64, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.items[id]
	if !ok {
		return false, nil
	}
	inst.StockQuantity += delta
	return true, nil
}

type fakeCustomerRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*catalog.Customer

	findByEmailCalls int
	findByIDCalls    int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: make(map[int64]*catalog.Customer)}
}

func (r *fakeCustomerRepo) all() []*catalog.Customer {
	out := make([]*catalog.Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeCustomerRepo) FindAll(context.Context) ([]*catalog.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.all(), nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id int64) (*catalog.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDCalls++
	return r.items[id], nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*catalog.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByEmailCalls++
	for _, c := range r.items {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindByNameContaining(_ context.Context, name string) ([]*catalog.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(name)
	var out []*catalog.Customer
	for _, c := range r.all() {
		if strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByStatus(_ context.Context, status catalog.CustomerStatus) ([]*catalog.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Customer
	for _, c := range r.all() {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByMinLoyaltyPoints(_ context.Context, minPoints int) ([]*catalog.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Customer
	for _, c := range r.all() {
		if c.LoyaltyPoints >= minPoints {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Insert(_ context.Context, c *catalog.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *catalog.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; ok {
		r.items[c.ID] = c
	}
	return nil
}

func (r *fakeCustomerRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeCustomerRepo) AddPurchase(_ context.Context, id int64, amount decimal.Decimal, points int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return false, nil
	}
	c.TotalPurchases = c.TotalPurchases.Add(amount)
	c.LoyaltyPoints += points
	return true, nil
}

func (r *fakeCustomerRepo) IncrementLoyaltyPoints(_ context.Context, id int64, points int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return false, nil
	}
	c.LoyaltyPoints += points
	return true, nil
}

func (r *fakeCustomerRepo) SetStatus(_ context.Context, id int64, status catalog.CustomerStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return false, nil
	}
	c.Status = status
	return true, nil
}

type fakeCategoryRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*catalog.Category

	findByNameCalls int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: make(map[int64]*catalog.Category)}
}

func (r *fakeCategoryRepo) all() []*catalog.Category {
	out := make([]*catalog.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeCategoryRepo) FindAll(context.Context) ([]*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.all(), nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByNameCalls++
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindByNameContaining(_ context.Context, name string) ([]*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(name)
	var out []*catalog.Category
	for _, c := range r.all() {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *fakeCategoryRepo) Insert(_ context.Context, c *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; ok {
		r.items[c.ID] = c
	}
	return nil
}

func (r *fakeCategoryRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeReviewRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*catalog.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{items: make(map[int64]*catalog.Review)}
}

func (r *fakeReviewRepo) all() []*catalog.Review {
	out := make([]*catalog.Review, 0, len(r.items))
	for _, rv := range r.items {
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id int64) (*catalog.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *fakeReviewRepo) FindByInstrumentID(_ context.Context, instrumentID int64) ([]*catalog.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Review
	for _, rv := range r.all() {
		if rv.InstrumentID == instrumentID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) FindByRating(_ context.Context, rating int) ([]*catalog.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Review
	for _, rv := range r.all() {
		if rv.Rating == rating {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) FindByMinRating(_ context.Context, minRating int) ([]*catalog.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*catalog.Review
	for _, rv := range r.all() {
		if rv.Rating >= minRating {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) FindByAuthorContaining(_ context.Context, authorName string) ([]*catalog.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(authorName)
	var out []*catalog.Review
	for _, rv := range r.all() {
		if strings.Contains(strings.ToLower(rv.AuthorName), needle) {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Insert(_ context.Context, rv *catalog.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rv.ID = r.nextID
	r.items[rv.ID] = rv
	return nil
}

func (r *fakeReviewRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeReviewRepo) DeleteByInstrumentID(_ context.Context, instrumentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rv := range r.items {
		if rv.InstrumentID == instrumentID {
			delete(r.items, id)
		}
	}
	return nil
}
