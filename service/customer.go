package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/cache"
	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/storage"
)

const customerNamespace = "customers"

// CustomerService wraps the customer repository behind the cache store.
// Identity and exact-email lookups are cached (positive results only); the
// loyalty-point and substring searches are not. All writes, including the
// purchase and loyalty mutations, evict the whole namespace.
type CustomerService struct {
	repo  storage.CustomerRepository
	store cache.Store
}

// NewCustomerService wires the service with its repository and cache.
func NewCustomerService(repo storage.CustomerRepository, store cache.Store) *CustomerService {
	return &CustomerService{repo: repo, store: store}
}

// GetAll returns every customer, serving the cached listing when present.
func (s *CustomerService) GetAll(ctx context.Context) ([]*catalog.Customer, error) {
	if customers, ok := cache.Lookup[[]*catalog.Customer](s.store, customerNamespace, cache.KeyAll); ok {
		return customers, nil
	}
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Put(customerNamespace, cache.KeyAll, customers)
	return customers, nil
}

// GetByID returns the customer or nil when absent. Absence is never cached.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*catalog.Customer, error) {
	key := idKey(id)
	if c, ok := cache.Lookup[*catalog.Customer](s.store, customerNamespace, key); ok {
		return c, nil
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	s.store.Put(customerNamespace, key, c)
	return c, nil
}

// GetByEmail looks a customer up by their unique email, case-insensitively.
// A miss is returned as nil and not cached, so a customer created with that
// email afterwards is visible on the very next lookup.
func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*catalog.Customer, error) {
	key := cache.Key("email", email)
	if c, ok := cache.Lookup[*catalog.Customer](s.store, customerNamespace, key); ok {
		return c, nil
	}
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil || c == nil {
		return nil, err
	}
	s.store.Put(customerNamespace, key, c)
	return c, nil
}

// GetByStatus returns customers in one account state, cached under the
// closed status enumeration.
func (s *CustomerService) GetByStatus(ctx context.Context, status catalog.CustomerStatus) ([]*catalog.Customer, error) {
	key := cache.Key("status", string(status))
	if customers, ok := cache.Lookup[[]*catalog.Customer](s.store, customerNamespace, key); ok {
		return customers, nil
	}
	customers, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	s.store.Put(customerNamespace, key, customers)
	return customers, nil
}

// SearchByName finds customers whose first or last name contains the
// fragment. Uncached.
func (s *CustomerService) SearchByName(ctx context.Context, name string) ([]*catalog.Customer, error) {
	return s.repo.FindByNameContaining(ctx, name)
}

// GetByMinLoyaltyPoints returns customers at or above a loyalty threshold.
// Uncached: integer thresholds form an unbounded key space.
func (s *CustomerService) GetByMinLoyaltyPoints(ctx context.Context, minPoints int) ([]*catalog.Customer, error) {
	return s.repo.FindByMinLoyaltyPoints(ctx, minPoints)
}

// Create validates and persists a new customer, then drops the namespace.
// Duplicate emails surface as the storage layer's conflict error.
func (s *CustomerService) Create(ctx context.Context, c *catalog.Customer) (*catalog.Customer, error) {
	if c.Status == "" {
		c.Status = catalog.StatusActive
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	s.store.EvictAll(customerNamespace)
	return c, nil
}

// Update persists changes to an existing customer, failing with
// catalog.ErrNotFound when the id does not exist.
func (s *CustomerService) Update(ctx context.Context, c *catalog.Customer) (*catalog.Customer, error) {
	existing, err := s.repo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, catalog.ErrNotFound
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	// Bound payloads carry no creation timestamp; keep the stored one.
	c.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.store.EvictAll(customerNamespace)
	return c, nil
}

// Delete removes the customer. Deleting an unknown id is not an error.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.store.EvictAll(customerNamespace)
	return nil
}

// AddPurchase accumulates amount onto the purchase total and credits
// floor(amount) loyalty points, truncating toward zero exactly like the
// stored total's decimal-to-integer conversion. The increment happens in one
// repository statement so concurrent purchases never lose an update.
func (s *CustomerService) AddPurchase(ctx context.Context, id int64, amount decimal.Decimal) error {
	found, err := s.repo.AddPurchase(ctx, id, amount, int(amount.IntPart()))
	if err != nil {
		return err
	}
	if !found {
		return catalog.ErrNotFound
	}
	s.store.EvictAll(customerNamespace)
	return nil
}

// AddLoyaltyPoints credits points directly, as one atomic increment.
func (s *CustomerService) AddLoyaltyPoints(ctx context.Context, id int64, points int) error {
	found, err := s.repo.IncrementLoyaltyPoints(ctx, id, points)
	if err != nil {
		return err
	}
	if !found {
		return catalog.ErrNotFound
	}
	s.store.EvictAll(customerNamespace)
	return nil
}

// UpdateStatus overwrites the account status. Any status may replace any
// other; no transition graph is enforced.
func (s *CustomerService) UpdateStatus(ctx context.Context, id int64, status catalog.CustomerStatus) error {
	found, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !found {
		return catalog.ErrNotFound
	}
	s.store.EvictAll(customerNamespace)
	return nil
}
