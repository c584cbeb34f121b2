package di

import (
	"github.com/uptrace/bun"

	"github.com/harmonia/music-store/cache"
	"github.com/harmonia/music-store/service"
	"github.com/harmonia/music-store/storage"
)

// Container wires the catalog components with explicit constructor-supplied
// dependencies: config -> cache store -> repositories -> services. There is
// no ambient registry; everything a service needs arrives through here.
type Container struct {
	store cache.Store

	instrumentRepo storage.InstrumentRepository
	customerRepo   storage.CustomerRepository
	categoryRepo   storage.CategoryRepository
	reviewRepo     storage.ReviewRepository

	instruments *service.InstrumentService
	customers   *service.CustomerService
	categories  *service.CategoryService
	reviews     *service.ReviewService
}

// NewContainer builds the full object graph on top of an open database.
func NewContainer(db *bun.DB, cacheCfg cache.Config) (*Container, error) {
	store, err := cache.NewStore(cacheCfg)
	if err != nil {
		return nil, err
	}

	c := &Container{
		store:          store,
		instrumentRepo: storage.NewInstrumentRepository(db),
		customerRepo:   storage.NewCustomerRepository(db),
		categoryRepo:   storage.NewCategoryRepository(db),
		reviewRepo:     storage.NewReviewRepository(db),
	}

	c.instruments = service.NewInstrumentService(c.instrumentRepo, c.reviewRepo, store)
	c.customers = service.NewCustomerService(c.customerRepo, store)
	c.categories = service.NewCategoryService(c.categoryRepo, store)
	c.reviews = service.NewReviewService(c.reviewRepo, c.instrumentRepo)

	return c, nil
}

// NewContainerWithDefaults builds the graph with the default cache config.
func NewContainerWithDefaults(db *bun.DB) (*Container, error) {
	return NewContainer(db, cache.DefaultConfig())
}

// Store returns the shared cache store instance.
func (c *Container) Store() cache.Store { return c.store }

// Instruments returns the instrument service.
func (c *Container) Instruments() *service.InstrumentService { return c.instruments }

// Customers returns the customer service.
func (c *Container) Customers() *service.CustomerService { return c.customers }

// Categories returns the category service.
func (c *Container) Categories() *service.CategoryService { return c.categories }

// Reviews returns the review service.
func (c *Container) Reviews() *service.ReviewService { return c.reviews }

// InstrumentRepository exposes the repository for seeding and tests.
func (c *Container) InstrumentRepository() storage.InstrumentRepository { return c.instrumentRepo }

// CustomerRepository exposes the repository for seeding and tests.
func (c *Container) CustomerRepository() storage.CustomerRepository { return c.customerRepo }

// CategoryRepository exposes the repository for seeding and tests.
func (c *Container) CategoryRepository() storage.CategoryRepository { return c.categoryRepo }

// ReviewRepository exposes the repository for seeding and tests.
func (c *Container) ReviewRepository() storage.ReviewRepository { return c.reviewRepo }
