package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/catalog"
)

// Repositories provide single-entity atomicity: each call is one statement
// against the database. Absence is reported as (nil, nil), never as an error;
// mutation helpers report absence through their found flag. Inserts assign
// the store-generated identity on the passed model.

// InstrumentRepository is the rich query surface over catalog items.
type InstrumentRepository interface {
	FindAll(ctx context.Context) ([]*catalog.Instrument, error)
	FindByID(ctx context.Context, id int64) (*catalog.Instrument, error)
	FindByNameContaining(ctx context.Context, name string) ([]*catalog.Instrument, error)
	FindByBrandContaining(ctx context.Context, brand string) ([]*catalog.Instrument, error)
	FindByType(ctx context.Context, t catalog.InstrumentType) ([]*catalog.Instrument, error)
	FindByCondition(ctx context.Context, c catalog.Condition) ([]*catalog.Instrument, error)
	FindByStockGreaterThan(ctx context.Context, quantity int) ([]*catalog.Instrument, error)
	FindByStockAtMost(ctx context.Context, quantity int) ([]*catalog.Instrument, error)
	FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]*catalog.Instrument, error)
	FindByTypeAndPriceBetween(ctx context.Context, t catalog.InstrumentType, min, max decimal.Decimal) ([]*catalog.Instrument, error)
	FindByBrandAndType(ctx context.Context, brand string, t catalog.InstrumentType) ([]*catalog.Instrument, error)
	FindPage(ctx context.Context, page, size int, sortField string) ([]*catalog.Instrument, int, error)
	CountByType(ctx context.Context, t catalog.InstrumentType) (int64, error)
	Insert(ctx context.Context, inst *catalog.Instrument) error
	Update(ctx context.Context, inst *catalog.Instrument) error
	DeleteByID(ctx context.Context, id int64) error

	// SetStock overwrites the absolute stock quantity. No non-negative check
	// is applied here; the entity-level RemoveStock guard is the only place
	// that refuses underflow.
	SetStock(ctx context.Context, id int64, quantity int) (bool, error)
	// IncrementStock adds delta to the stored quantity in a single statement.
	IncrementStock(ctx context.Context, id int64, delta int) (bool, error)
}

// CustomerRepository is the query surface over customers.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*catalog.Customer, error)
	FindByID(ctx context.Context, id int64) (*catalog.Customer, error)
	FindByEmail(ctx context.Context, email string) (*catalog.Customer, error)
	FindByNameContaining(ctx context.Context, name string) ([]*catalog.Customer, error)
	FindByStatus(ctx context.Context, status catalog.CustomerStatus) ([]*catalog.Customer, error)
	FindByMinLoyaltyPoints(ctx context.Context, minPoints int) ([]*catalog.Customer, error)
	Insert(ctx context.Context, c *catalog.Customer) error
	Update(ctx context.Context, c *catalog.Customer) error
	DeleteByID(ctx context.Context, id int64) error

	// AddPurchase accumulates amount onto the purchase total and points onto
	// the loyalty balance in one statement, so concurrent purchases are
	// serialized by the database and never lose an update.
	AddPurchase(ctx context.Context, id int64, amount decimal.Decimal, points int) (bool, error)
	IncrementLoyaltyPoints(ctx context.Context, id int64, points int) (bool, error)
	SetStatus(ctx context.Context, id int64, status catalog.CustomerStatus) (bool, error)
}

// CategoryRepository is the query surface over categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*catalog.Category, error)
	FindByID(ctx context.Context, id int64) (*catalog.Category, error)
	FindByName(ctx context.Context, name string) (*catalog.Category, error)
	FindByNameContaining(ctx context.Context, name string) ([]*catalog.Category, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, c *catalog.Category) error
	Update(ctx context.Context, c *catalog.Category) error
	DeleteByID(ctx context.Context, id int64) error
}

// ReviewRepository is the query surface over reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id int64) (*catalog.Review, error)
	FindByInstrumentID(ctx context.Context, instrumentID int64) ([]*catalog.Review, error)
	FindByRating(ctx context.Context, rating int) ([]*catalog.Review, error)
	FindByMinRating(ctx context.Context, minRating int) ([]*catalog.Review, error)
	FindByAuthorContaining(ctx context.Context, authorName string) ([]*catalog.Review, error)
	Insert(ctx context.Context, r *catalog.Review) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByInstrumentID(ctx context.Context, instrumentID int64) error
}
