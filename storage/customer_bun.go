package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/harmonia/music-store/catalog"
)

type bunCustomerRepository struct {
	db *bun.DB
}

// NewCustomerRepository returns the bun-backed customer repository.
func NewCustomerRepository(db *bun.DB) CustomerRepository {
	return &bunCustomerRepository{db: db}
}

func (r *bunCustomerRepository) FindAll(ctx context.Context) ([]*catalog.Customer, error) {
	var customers []*catalog.Customer
	if err := r.db.NewSelect().Model(&customers).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *bunCustomerRepository) FindByID(ctx context.Context, id int64) (*catalog.Customer, error) {
	c := new(catalog.Customer)
	err := r.db.NewSelect().Model(c).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *bunCustomerRepository) FindByEmail(ctx context.Context, email string) (*catalog.Customer, error) {
	c := new(catalog.Customer)
	err := r.db.NewSelect().Model(c).Where("lower(email) = lower(?)", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *bunCustomerRepository) FindByNameContaining(ctx context.Context, name string) ([]*catalog.Customer, error) {
	pattern := containsPattern(name)
	var customers []*catalog.Customer
	err := r.db.NewSelect().Model(&customers).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("lower(first_name) LIKE ?", pattern).
				WhereOr("lower(last_name) LIKE ?", pattern)
		}).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *bunCustomerRepository) FindByStatus(ctx context.Context, status catalog.CustomerStatus) ([]*catalog.Customer, error) {
	var customers []*catalog.Customer
	err := r.db.NewSelect().Model(&customers).Where("status = ?", status).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *bunCustomerRepository) FindByMinLoyaltyPoints(ctx context.Context, minPoints int) ([]*catalog.Customer, error) {
	var customers []*catalog.Customer
	err := r.db.NewSelect().Model(&customers).Where("loyalty_points >= ?", minPoints).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *bunCustomerRepository) Insert(ctx context.Context, c *catalog.Customer) error {
	_, err := r.db.NewInsert().Model(c).Exec(ctx)
	return err
}

func (r *bunCustomerRepository) Update(ctx context.Context, c *catalog.Customer) error {
	// created_at is written once on insert and never updated.
	_, err := r.db.NewUpdate().Model(c).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return err
}

func (r *bunCustomerRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*catalog.Customer)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *bunCustomerRepository) AddPurchase(ctx context.Context, id int64, amount decimal.Decimal, points int) (bool, error) {
	res, err := r.db.NewUpdate().Model((*catalog.Customer)(nil)).
		Set("total_purchases = total_purchases + ?", amount).
		Set("loyalty_points = loyalty_points + ?", points).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res), nil
}

func (r *bunCustomerRepository) IncrementLoyaltyPoints(ctx context.Context, id int64, points int) (bool, error) {
	res, err := r.db.NewUpdate().Model((*catalog.Customer)(nil)).
		Set("loyalty_points = loyalty_points + ?", points).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res), nil
}

func (r *bunCustomerRepository) SetStatus(ctx context.Context, id int64, status catalog.CustomerStatus) (bool, error) {
	res, err := r.db.NewUpdate().Model((*catalog.Customer)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res), nil
}
