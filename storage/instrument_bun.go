package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/harmonia/music-store/catalog"
)

type bunInstrumentRepository struct {
	db *bun.DB
}

// NewInstrumentRepository returns the bun-backed instrument repository.
func NewInstrumentRepository(db *bun.DB) InstrumentRepository {
	return &bunInstrumentRepository{db: db}
}

// pageSortColumns whitelists sortable fields; anything else falls back to
// name so caller-supplied sort fields can never reach the SQL text.
var pageSortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"brand":         "brand",
	"price":         "price",
	"type":          "type",
	"stockQuantity": "stock_quantity",
	"createdAt":     "created_at",
}

func (r *bunInstrumentRepository) FindAll(ctx context.Context) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	if err := r.db.NewSelect().Model(&items).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByID(ctx context.Context, id int64) (*catalog.Instrument, error) {
	inst := new(catalog.Instrument)
	err := r.db.NewSelect().Model(inst).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (r *bunInstrumentRepository) FindByNameContaining(ctx context.Context, name string) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).
		Where("lower(name) LIKE ?", containsPattern(name)).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByBrandContaining(ctx context.Context, brand string) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).
		Where("lower(brand) LIKE ?", containsPattern(brand)).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByType(ctx context.Context, t catalog.InstrumentType) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).Where("type = ?", t).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByCondition(ctx context.Context, c catalog.Condition) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).Where("condition = ?", c).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByStockGreaterThan(ctx context.Context, quantity int) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).Where("stock_quantity > ?", quantity).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByStockAtMost(ctx context.Context, quantity int) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).Where("stock_quantity <= ?", quantity).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).
		Where("price >= ?", min).Where("price <= ?", max).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByTypeAndPriceBetween(ctx context.Context, t catalog.InstrumentType, min, max decimal.Decimal) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).
		Where("type = ?", t).
		Where("price >= ?", min).Where("price <= ?", max).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindByBrandAndType(ctx context.Context, brand string, t catalog.InstrumentType) ([]*catalog.Instrument, error) {
	var items []*catalog.Instrument
	err := r.db.NewSelect().Model(&items).
		Where("lower(brand) = lower(?)", brand).
		Where("type = ?", t).
		Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bunInstrumentRepository) FindPage(ctx context.Context, page, size int, sortField string) ([]*catalog.Instrument, int, error) {
	column, ok := pageSortColumns[sortField]
	if !ok {
		column = "name"
	}
	var items []*catalog.Instrument
	total, err := r.db.NewSelect().Model(&items).
		Order(column + " ASC").
		Limit(size).Offset(page * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *bunInstrumentRepository) CountByType(ctx context.Context, t catalog.InstrumentType) (int64, error) {
	count, err := r.db.NewSelect().Model((*catalog.Instrument)(nil)).Where("type = ?", t).Count(ctx)
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

func (r *bunInstrumentRepository) Insert(ctx context.Context, inst *catalog.Instrument) error {
	_, err := r.db.NewInsert().Model(inst).Exec(ctx)
	return err
}

func (r *bunInstrumentRepository) Update(ctx context.Context, inst *catalog.Instrument) error {
	// created_at is written once on insert and never updated.
	_, err := r.db.NewUpdate().Model(inst).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return err
}

func (r *bunInstrumentRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*catalog.Instrument)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *bunInstrumentRepository) SetStock(ctx context.Context, id int64, quantity int) (bool, error) {
	res, err := r.db.NewUpdate().Model((*catalog.Instrument)(nil)).
		Set("stock_quantity = ?", quantity).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res), nil
}

func (r *bunInstrumentRepository) IncrementStock(ctx context.Context, id int64, delta int) (bool, error) {
	res, err := r.db.NewUpdate().Model((*catalog.Instrument)(nil)).
		Set("stock_quantity = stock_quantity + ?", delta).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res), nil
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func affected(res sql.Result) bool {
	n, err := res.RowsAffected()
	return err == nil && n > 0
}
