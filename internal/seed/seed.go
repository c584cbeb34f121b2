// Package seed populates an empty database with a sample catalog so a fresh
// deployment has something to browse.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/storage"
)

// Seeder writes the sample data through the repositories directly; the cache
// store is still empty at startup, so there is nothing to invalidate.
type Seeder struct {
	categories  storage.CategoryRepository
	instruments storage.InstrumentRepository
	customers   storage.CustomerRepository
	reviews     storage.ReviewRepository
	logger      *slog.Logger
}

// New creates a seeder over the four repositories.
func New(categories storage.CategoryRepository, instruments storage.InstrumentRepository,
	customers storage.CustomerRepository, reviews storage.ReviewRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		categories:  categories,
		instruments: instruments,
		customers:   customers,
		reviews:     reviews,
		logger:      logger,
	}
}

// Run populates the database unless it already holds data. Existing
// categories are the emptiness probe, as the first thing seeding creates.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return fmt.Errorf("probe categories: %w", err)
	}
	if count > 0 {
		s.logger.Info("seed skipped, database already populated")
		return nil
	}

	categoryIDs, err := s.seedCategories(ctx)
	if err != nil {
		return err
	}
	instruments, err := s.seedInstruments(ctx, categoryIDs)
	if err != nil {
		return err
	}
	customers, err := s.seedCustomers(ctx)
	if err != nil {
		return err
	}
	if err := s.seedReviews(ctx, instruments, customers); err != nil {
		return err
	}

	s.logger.Info("database populated with sample data")
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context) (map[string]int64, error) {
	rows := []struct{ name, description string }{
		{"Guitars", "String instruments"},
		{"Pianos", "Keyboard instruments"},
		{"Percussion", "Percussion instruments"},
		{"Wind Instruments", "Wind instruments"},
		{"Basses", "Bass instruments"},
	}
	ids := make(map[string]int64, len(rows))
	for _, row := range rows {
		c := &catalog.Category{Name: row.name, Description: row.description}
		if err := s.categories.Insert(ctx, c); err != nil {
			return nil, fmt.Errorf("seed category %q: %w", row.name, err)
		}
		ids[row.name] = c.ID
	}
	return ids, nil
}

func (s *Seeder) seedInstruments(ctx context.Context, categoryIDs map[string]int64) ([]*catalog.Instrument, error) {
	rows := []struct {
		name, brand, price string
		typ                catalog.InstrumentType
		condition          catalog.Condition
		stock              int
		description        string
		category           string
	}{
		{"Fender Stratocaster", "Fender", "1299.99", catalog.TypeGuitar, catalog.ConditionNew, 15, "Classic electric guitar with versatile sound", "Guitars"},
		{"Gibson Les Paul", "Gibson", "2499.99", catalog.TypeGuitar, catalog.ConditionNew, 8, "Electric guitar with warm tone and exceptional sustain", "Guitars"},
		{"Taylor 214ce", "Taylor", "899.99", catalog.TypeGuitar, catalog.ConditionNew, 12, "Acoustic guitar with integrated electronics", "Guitars"},
		{"Yamaha C40", "Yamaha", "199.99", catalog.TypeGuitar, catalog.ConditionNew, 20, "Classical guitar perfect for beginners", "Guitars"},
		{"Roland FP-30X", "Roland", "699.99", catalog.TypePiano, catalog.ConditionNew, 10, "Digital piano with 88 keys and realistic sound", "Pianos"},
		{"Yamaha P-45", "Yamaha", "499.99", catalog.TypePiano, catalog.ConditionNew, 8, "Compact digital piano with PHA-4 keys", "Pianos"},
		{"Kawai ES110", "Kawai", "799.99", catalog.TypePiano, catalog.ConditionExcellent, 6, "Digital piano with realistic hammer action", "Pianos"},
		{"Pearl Export", "Pearl", "599.99", catalog.TypeDrums, catalog.ConditionNew, 5, "Acoustic drum kit for beginners", "Percussion"},
		{"Alesis Nitro Mesh", "Alesis", "399.99", catalog.TypeDrums, catalog.ConditionNew, 8, "Electronic drum kit with mesh pads", "Percussion"},
		{"Yamaha YAS-280", "Yamaha", "899.99", catalog.TypeSaxophone, catalog.ConditionNew, 4, "Alto saxophone for students", "Wind Instruments"},
		{"Bach TR300", "Bach", "1299.99", catalog.TypeTrumpet, catalog.ConditionNew, 6, "Professional trumpet with bright sound", "Wind Instruments"},
		{"Yamaha YFL-222", "Yamaha", "699.99", catalog.TypeFlute, catalog.ConditionNew, 7, "Student transverse flute", "Wind Instruments"},
		{"1959 Gibson Les Paul", "Gibson", "45000.00", catalog.TypeGuitar, catalog.ConditionExcellent, 1, "Vintage 1959 guitar, collector's piece", "Guitars"},
		{"Fender Telecaster 52 Reissue", "Fender", "1899.99", catalog.TypeGuitar, catalog.ConditionNew, 3, "Reissue of the legendary 1952 Telecaster", "Guitars"},
		{"Steinway Model D", "Steinway", "85000.00", catalog.TypePiano, catalog.ConditionExcellent, 1, "Concert grand piano", "Pianos"},
	}

	instruments := make([]*catalog.Instrument, 0, len(rows))
	for _, row := range rows {
		categoryID := categoryIDs[row.category]
		inst := &catalog.Instrument{
			Name:          row.name,
			Brand:         row.brand,
			Price:         decimal.RequireFromString(row.price),
			Type:          row.typ,
			Condition:     row.condition,
			Description:   row.description,
			StockQuantity: row.stock,
			CategoryID:    &categoryID,
		}
		if err := s.instruments.Insert(ctx, inst); err != nil {
			return nil, fmt.Errorf("seed instrument %q: %w", row.name, err)
		}
		instruments = append(instruments, inst)
	}
	return instruments, nil
}

func (s *Seeder) seedCustomers(ctx context.Context) ([]*catalog.Customer, error) {
	rows := []struct{ first, last, email string }{
		{"John", "Smith", "john.smith@email.com"},
		{"Mary", "Johnson", "mary.johnson@email.com"},
		{"Carl", "Williams", "carl.williams@email.com"},
		{"Anna", "Brown", "anna.brown@email.com"},
		{"Louis", "Jones", "louis.jones@email.com"},
		{"Carmen", "Garcia", "carmen.garcia@email.com"},
		{"Michael", "Miller", "michael.miller@email.com"},
	}

	customers := make([]*catalog.Customer, 0, len(rows))
	for _, row := range rows {
		c := &catalog.Customer{
			FirstName:      row.first,
			LastName:       row.last,
			Email:          row.email,
			Phone:          fmt.Sprintf("+34%d", 600000000+rand.Intn(99999999)),
			Address:        fmt.Sprintf("Street %d, New York", rand.Intn(100)),
			TotalPurchases: decimal.NewFromFloat(rand.Float64() * 5000).Round(2),
			LoyaltyPoints:  rand.Intn(1000),
			Status:         catalog.StatusActive,
		}
		if err := s.customers.Insert(ctx, c); err != nil {
			return nil, fmt.Errorf("seed customer %q: %w", row.email, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (s *Seeder) seedReviews(ctx context.Context, instruments []*catalog.Instrument, customers []*catalog.Customer) error {
	comments := []string{
		"Excellent instrument, very good sound quality",
		"Perfect for beginners, very easy to play",
		"Professional sound, ideal for recordings",
		"Very good quality-price ratio",
		"Collector's item, unique sound",
		"Excellent for live concerts",
		"Very versatile, adapts to any style",
		"Exceptional build quality",
		"Warm and rich in harmonics",
		"Perfect for recording studios",
	}

	for i := 0; i < 50; i++ {
		inst := instruments[rand.Intn(len(instruments))]
		customer := customers[rand.Intn(len(customers))]
		review := &catalog.Review{
			Comment:      comments[rand.Intn(len(comments))],
			Rating:       rand.Intn(5) + 1,
			AuthorName:   customer.FullName(),
			AuthorEmail:  customer.Email,
			InstrumentID: inst.ID,
		}
		if err := s.reviews.Insert(ctx, review); err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
	}
	return nil
}
