package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validInstrument() *Instrument {
	return &Instrument{
		Name:          "Yamaha C40",
		Brand:         "Yamaha",
		Price:         decimal.RequireFromString("199.99"),
		Type:          TypeGuitar,
		Condition:     ConditionNew,
		Description:   "Classical guitar perfect for beginners",
		StockQuantity: 20,
	}
}

func TestInstrumentValidate(t *testing.T) {
	if err := validInstrument().Validate(); err != nil {
		t.Fatalf("valid instrument rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Instrument)
	}{
		{"empty name", func(i *Instrument) { i.Name = "" }},
		{"name too short", func(i *Instrument) { i.Name = "X" }},
		{"empty brand", func(i *Instrument) { i.Brand = "" }},
		{"zero price", func(i *Instrument) { i.Price = decimal.Zero }},
		{"negative price", func(i *Instrument) { i.Price = decimal.RequireFromString("-1") }},
		{"sub-cent price", func(i *Instrument) { i.Price = decimal.RequireFromString("0.001") }},
		{"unknown type", func(i *Instrument) { i.Type = "KAZOO" }},
		{"unknown condition", func(i *Instrument) { i.Condition = "MINT" }},
		{"negative stock", func(i *Instrument) { i.StockQuantity = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := validInstrument()
			tt.mutate(inst)
			if err := inst.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestInstrumentValidateMinimumPrice(t *testing.T) {
	inst := validInstrument()
	inst.Price = decimal.RequireFromString("0.01")
	if err := inst.Validate(); err != nil {
		t.Errorf("one cent is the minimum valid price, got %v", err)
	}
}

func TestParseInstrumentType(t *testing.T) {
	got, err := ParseInstrumentType("  guitar ")
	if err != nil {
		t.Fatalf("ParseInstrumentType: %v", err)
	}
	if got != TypeGuitar {
		t.Errorf("expected %q, got %q", TypeGuitar, got)
	}

	if _, err := ParseInstrumentType("theremin"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestParseCondition(t *testing.T) {
	got, err := ParseCondition("excellent")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if got != ConditionExcellent {
		t.Errorf("expected %q, got %q", ConditionExcellent, got)
	}

	if _, err := ParseCondition("mint"); err == nil {
		t.Error("expected error for unknown condition")
	}
}

func TestInstrumentStockHelpers(t *testing.T) {
	inst := validInstrument()
	inst.StockQuantity = 2

	if !inst.InStock() {
		t.Error("expected in stock")
	}

	inst.AddStock(3)
	if inst.StockQuantity != 5 {
		t.Errorf("expected 5, got %d", inst.StockQuantity)
	}

	if !inst.RemoveStock(5) {
		t.Error("removing exactly the available stock should succeed")
	}
	if inst.StockQuantity != 0 {
		t.Errorf("expected 0, got %d", inst.StockQuantity)
	}
	if inst.InStock() {
		t.Error("expected out of stock")
	}

	if inst.RemoveStock(1) {
		t.Error("removing below zero must be refused")
	}
	if inst.StockQuantity != 0 {
		t.Errorf("refused removal must not change stock, got %d", inst.StockQuantity)
	}
}
