package catalog

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// InstrumentType is the closed enumeration of instrument kinds.
type InstrumentType string

const (
	TypeGuitar     InstrumentType = "GUITAR"
	TypePiano      InstrumentType = "PIANO"
	TypeDrums      InstrumentType = "DRUMS"
	TypeBass       InstrumentType = "BASS"
	TypeViolin     InstrumentType = "VIOLIN"
	TypeSaxophone  InstrumentType = "SAXOPHONE"
	TypeTrumpet    InstrumentType = "TRUMPET"
	TypeFlute      InstrumentType = "FLUTE"
	TypeKeyboard   InstrumentType = "KEYBOARD"
	TypeAccordion  InstrumentType = "ACCORDION"
	TypeHarmonica  InstrumentType = "HARMONICA"
	TypeUkulele    InstrumentType = "UKULELE"
	TypeBanjo      InstrumentType = "BANJO"
	TypeMandolin   InstrumentType = "MANDOLIN"
	TypeCello      InstrumentType = "CELLO"
	TypeClarinet   InstrumentType = "CLARINET"
	TypeOboe       InstrumentType = "OBOE"
	TypeTrombone   InstrumentType = "TROMBONE"
	TypeTuba       InstrumentType = "TUBA"
	TypePercussion InstrumentType = "PERCUSSION"
)

var instrumentTypes = map[InstrumentType]struct{}{
	TypeGuitar: {}, TypePiano: {}, TypeDrums: {}, TypeBass: {},
	TypeViolin: {}, TypeSaxophone: {}, TypeTrumpet: {}, TypeFlute: {},
	TypeKeyboard: {}, TypeAccordion: {}, TypeHarmonica: {}, TypeUkulele: {},
	TypeBanjo: {}, TypeMandolin: {}, TypeCello: {}, TypeClarinet: {},
	TypeOboe: {}, TypeTrombone: {}, TypeTuba: {}, TypePercussion: {},
}

// Valid reports whether t is a member of the enumeration.
func (t InstrumentType) Valid() bool {
	_, ok := instrumentTypes[t]
	return ok
}

// ParseInstrumentType converts external input into an InstrumentType.
func ParseInstrumentType(s string) (InstrumentType, error) {
	t := InstrumentType(normalizeEnum(s))
	if !t.Valid() {
		return "", validation.NewError("validation_instrument_type", "unknown instrument type")
	}
	return t, nil
}

// Condition is a 5-level ordinal describing physical state.
type Condition string

const (
	ConditionNew       Condition = "NEW"
	ConditionExcellent Condition = "EXCELLENT"
	ConditionGood      Condition = "GOOD"
	ConditionFair      Condition = "FAIR"
	ConditionPoor      Condition = "POOR"
)

var conditions = map[Condition]struct{}{
	ConditionNew: {}, ConditionExcellent: {}, ConditionGood: {},
	ConditionFair: {}, ConditionPoor: {},
}

// Valid reports whether c is a member of the enumeration.
func (c Condition) Valid() bool {
	_, ok := conditions[c]
	return ok
}

// ParseCondition converts external input into a Condition.
func ParseCondition(s string) (Condition, error) {
	c := Condition(normalizeEnum(s))
	if !c.Valid() {
		return "", validation.NewError("validation_condition", "unknown condition")
	}
	return c, nil
}

// minPrice is the smallest representable price: one cent.
var minPrice = decimal.New(1, -2)

// Instrument is a catalog item. CategoryID is a weak back-reference; the
// category does not own its instruments.
type Instrument struct {
	bun.BaseModel `bun:"table:instruments" json:"-"`

	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	Name          string          `bun:"name,notnull" json:"name"`
	Brand         string          `bun:"brand,notnull" json:"brand"`
	Price         decimal.Decimal `bun:"price,notnull,type:decimal(10,2)" json:"price"`
	Type          InstrumentType  `bun:"type,notnull" json:"type"`
	Condition     Condition       `bun:"condition,notnull" json:"condition"`
	Description   string          `bun:"description" json:"description,omitempty"`
	StockQuantity int             `bun:"stock_quantity,notnull" json:"stockQuantity"`
	CategoryID    *int64          `bun:"category_id" json:"categoryId,omitempty"`
	CreatedAt     time.Time       `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time       `bun:"updated_at" json:"updatedAt"`
}

var _ bun.BeforeAppendModelHook = (*Instrument)(nil)

// BeforeAppendModel maintains the creation/update timestamps on persistence.
func (i *Instrument) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		now := time.Now()
		i.CreatedAt = now
		i.UpdatedAt = now
	case *bun.UpdateQuery:
		i.UpdatedAt = time.Now()
	}
	return nil
}

// Validate checks the data contract before any persistence attempt.
func (i *Instrument) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&i.Brand, validation.Required, validation.Length(2, 50)),
		validation.Field(&i.Price, validation.By(positivePrice)),
		validation.Field(&i.Type, validation.By(memberOfInstrumentTypes)),
		validation.Field(&i.Condition, validation.By(memberOfConditions)),
		validation.Field(&i.Description, validation.Length(0, 500)),
		validation.Field(&i.StockQuantity, validation.Min(0)),
	)
}

// InStock reports whether any units are available.
func (i *Instrument) InStock() bool {
	return i.StockQuantity > 0
}

// AddStock adds quantity to the available stock.
func (i *Instrument) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock removes quantity units, refusing to underflow. It returns false
// and leaves the stock untouched when fewer than quantity units are left.
// UpdateStock at the service layer deliberately has no such guard.
func (i *Instrument) RemoveStock(quantity int) bool {
	if i.StockQuantity < quantity {
		return false
	}
	i.StockQuantity -= quantity
	return true
}

func positivePrice(value any) error {
	price, ok := value.(decimal.Decimal)
	if !ok || price.LessThan(minPrice) {
		return validation.NewError("validation_price", "price must be at least 0.01")
	}
	return nil
}

func memberOfInstrumentTypes(value any) error {
	t, ok := value.(InstrumentType)
	if !ok || !t.Valid() {
		return validation.NewError("validation_instrument_type", "unknown instrument type")
	}
	return nil
}

func memberOfConditions(value any) error {
	c, ok := value.(Condition)
	if !ok || !c.Valid() {
		return validation.NewError("validation_condition", "unknown condition")
	}
	return nil
}
