package catalog

import (
	"context"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// CustomerStatus is the customer account state. There is no enforced
// transition graph: any status may be set from any other. Whether that is
// intentional or a missing business rule is an open question upstream; no
// transition table is invented here.
type CustomerStatus string

const (
	StatusActive    CustomerStatus = "ACTIVE"
	StatusInactive  CustomerStatus = "INACTIVE"
	StatusSuspended CustomerStatus = "SUSPENDED"
	StatusVIP       CustomerStatus = "VIP"
)

var customerStatuses = map[CustomerStatus]struct{}{
	StatusActive: {}, StatusInactive: {}, StatusSuspended: {}, StatusVIP: {},
}

// Valid reports whether s is a member of the enumeration.
func (s CustomerStatus) Valid() bool {
	_, ok := customerStatuses[s]
	return ok
}

// ParseCustomerStatus converts external input into a CustomerStatus.
func ParseCustomerStatus(s string) (CustomerStatus, error) {
	st := CustomerStatus(normalizeEnum(s))
	if !st.Valid() {
		return "", validation.NewError("validation_customer_status", "unknown customer status")
	}
	return st, nil
}

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Customer is a store customer. TotalPurchases and LoyaltyPoints only grow
// through AddPurchase/loyalty mutations; both are monotonically
// non-decreasing unless loyalty points are explicitly overwritten.
type Customer struct {
	bun.BaseModel `bun:"table:customers" json:"-"`

	ID             int64           `bun:"id,pk,autoincrement" json:"id"`
	FirstName      string          `bun:"first_name,notnull" json:"firstName"`
	LastName       string          `bun:"last_name,notnull" json:"lastName"`
	Email          string          `bun:"email,notnull,unique" json:"email"`
	Phone          string          `bun:"phone" json:"phone,omitempty"`
	Address        string          `bun:"address" json:"address,omitempty"`
	TotalPurchases decimal.Decimal `bun:"total_purchases,notnull,type:decimal(10,2)" json:"totalPurchases"`
	LoyaltyPoints  int             `bun:"loyalty_points,notnull" json:"loyaltyPoints"`
	Status         CustomerStatus  `bun:"status,notnull" json:"status"`
	CreatedAt      time.Time       `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt      time.Time       `bun:"updated_at" json:"updatedAt"`
}

var _ bun.BeforeAppendModelHook = (*Customer)(nil)

// BeforeAppendModel maintains the creation/update timestamps on persistence.
func (c *Customer) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		now := time.Now()
		c.CreatedAt = now
		c.UpdatedAt = now
	case *bun.UpdateQuery:
		c.UpdatedAt = time.Now()
	}
	return nil
}

// Validate checks the data contract before any persistence attempt.
func (c *Customer) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FirstName, validation.Required, validation.Length(2, 100)),
		validation.Field(&c.LastName, validation.Required, validation.Length(2, 100)),
		validation.Field(&c.Email, validation.Required, is.Email, validation.Length(0, 100)),
		validation.Field(&c.Phone, validation.Match(phonePattern)),
		validation.Field(&c.Address, validation.Length(0, 200)),
		validation.Field(&c.Status, validation.By(memberOfCustomerStatuses)),
	)
}

// FullName joins the name parts for display and review attribution.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AddPurchase records a purchase: the amount accumulates into the total and
// its integer part (decimal truncation, not rounding) lands on the loyalty
// balance.
func (c *Customer) AddPurchase(amount decimal.Decimal) {
	c.TotalPurchases = c.TotalPurchases.Add(amount)
	c.LoyaltyPoints += int(amount.IntPart())
}

// AddLoyaltyPoints credits points directly.
func (c *Customer) AddLoyaltyPoints(points int) {
	c.LoyaltyPoints += points
}

// IsActive reports whether the account is in the ACTIVE state.
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

func memberOfCustomerStatuses(value any) error {
	s, ok := value.(CustomerStatus)
	if !ok || !s.Valid() {
		return validation.NewError("validation_customer_status", "unknown customer status")
	}
	return nil
}
