package catalog

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Category groups instruments. The relation is a weak back-reference: an
// instrument points at a category id, the category holds no list of
// instruments and deleting one does not cascade.
type Category struct {
	bun.BaseModel `bun:"table:categories" json:"-"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at" json:"updatedAt"`
}

var _ bun.BeforeAppendModelHook = (*Category)(nil)

// BeforeAppendModel maintains the creation/update timestamps on persistence.
func (c *Category) BeforeAppendModel(_ context.Context, query bun.Query) error {
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
// Name uniqueness is enforced by storage, not here.
func (c *Category) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&c.Description, validation.Length(0, 500)),
	)
}
