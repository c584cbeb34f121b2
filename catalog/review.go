package catalog

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// Review is owned by the instrument it references; deleting an instrument
// orphans nothing because reviews are deleted with it at the service layer.
type Review struct {
	bun.BaseModel `bun:"table:reviews" json:"-"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Comment      string    `bun:"comment,notnull" json:"comment"`
	Rating       int       `bun:"rating,notnull" json:"rating"`
	AuthorName   string    `bun:"author_name,notnull" json:"authorName"`
	AuthorEmail  string    `bun:"author_email" json:"authorEmail,omitempty"`
	InstrumentID int64     `bun:"instrument_id,notnull" json:"instrumentId"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at" json:"updatedAt"`
}

var _ bun.BeforeAppendModelHook = (*Review)(nil)

// BeforeAppendModel maintains the creation/update timestamps on persistence.
func (r *Review) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		now := time.Now()
		r.CreatedAt = now
		r.UpdatedAt = now
	case *bun.UpdateQuery:
		r.UpdatedAt = time.Now()
	}
	return nil
}

// Validate checks the data contract before any persistence attempt.
func (r *Review) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Comment, validation.Required, validation.Length(10, 500)),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.AuthorName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.AuthorEmail, is.Email, validation.Length(0, 100)),
		validation.Field(&r.InstrumentID, validation.Required),
	)
}
