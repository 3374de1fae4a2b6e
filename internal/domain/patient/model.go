package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. The scheduling and consultation engines
// only need existence checks, a display name, and the residential address.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Street     *string    `db:"street" json:"street,omitempty"`
	Number     *string    `db:"number" json:"number,omitempty"`
	Complement *string    `db:"complement" json:"complement,omitempty"`
	District   *string    `db:"district" json:"district,omitempty"`
	City       *string    `db:"city" json:"city,omitempty"`
	State      *string    `db:"state" json:"state,omitempty"`
	PostalCode *string    `db:"postal_code" json:"postal_code,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Address carries a partial residential address update. Only non-nil,
// non-empty fields are applied; the rest of the stored address is untouched.
type Address struct {
	Street     *string `json:"street,omitempty"`
	Number     *string `json:"number,omitempty"`
	Complement *string `json:"complement,omitempty"`
	District   *string `json:"district,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

// IsZero reports whether the update carries nothing to apply.
func (a Address) IsZero() bool {
	for _, f := range []*string{a.Street, a.Number, a.Complement, a.District, a.City, a.State, a.PostalCode} {
		if f != nil && *f != "" {
			return false
		}
	}
	return true
}
