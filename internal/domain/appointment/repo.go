package appointment

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	PatientID uuid.UUID
	From      Date
	To        Date
	Status    string
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	// ExistsAt reports whether any appointment other than excludeID occupies
	// the slot. Pass uuid.Nil to consider all rows.
	ExistsAt(ctx context.Context, date Date, t TimeOfDay, excludeID uuid.UUID) (bool, error)
	ExistsForPatientAt(ctx context.Context, patientID uuid.UUID, date Date, t TimeOfDay, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error)
}
