package consultation

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/appointment"
)

type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)
	// Update persists the mutable note fields only.
	Update(ctx context.Context, c *Consultation) error
	ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)
	// LatestNotesBefore returns the current notes of the patient's most
	// recent consultation whose appointment date is strictly before date,
	// breaking same-day ties by appointment time. found is false when the
	// patient has no earlier record.
	LatestNotesBefore(ctx context.Context, patientID uuid.UUID, date appointment.Date) (notes string, found bool, err error)
	ListByClinician(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]*Consultation, int, error)
}
