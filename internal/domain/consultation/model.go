package consultation

import (
	"time"

	"github.com/google/uuid"
)

// PriorNotesUnavailable replaces the prior-note snapshot when the previous
// record exists but its notes cannot be decrypted. It is stored as content,
// never the raw decryption sentinel.
const PriorNotesUnavailable = "Previous notes could not be loaded."

// Consultation is a session record. Note fields hold plaintext in memory;
// the storage layer encrypts them at rest. AppointmentID and ClinicianID are
// fixed at creation and never change.
type Consultation struct {
	ID              uuid.UUID `json:"id"`
	AppointmentID   uuid.UUID `json:"appointment_id"`
	ClinicianID     uuid.UUID `json:"clinician_id"`
	PriorNotes      *string   `json:"-"`
	CurrentNotes    string    `json:"-"`
	AttentionPoints *string   `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
