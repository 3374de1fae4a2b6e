package consultation

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/crypto"
)

// Display markers for note fields that cannot be shown as plaintext.
const (
	MarkerUndecryptable = "Unable to decrypt note."
	MarkerRestricted    = "ACCESS RESTRICTED"
)

type NoteState int

const (
	NoteAbsent NoteState = iota
	NotePlaintext
	NoteUndecryptable
	NoteRestricted
)

// NoteValue is the presentation form of a protected note field. It renders
// as null, a fixed marker, or the plaintext, depending on its state.
type NoteValue struct {
	State NoteState
	Text  string
}

func (v NoteValue) MarshalJSON() ([]byte, error) {
	switch v.State {
	case NoteAbsent:
		return []byte("null"), nil
	case NoteUndecryptable:
		return json.Marshal(MarkerUndecryptable)
	case NoteRestricted:
		return json.Marshal(MarkerRestricted)
	default:
		return json.Marshal(v.Text)
	}
}

// View is the outward shape of a consultation.
type View struct {
	ID              uuid.UUID `json:"id"`
	AppointmentID   uuid.UUID `json:"appointment_id"`
	ClinicianID     uuid.UUID `json:"clinician_id"`
	PriorNotes      NoteValue `json:"prior_notes"`
	CurrentNotes    NoteValue `json:"current_notes"`
	AttentionPoints NoteValue `json:"attention_points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func presentField(text *string, owner bool) NoteValue {
	if text == nil {
		return NoteValue{State: NoteAbsent}
	}
	if *text == crypto.DecryptFailed {
		return NoteValue{State: NoteUndecryptable}
	}
	if !owner {
		return NoteValue{State: NoteRestricted}
	}
	return NoteValue{State: NotePlaintext, Text: *text}
}

// Present maps a consultation to its caller-facing view. Only the owning
// clinician sees plaintext; every other caller sees the restricted marker.
// A value that failed to decrypt shows the decryption marker to everyone.
// The result depends on nothing but the record and the caller, so rendering
// the same record twice for the same caller gives the same view.
func Present(c *Consultation, caller auth.Identity) View {
	owner := caller.IsClinician() && caller.ID == c.ClinicianID
	current := c.CurrentNotes
	return View{
		ID:              c.ID,
		AppointmentID:   c.AppointmentID,
		ClinicianID:     c.ClinicianID,
		PriorNotes:      presentField(c.PriorNotes, owner),
		CurrentNotes:    presentField(&current, owner),
		AttentionPoints: presentField(c.AttentionPoints, owner),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
