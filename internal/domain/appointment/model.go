package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. OPEN is the only non-terminal state: an appointment
// closes when its consultation is recorded, or gets cancelled, and never
// leaves either of those states.
const (
	StatusOpen      = "OPEN"
	StatusClosed    = "CLOSED"
	StatusCancelled = "CANCELLED"
)

func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed || s == StatusCancelled
}

// CanTransition reports whether an appointment may move from one status to
// another. Keeping the same status is always allowed; CLOSED and CANCELLED
// are terminal.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return from == StatusOpen && (to == StatusClosed || to == StatusCancelled)
}

// Slot window for the practice. Both bounds are bookable.
const (
	SlotWindowStart TimeOfDay = "08:00"
	SlotWindowEnd   TimeOfDay = "17:00"
)

// TimeOfDay is a wall-clock time in zero-padded "HH:MM" form. The zero
// padding makes lexicographic comparison agree with chronological order.
type TimeOfDay string

// ParseTimeOfDay normalizes s into a TimeOfDay, accepting "HH:MM" and
// "HH:MM:SS" (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Format("15:04")), nil
		}
	}
	return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
}

// InWorkingHours reports whether t falls inside the bookable window.
func (t TimeOfDay) InWorkingHours() bool {
	return t >= SlotWindowStart && t <= SlotWindowEnd
}

// Date is a civil date in "YYYY-MM-DD" form. Like TimeOfDay, lexicographic
// comparison agrees with chronological order.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date(t.Format("2006-01-02")), nil
}

// Appointment maps to the appointment table. PatientName is denormalized
// from the patient table on reads and never written back.
type Appointment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	PatientName string     `db:"-" json:"patient_name,omitempty"`
	Date        Date       `db:"appt_date" json:"date"`
	Time        TimeOfDay  `db:"appt_time" json:"time"`
	Status      string     `db:"status" json:"status"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	CreatedBy   *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	ModifiedBy  *uuid.UUID `db:"modified_by" json:"modified_by,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
