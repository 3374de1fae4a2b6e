package consultation

import "errors"

var (
	ErrNotFound            = errors.New("consultation not found")
	ErrForbidden           = errors.New("only the treating clinician may do this")
	ErrNotesRequired       = errors.New("current_notes is required")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOpen  = errors.New("appointment is not open for recording")
	// ErrAlreadyRecorded: the appointment already has its session record.
	ErrAlreadyRecorded = errors.New("appointment already has a consultation")
)
