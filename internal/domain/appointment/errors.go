package appointment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound  = errors.New("appointment not found")
	ErrForbidden = errors.New("operation not permitted for this role")
	// ErrSlotConflict: another patient already holds this date and time.
	ErrSlotConflict = errors.New("this time slot is already taken")
	// ErrPatientSlotConflict: the same patient already booked this slot.
	ErrPatientSlotConflict = errors.New("patient already has an appointment at this date and time")
	// ErrInvalidState: transition out of a terminal status.
	ErrInvalidState = errors.New("appointment status no longer allows this change")
)

// ValidationError carries per-field messages so the handler can render a
// field-keyed error payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidSlot() *ValidationError {
	return &ValidationError{Fields: map[string]string{
		"time": fmt.Sprintf("time must be between %s and %s", SlotWindowStart, SlotWindowEnd),
	}}
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
