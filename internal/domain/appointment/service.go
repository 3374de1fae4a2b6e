package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/db"
)

type Service struct {
	repo     Repository
	patients patient.Repository
	tx       db.TxRunner
}

func NewService(repo Repository, patients patient.Repository, tx db.TxRunner) *Service {
	return &Service{repo: repo, patients: patients, tx: tx}
}

type ScheduleInput struct {
	PatientID uuid.UUID        `json:"patient_id"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Status    string           `json:"status,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
	Address   *patient.Address `json:"address,omitempty"`
}

type UpdateInput struct {
	Date    *string          `json:"date,omitempty"`
	Time    *string          `json:"time,omitempty"`
	Status  *string          `json:"status,omitempty"`
	Notes   *string          `json:"notes,omitempty"`
	Address *patient.Address `json:"address,omitempty"`
}

// canManage mirrors the route gate: the front desk and clinicians run the
// book, and admin passes everywhere.
func canManage(caller auth.Identity) bool {
	return caller.IsScheduler() || caller.IsClinician() || caller.Role == auth.RoleAdmin
}

// Schedule books a slot. Validation, conflict pre-checks, the insert, and the
// optional address update run in one transaction; the table's unique
// constraints settle any race the pre-checks miss.
func (s *Service) Schedule(ctx context.Context, caller auth.Identity, in ScheduleInput) (*Appointment, error) {
	if !canManage(caller) {
		return nil, ErrForbidden
	}
	if in.PatientID == uuid.Nil {
		return nil, fieldError("patient_id", "patient_id is required")
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, fieldError("date", err.Error())
	}
	t, err := ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, fieldError("time", err.Error())
	}
	if !t.InWorkingHours() {
		return nil, invalidSlot()
	}
	status := StatusOpen
	if in.Status != "" {
		if !ValidStatus(in.Status) {
			return nil, fieldError("status", "unknown status")
		}
		status = in.Status
	}

	callerID := caller.ID
	a := &Appointment{
		PatientID: in.PatientID,
		Date:      date,
		Time:      t,
		Status:    status,
		Notes:     in.Notes,
		CreatedBy: &callerID,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.patients.GetByID(ctx, in.PatientID)
		if errors.Is(err, patient.ErrNotFound) {
			return fieldError("patient_id", "patient does not exist")
		}
		if err != nil {
			return err
		}
		a.PatientName = p.Name

		if taken, err := s.repo.ExistsForPatientAt(ctx, in.PatientID, date, t, uuid.Nil); err != nil {
			return err
		} else if taken {
			return ErrPatientSlotConflict
		}
		if taken, err := s.repo.ExistsAt(ctx, date, t, uuid.Nil); err != nil {
			return err
		} else if taken {
			return ErrSlotConflict
		}

		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
		if in.Address != nil && !in.Address.IsZero() {
			return s.patients.UpdateAddress(ctx, in.PatientID, *in.Address)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Update reschedules or transitions an appointment. The patient reference is
// immutable; changes to it are not accepted by the input shape at all.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateInput) (*Appointment, error) {
	if !canManage(caller) {
		return nil, ErrForbidden
	}

	var updated *Appointment
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Date != nil {
			d, err := ParseDate(*in.Date)
			if err != nil {
				return fieldError("date", err.Error())
			}
			a.Date = d
		}
		if in.Time != nil {
			t, err := ParseTimeOfDay(*in.Time)
			if err != nil {
				return fieldError("time", err.Error())
			}
			a.Time = t
		}
		if !a.Time.InWorkingHours() {
			return invalidSlot()
		}
		if in.Status != nil {
			if !ValidStatus(*in.Status) {
				return fieldError("status", "unknown status")
			}
			if !CanTransition(a.Status, *in.Status) {
				return ErrInvalidState
			}
			a.Status = *in.Status
		}
		if in.Notes != nil {
			a.Notes = in.Notes
		}

		if taken, err := s.repo.ExistsForPatientAt(ctx, a.PatientID, a.Date, a.Time, a.ID); err != nil {
			return err
		} else if taken {
			return ErrPatientSlotConflict
		}
		if taken, err := s.repo.ExistsAt(ctx, a.Date, a.Time, a.ID); err != nil {
			return err
		} else if taken {
			return ErrSlotConflict
		}

		callerID := caller.ID
		a.ModifiedBy = &callerID
		if err := s.repo.Update(ctx, a); err != nil {
			return err
		}
		if in.Address != nil && !in.Address.IsZero() {
			if err := s.patients.UpdateAddress(ctx, a.PatientID, *in.Address); err != nil {
				return err
			}
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel moves an open appointment to CANCELLED.
func (s *Service) Cancel(ctx context.Context, caller auth.Identity, id uuid.UUID) (*Appointment, error) {
	status := StatusCancelled
	return s.Update(ctx, caller, id, UpdateInput{Status: &status})
}

// Close marks an open appointment CLOSED. The consultation engine calls this
// inside its own transaction when a session record completes the visit.
// Closing an already closed appointment is a no-op.
func (s *Service) Close(ctx context.Context, id, actorID uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusClosed {
		return nil
	}
	if !CanTransition(a.Status, StatusClosed) {
		return ErrInvalidState
	}
	a.Status = StatusClosed
	a.ModifiedBy = &actorID
	return s.repo.Update(ctx, a)
}

func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*Appointment, error) {
	if !canManage(caller) {
		return nil, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, caller auth.Identity, f Filter, limit, offset int) ([]*Appointment, int, error) {
	if !canManage(caller) {
		return nil, 0, ErrForbidden
	}
	return s.repo.List(ctx, f, limit, offset)
}
