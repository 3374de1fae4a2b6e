package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/appointment"
	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/crypto"
	"github.com/clinicore/clinicore/internal/platform/db"
)

// AppointmentCloser is the slice of the scheduling engine this service needs
// to complete a visit. Implemented by appointment.Service.
type AppointmentCloser interface {
	Close(ctx context.Context, id, actorID uuid.UUID) error
}

type Service struct {
	repo   Repository
	appts  appointment.Repository
	closer AppointmentCloser
	tx     db.TxRunner
}

func NewService(repo Repository, appts appointment.Repository, closer AppointmentCloser, tx db.TxRunner) *Service {
	return &Service{repo: repo, appts: appts, closer: closer, tx: tx}
}

type CreateInput struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	CurrentNotes    string    `json:"current_notes"`
	AttentionPoints *string   `json:"attention_points,omitempty"`
	Complete        bool      `json:"complete"`
}

type UpdateInput struct {
	CurrentNotes    *string `json:"current_notes,omitempty"`
	AttentionPoints *string `json:"attention_points,omitempty"`
	Complete        *bool   `json:"complete,omitempty"`
}

// Create records a session against an open appointment. The prior-note
// snapshot, the insert, and the optional close of the appointment commit as
// one unit; a failure at any step leaves nothing behind.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*Consultation, error) {
	if !caller.IsClinician() {
		return nil, ErrForbidden
	}
	if in.CurrentNotes == "" {
		return nil, ErrNotesRequired
	}

	c := &Consultation{
		AppointmentID:   in.AppointmentID,
		ClinicianID:     caller.ID,
		CurrentNotes:    in.CurrentNotes,
		AttentionPoints: in.AttentionPoints,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		appt, err := s.appts.GetByID(ctx, in.AppointmentID)
		if errors.Is(err, appointment.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		if err != nil {
			return err
		}
		if appt.Status != appointment.StatusOpen {
			return ErrAppointmentNotOpen
		}
		if recorded, err := s.repo.ExistsForAppointment(ctx, in.AppointmentID); err != nil {
			return err
		} else if recorded {
			return ErrAlreadyRecorded
		}

		prior, found, err := s.repo.LatestNotesBefore(ctx, appt.PatientID, appt.Date)
		if err != nil {
			return err
		}
		if found {
			if prior == crypto.DecryptFailed {
				prior = PriorNotesUnavailable
			}
			c.PriorNotes = &prior
		}

		if err := s.repo.Create(ctx, c); err != nil {
			return err
		}
		if in.Complete {
			return s.closer.Close(ctx, appt.ID, caller.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update edits the mutable note fields of an existing record. Prior notes,
// the clinician, and the appointment reference are fixed; the input shape
// does not carry them at all.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateInput) (*Consultation, error) {
	if !caller.IsClinician() {
		return nil, ErrForbidden
	}

	var updated *Consultation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c.ClinicianID != caller.ID {
			return ErrForbidden
		}

		if in.CurrentNotes != nil {
			if *in.CurrentNotes == "" {
				return ErrNotesRequired
			}
			c.CurrentNotes = *in.CurrentNotes
		}
		if in.AttentionPoints != nil {
			c.AttentionPoints = in.AttentionPoints
		}

		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
		if in.Complete != nil && *in.Complete {
			if err := s.closer.Close(ctx, c.AppointmentID, caller.ID); err != nil {
				return err
			}
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns a record to its owning clinician. Anyone else gets ErrNotFound,
// so the existence of another clinician's record never leaks.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsClinician() || c.ClinicianID != caller.ID {
		return nil, ErrNotFound
	}
	return c, nil
}

// List returns the caller's own records. Non-clinicians get an empty page,
// never an error.
func (s *Service) List(ctx context.Context, caller auth.Identity, limit, offset int) ([]*Consultation, int, error) {
	if !caller.IsClinician() {
		return nil, 0, nil
	}
	return s.repo.ListByClinician(ctx, caller.ID, limit, offset)
}
