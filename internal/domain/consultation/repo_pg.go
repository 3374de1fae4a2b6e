package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/domain/appointment"
	"github.com/clinicore/clinicore/internal/platform/crypto"
	"github.com/clinicore/clinicore/internal/platform/db"
)

// One session record per appointment, enforced by the table.
const constraintAppointment = "consultation_appointment_key"

type repoPG struct {
	pool  *pgxpool.Pool
	codec *crypto.Codec
}

// NewRepoPG returns a Repository that encrypts note fields on the way in and
// decrypts them on the way out. Business logic above it never sees ciphertext.
func NewRepoPG(pool *pgxpool.Pool, codec *crypto.Codec) Repository {
	return &repoPG{pool: pool, codec: codec}
}

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const consultCols = `id, appointment_id, clinician_id, prior_notes, current_notes,
	attention_points, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Consultation, error) {
	var c Consultation
	var prior, attention *string
	var current string
	if err := row.Scan(&c.ID, &c.AppointmentID, &c.ClinicianID, &prior, &current,
		&attention, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.PriorNotes = r.codec.DecodePtr(prior)
	c.CurrentNotes = r.codec.Decode(current)
	c.AttentionPoints = r.codec.DecodePtr(attention)
	return &c, nil
}

func (r *repoPG) Create(ctx context.Context, c *Consultation) error {
	current, err := r.codec.Encode(c.CurrentNotes)
	if err != nil {
		return err
	}
	prior, err := r.codec.EncodePtr(c.PriorNotes)
	if err != nil {
		return err
	}
	attention, err := r.codec.EncodePtr(c.AttentionPoints)
	if err != nil {
		return err
	}

	c.ID = uuid.New()
	err = r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultation (id, appointment_id, clinician_id, prior_notes, current_notes, attention_points)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		c.ID, c.AppointmentID, c.ClinicianID, prior, current, attention).
		Scan(&c.CreatedAt, &c.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintAppointment {
		return ErrAlreadyRecorded
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+consultCols+` FROM consultation WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repoPG) Update(ctx context.Context, c *Consultation) error {
	current, err := r.codec.Encode(c.CurrentNotes)
	if err != nil {
		return err
	}
	attention, err := r.codec.EncodePtr(c.AttentionPoints)
	if err != nil {
		return err
	}

	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE consultation
		SET current_notes = $2, attention_points = $3, updated_at = NOW()
		WHERE id = $1`,
		c.ID, current, attention)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ExistsForAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM consultation WHERE appointment_id = $1)`,
		appointmentID).Scan(&exists)
	return exists, err
}

func (r *repoPG) LatestNotesBefore(ctx context.Context, patientID uuid.UUID, date appointment.Date) (string, bool, error) {
	var stored string
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT c.current_notes
		FROM consultation c
		JOIN appointment a ON a.id = c.appointment_id
		WHERE a.patient_id = $1 AND a.appt_date < $2::date
		ORDER BY a.appt_date DESC, a.appt_time DESC
		LIMIT 1`,
		patientID, string(date)).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return r.codec.Decode(stored), true, nil
}

func (r *repoPG) ListByClinician(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation WHERE clinician_id = $1`, clinicianID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+consultCols+` FROM consultation WHERE clinician_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		clinicianID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Consultation
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}
