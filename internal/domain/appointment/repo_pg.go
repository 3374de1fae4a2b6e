package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

// Unique constraints on the appointment table. Pre-checks in the service are
// advisory; these are the authoritative guard under concurrency.
const (
	constraintSlot        = "appointment_slot_key"
	constraintPatientSlot = "appointment_patient_slot_key"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `a.id, a.patient_id, p.name,
	to_char(a.appt_date, 'YYYY-MM-DD'), to_char(a.appt_time, 'HH24:MI'),
	a.status, a.notes, a.created_by, a.modified_by, a.created_at, a.updated_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.Date, &a.Time,
		&a.Status, &a.Notes, &a.CreatedBy, &a.ModifiedBy, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

// mapConflict translates unique violations back into the domain errors the
// advisory pre-checks would have raised.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case constraintPatientSlot:
			return ErrPatientSlotConflict
		case constraintSlot:
			return ErrSlotConflict
		}
	}
	return err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (id, patient_id, appt_date, appt_time, status, notes, created_by)
		VALUES ($1, $2, $3::date, $4::time, $5, $6, $7)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, string(a.Date), string(a.Time), a.Status, a.Notes, a.CreatedBy).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return mapConflict(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+apptCols+`
		FROM appointment a JOIN patient p ON p.id = a.patient_id
		WHERE a.id = $1`, id)
	a, err := scanAppt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment
		SET appt_date = $2::date, appt_time = $3::time, status = $4, notes = $5,
			modified_by = $6, updated_at = NOW()
		WHERE id = $1`,
		a.ID, string(a.Date), string(a.Time), a.Status, a.Notes, a.ModifiedBy)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ExistsAt(ctx context.Context, date Date, t TimeOfDay, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE appt_date = $1::date AND appt_time = $2::time AND id <> $3
		)`, string(date), string(t), excludeID).Scan(&exists)
	return exists, err
}

func (r *repoPG) ExistsForPatientAt(ctx context.Context, patientID uuid.UUID, date Date, t TimeOfDay, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE patient_id = $1 AND appt_date = $2::date AND appt_time = $3::time AND id <> $4
		)`, patientID, string(date), string(t), excludeID).Scan(&exists)
	return exists, err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.PatientID != uuid.Nil {
		where += fmt.Sprintf(` AND a.patient_id = $%d`, idx)
		args = append(args, f.PatientID)
		idx++
	}
	if f.From != "" {
		where += fmt.Sprintf(` AND a.appt_date >= $%d::date`, idx)
		args = append(args, string(f.From))
		idx++
	}
	if f.To != "" {
		where += fmt.Sprintf(` AND a.appt_date <= $%d::date`, idx)
		args = append(args, string(f.To))
		idx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND a.status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM appointment a JOIN patient p ON p.id = a.patient_id` + where
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + apptCols + ` FROM appointment a JOIN patient p ON p.id = a.patient_id` + where +
		fmt.Sprintf(` ORDER BY a.appt_date DESC, a.appt_time DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
