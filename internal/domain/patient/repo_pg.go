package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, name, birth_date, phone, street, number, complement,
	district, city, state, postal_code, created_at, updated_at`

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var p Patient
	err := r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.BirthDate, &p.Phone, &p.Street, &p.Number, &p.Complement,
			&p.District, &p.City, &p.State, &p.PostalCode, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) UpdateAddress(ctx context.Context, id uuid.UUID, addr Address) error {
	set := ""
	var args []interface{}
	args = append(args, id)
	idx := 2

	add := func(col string, v *string) {
		if v == nil || *v == "" {
			return
		}
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, idx)
		args = append(args, *v)
		idx++
	}
	add("street", addr.Street)
	add("number", addr.Number)
	add("complement", addr.Complement)
	add("district", addr.District)
	add("city", addr.City)
	add("state", addr.State)
	add("postal_code", addr.PostalCode)

	if set == "" {
		return nil
	}

	tag, err := r.conn(ctx).Exec(ctx, `UPDATE patient SET `+set+`, updated_at = NOW() WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
