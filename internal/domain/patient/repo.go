package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	// UpdateAddress applies the non-empty fields of addr to the stored
	// address. A zero addr is a no-op.
	UpdateAddress(ctx context.Context, id uuid.UUID, addr Address) error
}
