package auth

import (
	"context"

	"github.com/google/uuid"
)

// Practice roles. Schedulers run the front desk; clinicians conduct sessions
// and are the only identities that ever see decrypted clinical notes. Admin
// passes route-level gates but gains no note access.
const (
	RoleScheduler = "scheduler"
	RoleClinician = "clinician"
	RoleAdmin     = "admin"
)

// Identity is the authenticated caller: who they are and the single role
// claim issued with their token.
type Identity struct {
	ID   uuid.UUID
	Name string
	Role string
}

// IsScheduler reports whether the caller holds the scheduler role.
func (i Identity) IsScheduler() bool { return i.Role == RoleScheduler }

// IsClinician reports whether the caller holds the clinician role. Admin is
// deliberately not a clinician: clinical-note access follows the role, never
// administrative privilege.
func (i Identity) IsClinician() bool { return i.Role == RoleClinician }

// IsZero reports whether no authenticated identity is present.
func (i Identity) IsZero() bool { return i.ID == uuid.Nil }

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a child context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the caller identity, or a zero Identity if the request
// is unauthenticated.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}
