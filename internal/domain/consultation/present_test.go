package consultation

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/internal/platform/crypto"
)

func sampleRecord(owner uuid.UUID) *Consultation {
	prior := "previous session summary"
	return &Consultation{
		ID:            uuid.New(),
		AppointmentID: uuid.New(),
		ClinicianID:   owner,
		PriorNotes:    &prior,
		CurrentNotes:  "patient reports improvement",
	}
}

func TestPresent_Owner(t *testing.T) {
	owner := auth.Identity{ID: uuid.New(), Role: auth.RoleClinician}
	v := Present(sampleRecord(owner.ID), owner)

	if v.CurrentNotes.State != NotePlaintext || v.CurrentNotes.Text != "patient reports improvement" {
		t.Errorf("current notes = %+v, want plaintext", v.CurrentNotes)
	}
	if v.PriorNotes.State != NotePlaintext {
		t.Errorf("prior notes = %+v, want plaintext", v.PriorNotes)
	}
	if v.AttentionPoints.State != NoteAbsent {
		t.Errorf("attention points = %+v, want absent", v.AttentionPoints)
	}
}

func TestPresent_NonOwners(t *testing.T) {
	record := sampleRecord(uuid.New())
	callers := []auth.Identity{
		{ID: uuid.New(), Role: auth.RoleClinician},
		{ID: uuid.New(), Role: auth.RoleScheduler},
		{ID: uuid.New(), Role: auth.RoleAdmin},
		{ID: record.ClinicianID, Role: auth.RoleScheduler}, // right id, wrong role
	}
	for _, caller := range callers {
		v := Present(record, caller)
		if v.CurrentNotes.State != NoteRestricted {
			t.Errorf("%s: current notes = %+v, want restricted", caller.Role, v.CurrentNotes)
		}
		if v.PriorNotes.State != NoteRestricted {
			t.Errorf("%s: prior notes = %+v, want restricted", caller.Role, v.PriorNotes)
		}
		if v.AttentionPoints.State != NoteAbsent {
			t.Errorf("%s: absent field must stay absent", caller.Role)
		}
	}
}

func TestPresent_Undecryptable(t *testing.T) {
	owner := auth.Identity{ID: uuid.New(), Role: auth.RoleClinician}
	record := sampleRecord(owner.ID)
	record.CurrentNotes = crypto.DecryptFailed

	v := Present(record, owner)
	if v.CurrentNotes.State != NoteUndecryptable {
		t.Errorf("owner: current notes = %+v, want undecryptable", v.CurrentNotes)
	}

	// A value that failed to decrypt reads the same for everyone; the
	// ownership gate only applies to recoverable plaintext.
	other := auth.Identity{ID: uuid.New(), Role: auth.RoleClinician}
	v = Present(record, other)
	if v.CurrentNotes.State != NoteUndecryptable {
		t.Errorf("non-owner: current notes = %+v, want undecryptable", v.CurrentNotes)
	}
}

func TestPresent_Deterministic(t *testing.T) {
	owner := auth.Identity{ID: uuid.New(), Role: auth.RoleClinician}
	record := sampleRecord(owner.ID)

	first := Present(record, owner)
	second := Present(record, owner)
	if !reflect.DeepEqual(first, second) {
		t.Error("presentation must be deterministic for the same record and caller")
	}

	other := auth.Identity{ID: uuid.New(), Role: auth.RoleClinician}
	if reflect.DeepEqual(Present(record, owner), Present(record, other)) {
		t.Error("owner and non-owner views should differ")
	}
}

func TestNoteValue_JSON(t *testing.T) {
	cases := []struct {
		value NoteValue
		want  string
	}{
		{NoteValue{State: NoteAbsent}, `null`},
		{NoteValue{State: NotePlaintext, Text: "hello"}, `"hello"`},
		{NoteValue{State: NoteUndecryptable}, `"` + MarkerUndecryptable + `"`},
		{NoteValue{State: NoteRestricted}, `"` + MarkerRestricted + `"`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.value)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(got) != tc.want {
			t.Errorf("marshal %+v = %s, want %s", tc.value, got, tc.want)
		}
	}
}
