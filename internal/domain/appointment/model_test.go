package appointment

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"08:00", "08:00", false},
		{"8:00", "", true},
		{"14:30:00", "14:30", false},
		{"17:00", "17:00", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDay_InWorkingHours(t *testing.T) {
	cases := []struct {
		in   TimeOfDay
		want bool
	}{
		{"07:59", false},
		{"08:00", true},
		{"12:30", true},
		{"17:00", true},
		{"17:01", false},
		{"00:00", false},
		{"23:59", false},
	}
	for _, tc := range cases {
		if got := tc.in.InWorkingHours(); got != tc.want {
			t.Errorf("InWorkingHours(%s) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-03-10"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"2025-3-10", "10/03/2025", "2025-13-01", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusOpen, StatusClosed, true},
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusOpen, true},
		{StatusClosed, StatusOpen, false},
		{StatusClosed, StatusCancelled, false},
		{StatusClosed, StatusClosed, true},
		{StatusCancelled, StatusOpen, false},
		{StatusCancelled, StatusClosed, false},
		{StatusCancelled, StatusCancelled, true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
