package validator

import "testing"

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"x", false},
		{" x ", false},
	}
	for _, tt := range tests {
		if got := IsEmpty(tt.input); got != tt.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0193e5a0-5f3c-7b8a-9d2e-1f4a6b8c0d2e", true},
		{"0193E5A0-5F3C-7B8A-9D2E-1F4A6B8C0D2E", true},
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"not-a-uuid", false},
		{"550e8400e29b41d4a716446655440000", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidUUID(tt.input); got != tt.want {
			t.Errorf("IsValidUUID(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-03-09"); !ok {
		t.Error("expected 2026-03-09 to be valid")
	}
	for _, input := range []string{"2026-13-01", "09-03-2026", "2026-03-09T00:00:00Z", ""} {
		if _, ok := IsValidDate(input); ok {
			t.Errorf("expected %q to be invalid", input)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"08:30", true},
		{"00:00", true},
		{"23:59:59", true},
		{"24:00", false},
		{"8:30", false},
		{"12:60", false},
		{"12:30:60", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidClock(tt.input); got != tt.want {
			t.Errorf("IsValidClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	errs = errs.Add("name", "is required")
	errs = errs.Add("date", "must be YYYY-MM-DD")

	if got := errs.Error(); got != "name: is required; date: must be YYYY-MM-DD" {
		t.Errorf("Error() = %q", got)
	}

	m := errs.ToMap()
	if m["name"] != "is required" || m["date"] != "must be YYYY-MM-DD" {
		t.Errorf("ToMap() = %v", m)
	}
}
