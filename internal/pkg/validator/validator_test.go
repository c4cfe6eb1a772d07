package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidClassCode(t *testing.T) {
	valid := []string{"ABC123", "XYZ999", "BUD483"}
	invalid := []string{"", "abc123", "AB123", "ABC12", "ABC1234", "123ABC", "BUDXYZ789", "QWERTY123"}
	for _, code := range valid {
		if !IsValidClassCode(code) {
			t.Errorf("IsValidClassCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidClassCode(code) {
			t.Errorf("IsValidClassCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidLatitudeLongitude(t *testing.T) {
	if !IsValidLatitude(-6.2) || !IsValidLatitude(90) || !IsValidLatitude(-90) {
		t.Error("valid latitudes rejected")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-91) {
		t.Error("invalid latitudes accepted")
	}
	if !IsValidLongitude(106.8167) || !IsValidLongitude(180) || !IsValidLongitude(-180) {
		t.Error("valid longitudes rejected")
	}
	if IsValidLongitude(180.1) || IsValidLongitude(-181) {
		t.Error("invalid longitudes accepted")
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", "", "abc"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", "", "abc"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "role", Message: "role must be student or teacher"},
	}
	if errs.Error() != "email: email is required; role: role must be student or teacher" {
		t.Errorf("unexpected error string: %q", errs.Error())
	}
	m := errs.ToMap()
	if m["email"] != "email is required" || m["role"] != "role must be student or teacher" {
		t.Errorf("unexpected map: %v", m)
	}
}
