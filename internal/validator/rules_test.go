package validator

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"alice@example.com", true},
		{"first.last@sub.domain.org", true},
		{"user-name@host-name.io", true},
		{"a@b", false},
		{"a@b.c", false},
		{"@example.com", false},
		{"alice@", false},
		{"", false},
		{"plaintext", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			if got := IsValidEmail(tc.email); got != tc.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Alice", true},
		{"Alice Smith", true},
		{"van der Berg", true},
		{"", false},
		{"Alice2", false},
		{"O'Brien", false},
		{"Anne-Marie", false},
	}

	for _, tc := range cases {
		if got := IsValidName(tc.name); got != tc.want {
			t.Errorf("IsValidName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abc12345", true},
		{"longEnough1", true},
		{"abc12345", false}, // no uppercase
		{"ABC12345", false}, // no lowercase
		{"Abcdefgh", false}, // no digit
		{"Ab1", false},      // too short
		{"", false},
	}

	for _, tc := range cases {
		if got := IsValidPassword(tc.password); got != tc.want {
			t.Errorf("IsValidPassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"0", true},
		{"1234567890123456", true},
		{"", false},
		{"12a4", false},
		{"12 34", false},
		{"-123", false},
	}

	for _, tc := range cases {
		if got := IsNumeric(tc.s); got != tc.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestIsValidDateFormat(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2025-01-31", true},
		{"9999-99-99", true}, // shape only, not calendar validity
		{"2025-1-31", false},
		{"31-01-2025", false},
		{"2025/01/31", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsValidDateFormat(tc.date); got != tc.want {
			t.Errorf("IsValidDateFormat(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestIsValidCardNumber(t *testing.T) {
	cases := []struct {
		card string
		want bool
	}{
		{"1234567812345678", true},
		{"0000000000000000", true},
		{"123456781234567", false},   // 15 digits
		{"12345678123456789", false}, // 17 digits
		{"1234-5678-1234-5678", false},
		{"1234567812345abc", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsValidCardNumber(tc.card); got != tc.want {
			t.Errorf("IsValidCardNumber(%q) = %v, want %v", tc.card, got, tc.want)
		}
	}
}
