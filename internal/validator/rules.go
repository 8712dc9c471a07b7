package validator

import "regexp"

var (
	emailRegex     = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)
	nameRegex      = regexp.MustCompile(`^[A-Za-z\s]+$`)
	numericRegex   = regexp.MustCompile(`^\d+$`)
	dateShapeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsValidEmail reports whether s looks like local@domain.tld, where local and
// domain are word/dot/hyphen characters and the TLD is at least two letters.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidName reports whether s is non-empty and contains only letters and spaces.
func IsValidName(s string) bool {
	return nameRegex.MatchString(s)
}

// IsValidPassword reports whether s is at least 8 characters long and contains
// at least one lowercase letter, one uppercase letter, and one digit.
// RE2 has no lookahead, so the character classes are scanned explicitly.
func IsValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// IsNumeric reports whether s is non-empty and consists only of decimal digits.
func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidDateFormat reports whether s has the YYYY-MM-DD token shape.
// It checks shape only, not calendar validity: "9999-99-99" passes.
func IsValidDateFormat(s string) bool {
	return dateShapeRegex.MatchString(s)
}

// IsValidCardNumber reports whether s is exactly 16 decimal digits.
func IsValidCardNumber(s string) bool {
	return len(s) == 16 && IsNumeric(s)
}
