package services

import (
	"time"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/validator"
)

// dateLayout is the only date format accepted across the service boundary.
const dateLayout = "2006-01-02"

// parseDate checks the YYYY-MM-DD shape first (the shape check is the
// gatekeeper, parsing is the collaborator) and then parses the calendar date.
func parseDate(s string) (time.Time, error) {
	if !validator.IsValidDateFormat(s) {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must use the YYYY-MM-DD format")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Not a valid calendar date: "+s)
	}
	return t, nil
}
