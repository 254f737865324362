package domain

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
)

const (
	// DateLayout is the wire format of a transaction date.
	DateLayout = "2006-01-02"
	// MonthGroupLayout is the wire format of a month partition key.
	MonthGroupLayout = "2006-01"

	// DefaultRetentionMonths is how many months back from the current month are kept.
	DefaultRetentionMonths = 12
)

// MonthGroupOf returns the YYYY-MM month group containing t, evaluated in UTC.
func MonthGroupOf(t time.Time) string {
	return t.UTC().Format(MonthGroupLayout)
}

// ValidateMonthGroup checks that s is a zero-padded YYYY-MM string.
func ValidateMonthGroup(s string) error {
	if len(s) != len(MonthGroupLayout) {
		return apperrors.NewValidationError("month %q must have the form YYYY-MM", s)
	}
	if _, err := time.Parse(MonthGroupLayout, s); err != nil {
		return apperrors.NewValidationError("month %q must have the form YYYY-MM", s)
	}
	return nil
}

// MonthGroupFromDate derives the month group of a YYYY-MM-DD date. The result
// is always the first seven characters of date.
func MonthGroupFromDate(date string) (string, error) {
	if len(date) != len(DateLayout) {
		return "", apperrors.NewValidationError("date %q must have the form YYYY-MM-DD", date)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", apperrors.NewValidationError("date %q must have the form YYYY-MM-DD", date)
	}
	return date[:len(MonthGroupLayout)], nil
}

// RetentionCutoff returns the oldest month group that survives a sweep run at
// now. Month groups strictly before it are purged. Comparison is lexicographic,
// which is correct for zero-padded YYYY-MM strings.
func RetentionCutoff(now time.Time, months int) string {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -months, 0).Format(MonthGroupLayout)
}

// IsExpired reports whether monthGroup falls before cutoff.
func IsExpired(monthGroup, cutoff string) bool {
	return monthGroup < cutoff
}
