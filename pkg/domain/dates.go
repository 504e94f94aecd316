package domain

import (
	"fmt"
	"regexp"
	"time"
)

var (
	compactDate  = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	halfDate     = regexp.MustCompile(`^(\d{4})-(\d{2})(\d{2})$`)
	canonicalDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// NormalizeDate canonicalizes a date string to "YYYY-MM-DD". It accepts the
// compact "YYYYMMDD" and half-dashed "YYYY-MMDD" forms; anything else —
// including partial input still being typed — is returned unchanged.
func NormalizeDate(s string) string {
	if m := compactDate.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	if m := halfDate.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	return s
}

// ParseDate parses a canonical "YYYY-MM-DD" string (normalizing first).
func ParseDate(s string) (time.Time, error) {
	s = NormalizeDate(s)
	if !canonicalDay.MatchString(s) {
		return time.Time{}, fmt.Errorf("domain.ParseDate: %q is not a YYYY-MM-DD date", s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("domain.ParseDate: %w", err)
	}
	return t, nil
}

// DayOfYear returns the 1-based day offset of t within its year (Jan 1 = 1).
// Only the calendar date is considered, so local-time zone offsets and DST
// transitions cannot shift the result.
func DayOfYear(t time.Time) int {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).YearDay()
}

// DayOfYearString parses a date string and returns its day-of-year offset.
func DayOfYearString(s string) (int, error) {
	t, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return DayOfYear(t), nil
}

// DateFromDay maps a (year, day-of-year) pair back to a calendar date by
// starting at January of that year and advancing the day count.
func DateFromDay(year, day int) time.Time {
	return time.Date(year, time.January, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as zero-padded "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
