package countdown

import (
	"fmt"
	"regexp"
	"time"
)

// ExamHour anchors the countdown target at a fixed local hour on the exam
// date. Exams start in the morning; the date alone is what users enter.
const ExamHour = 9

var (
	isoRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	humanRe = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
)

// ParseDDMMYYYY converts human-entered "DD-MM-YYYY" into the internal
// "YYYY-MM-DD" form. The numeric day/month/year must round-trip exactly
// through date construction, so silently-normalized dates like 31-02-2026
// are rejected rather than corrected.
func ParseDDMMYYYY(s string) (string, error) {
	m := humanRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid date %q, use DD-MM-YYYY", s)
	}

	var dd, mm, yyyy int
	fmt.Sscanf(m[1], "%d", &dd)
	fmt.Sscanf(m[2], "%d", &mm)
	fmt.Sscanf(m[3], "%d", &yyyy)

	if mm < 1 || mm > 12 {
		return "", fmt.Errorf("invalid month in %q", s)
	}

	d := time.Date(yyyy, time.Month(mm), dd, 0, 0, 0, 0, time.Local)
	if d.Year() != yyyy || int(d.Month()) != mm || d.Day() != dd {
		return "", fmt.Errorf("no such calendar date: %q", s)
	}

	return fmt.Sprintf("%04d-%02d-%02d", yyyy, mm, dd), nil
}

// FormatDDMMYYYY is the inverse of ParseDDMMYYYY. Returns "" for anything
// that is not a well-formed internal date.
func FormatDDMMYYYY(iso string) string {
	m := isoRe.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
}

// Target resolves a stored exam date to the target instant.
func Target(iso string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", iso, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid exam date %q: %w", iso, err)
	}
	return d.Add(ExamHour * time.Hour), nil
}

type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Until computes time left to the exam, clamped at zero. The countdown never
// goes negative and never clears itself when the date passes.
func Until(iso string, now time.Time) (Remaining, error) {
	target, err := Target(iso)
	if err != nil {
		return Remaining{}, err
	}

	diff := target.Sub(now)
	if diff < 0 {
		diff = 0
	}

	totalSec := int(diff / time.Second)
	return Remaining{
		Days:    totalSec / 86400,
		Hours:   totalSec % 86400 / 3600,
		Minutes: totalSec % 3600 / 60,
		Seconds: totalSec % 60,
	}, nil
}

func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
}
