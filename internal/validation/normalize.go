package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"devevents/internal/domain"
)

var (
	quoteStripper = strings.NewReplacer(
		"'", "", `"`, "",
		"‘", "", "’", "", "“", "", "”", "",
	)
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	clockRegex  = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

// Slugify derives the URL slug of a title: lower-cased, quotes removed, every run
// of characters outside [a-z0-9] collapsed to one hyphen, no hyphen at either
// end. Accented letters are separators, so "Café" and "Cafe" stay distinct.
// It returns domain.ErrEmptyDerivedValue when nothing is left.
func Slugify(title string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(title))
	s = quoteStripper.Replace(s)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "", domain.ErrEmptyDerivedValue
	}
	return s, nil
}

// dateLayouts are tried in order by NormalizeDateToISO. Inputs without an offset
// are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Mon, January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDateToISO parses a date or date-time and returns its UTC calendar date
// as YYYY-MM-DD. Time of day is discarded.
func NormalizeDateToISO(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", domain.ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC().Format(time.DateOnly), nil
		}
	}
	return "", domain.ErrInvalidDate
}

// NormalizeTimeToHHmm accepts H, HH, H:mm or HH:mm with an optional am/pm suffix
// and returns the 24-hour HH:mm form.
func NormalizeTimeToHHmm(value string) (string, error) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", domain.ErrInvalidTime
	}
	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	if minutes > 59 {
		return "", domain.ErrInvalidTime
	}
	meridiem := strings.ToLower(m[3])
	switch meridiem {
	case "":
		if hours > 23 {
			return "", domain.ErrInvalidTime
		}
	default:
		if hours < 1 || hours > 12 {
			return "", domain.ErrInvalidTime
		}
		if hours == 12 {
			hours = 0
		}
		if meridiem == "pm" {
			hours += 12
		}
	}
	return twoDigits(hours) + ":" + twoDigits(minutes), nil
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
