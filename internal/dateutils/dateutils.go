// Package dateutils parses the free-form date text found in uploaded files
// and derives the day and month keys used for bucketing.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	MonthLayout         = "2006-01"
)

// CommonFormats is the ordered list of layouts tried by ParseDate. Day-first
// layouts precede month-first ones, so 03/04/2024 is the 3rd of April.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000Z",
	DateLayoutEuropean,
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	DateLayoutUS,
	"1/2/2006",
	"02-01-2006",
	"2006/01/02",
	DateLayoutWithMonth,
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts each of CommonFormats in turn and returns the parsed
// time together with the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DayKey returns the calendar day of dateStr as YYYY-MM-DD. The boolean is
// false when the text is not a recognizable date.
func DayKey(dateStr string) (string, bool) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", false
	}
	return ToISODate(t), true
}

// MonthKey returns the calendar month of dateStr as YYYY-MM.
func MonthKey(dateStr string) (string, bool) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", false
	}
	return StartOfMonth(t).Format(MonthLayout), true
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
