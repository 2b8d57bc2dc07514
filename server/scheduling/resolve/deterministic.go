package resolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hrygo/callwave/server/scheduling/busday"
)

// Pre-compiled phrase patterns for the deterministic tier.
var (
	nextWeekdayPattern = regexp.MustCompile(`(?i)\bnext\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	afterDaysPattern   = regexp.MustCompile(`(?i)\bafter\s+(\d+)\s+days?\b`)
	afterMonthsPattern = regexp.MustCompile(`(?i)\bafter\s+(\d+)\s+months?\b`)
)

// weekdayNames maps lowercase weekday names to time.Weekday.
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// monthNames maps bare month phrases to months, including the common
// abbreviations and misspellings that show up in call transcripts.
var monthNames = map[string]time.Month{
	"january":   time.January,
	"jan":       time.January,
	"janurary":  time.January,
	"february":  time.February,
	"feb":       time.February,
	"febuary":   time.February,
	"feburary":  time.February,
	"march":     time.March,
	"mar":       time.March,
	"april":     time.April,
	"apr":       time.April,
	"may":       time.May,
	"june":      time.June,
	"jun":       time.June,
	"july":      time.July,
	"jul":       time.July,
	"august":    time.August,
	"aug":       time.August,
	"september": time.September,
	"sep":       time.September,
	"sept":      time.September,
	"october":   time.October,
	"oct":       time.October,
	"november":  time.November,
	"nov":       time.November,
	"december":  time.December,
	"dec":       time.December,
}

// matchPattern runs the deterministic tier against a trimmed phrase.
// Candidates come back as midnight in the reference zone so that the
// normalization stage applies the default hour uniformly.
func (r *Resolver) matchPattern(phrase string, now time.Time) (time.Time, bool) {
	zone := r.converter.Zone()
	today := busday.DateOnly(now.In(zone))

	if matches := nextWeekdayPattern.FindStringSubmatch(phrase); matches != nil {
		target := weekdayNames[strings.ToLower(matches[1])]
		diff := (int(target) - int(today.Weekday()) + 7) % 7
		// "next monday" said on a Monday means a week out, not today.
		if diff == 0 {
			diff = 7
		}
		return today.AddDate(0, 0, diff), true
	}

	if matches := afterDaysPattern.FindStringSubmatch(phrase); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err == nil && n > 0 {
			return today.AddDate(0, 0, n), true
		}
	}

	if matches := afterMonthsPattern.FindStringSubmatch(phrase); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err == nil && n > 0 {
			return today.AddDate(0, n, 0), true
		}
	}

	// A bare month name maps to the first of that month, this year if it is
	// still ahead, otherwise next year.
	if month, ok := monthNames[strings.ToLower(phrase)]; ok {
		candidate := time.Date(today.Year(), month, 1, 0, 0, 0, 0, zone)
		if candidate.Before(today) {
			candidate = candidate.AddDate(1, 0, 0)
		}
		return candidate, true
	}

	return time.Time{}, false
}
