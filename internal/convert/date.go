package convert

import (
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// DateParseError reports a present, non-placeholder date that could not
// be parsed under any convention attempted. It is fatal for the whole
// conversion, since one bad date throws the statement range into doubt.
type DateParseError struct {
	Raw string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q", e.Raw)
}

// parseDate parses a raw statement date under the given day-first
// convention. Bank dates never carry a time component, so only the date
// portion of the result is meaningful.
//
// Compact 8-digit dates ("03252016") confuse the general parser, so on
// failure separators are inserted after positions 2 and 4 and the parse
// is retried before giving up.
func parseDate(raw string, dayFirst bool) (time.Time, error) {
	if allAlpha(raw) {
		return time.Time{}, &DateParseError{Raw: raw}
	}

	opts := []dateparse.ParserOption{
		dateparse.PreferMonthFirst(!dayFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	}

	t, err := dateparse.ParseAny(raw, opts...)
	if err == nil {
		return t, nil
	}

	if len(raw) == 8 {
		if _, numErr := strconv.Atoi(raw); numErr == nil {
			slashified := raw[0:2] + "/" + raw[2:4] + "/" + raw[4:]
			if t, err := dateparse.ParseAny(slashified, opts...); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, &DateParseError{Raw: raw}
}

// leadingNumber returns the numeric run before the first non-digit in a
// raw date string, or ok=false when the string is all digits or does not
// start with one.
func leadingNumber(raw string) (int, bool) {
	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == 0 || i == len(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func allAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
