package functions

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const millisPerYear = 365.25 * 24 * 60 * 60 * 1000

// maxDateMillis is the largest distance from the epoch a JavaScript Date can
// represent, 100 million days.
const maxDateMillis = 8.64e15

// AdultAge is the age at which isMinor starts returning false.
const AdultAge = 18

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
}

// ParseDate coerces value into a time. Strings are parsed in UTC using the
// ISO-style layouts SurveyJS produces; numbers are Unix milliseconds. The zero
// time is not a valid date.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		return parseDateString(v)
	default:
		if ms, ok := toNumber(value); ok {
			if math.IsNaN(ms) || math.Abs(ms) > maxDateMillis {
				return time.Time{}, false
			}
			return time.UnixMilli(int64(ms)).UTC(), true
		}
	}
	return time.Time{}, false
}

func parseDateString(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatHTMLDate renders t as YYYY-MM-DD using t's own calendar fields.
func FormatHTMLDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// HTMLDate formats its single argument as YYYY-MM-DD. Strings are parsed
// first; anything that is not a valid date, or a call with other than one
// argument, yields nil.
func HTMLDate(params []any) (any, error) {
	if formatted, ok := htmlDate(params); ok {
		return formatted, nil
	}
	return nil, nil
}

// HTMLDateOrEmpty is HTMLDate with "" as the failure sentinel, for call sites
// that bind the result straight into an input value.
func HTMLDateOrEmpty(params []any) (any, error) {
	if formatted, ok := htmlDate(params); ok {
		return formatted, nil
	}
	return "", nil
}

func htmlDate(params []any) (string, bool) {
	if len(params) != 1 {
		return "", false
	}
	switch params[0].(type) {
	case string, time.Time, *time.Time:
	default:
		return "", false
	}
	parsed, ok := ParseDate(params[0])
	if !ok {
		return "", false
	}
	return FormatHTMLDate(parsed), true
}

// SubtractYears returns htmlDate(date - years) for params [date, years]. The
// date may be anything ParseDate accepts; years must be numeric. Any
// validation failure yields nil.
func SubtractYears(params []any) (any, error) {
	if len(params) != 2 {
		return nil, nil
	}
	years, ok := numericArg(params[1])
	if !ok {
		return nil, nil
	}
	date, ok := ParseDate(params[0])
	if !ok {
		return nil, nil
	}
	year := int(math.Trunc(float64(date.Year()) - years))
	shifted := time.Date(year, date.Month(), date.Day(), date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	return FormatHTMLDate(shifted), nil
}

// IsMinor reports whether the person born on params[0] is younger than
// AdultAge on params[1]. Age is the elapsed time divided by 365.25 days.
// Unlike the other date helpers it fails with an error on bad input.
func IsMinor(params []any) (any, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("%w: isMinor expects 2, got %d", ErrArity, len(params))
	}
	birth, ok := ParseDate(params[0])
	if !ok {
		return nil, fmt.Errorf("functions: isMinor birth date %v: %w", params[0], ErrInvalidDate)
	}
	reference, ok := ParseDate(params[1])
	if !ok {
		return nil, fmt.Errorf("functions: isMinor reference date %v: %w", params[1], ErrInvalidDate)
	}
	return Age(birth, reference) < AdultAge, nil
}

// Age returns the fractional age in years at reference.
func Age(birth, reference time.Time) float64 {
	return float64(reference.UnixMilli()-birth.UnixMilli()) / millisPerYear
}

// numericArg accepts Go numeric kinds and json.Number, never numeric strings.
func numericArg(value any) (float64, bool) {
	n, ok := toNumber(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
