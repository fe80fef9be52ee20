// Package timefmt recognizes the handful of timestamp spellings the form
// backend has produced over time and converts them for display and bucketing
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shape is the recognized spelling of a raw timestamp
type Shape int

// Shapes in classification order
const (
	ShapeUnknown Shape = iota
	// ShapeLocalized is a browser es-ES string, "28/07/2025, 03:47:51 p. m."
	ShapeLocalized
	// ShapeISO is ISO-8601 with a T separator, "2025-07-28T15:47:51.000Z"
	ShapeISO
	// ShapeDateTime is "2025-07-28 15:47:51"
	ShapeDateTime
	// ShapeDate is "2025-07-28"
	ShapeDate
)

func (s Shape) String() string {
	switch s {
	case ShapeLocalized:
		return "localized"
	case ShapeISO:
		return "iso"
	case ShapeDateTime:
		return "datetime"
	case ShapeDate:
		return "date"
	default:
		return "unknown"
	}
}

// Output layouts
const (
	DisplayLayout = "02/01/2006 15:04"
	DayLayout     = "02/01/2006"

	// month, day and clock fields may be unpadded, "2024-1-5 9:05:00"
	dateTimeLayout = "2006-1-2 15:4:5"
	dateLayout     = "2006-1-2"
)

// ErrUnrecognized is returned for strings matching no known shape
var ErrUnrecognized = errors.New("timefmt: unrecognized timestamp")

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
}

// spaces maps the no-break spaces browsers put inside "p. m." to plain ones
var spaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

// HasMeridiem reports whether s carries the es-ES a. m./p. m. marker
func HasMeridiem(s string) bool {
	s = spaces.Replace(s)
	return strings.Contains(s, "a. m.") || strings.Contains(s, "p. m.")
}

// IsLocalized reports a browser formatted string: a slash plus a meridiem marker
func IsLocalized(s string) bool { return strings.Contains(s, "/") && HasMeridiem(s) }

// Classify returns the first matching shape, checked in the order
// localized, ISO, date-time, date
func Classify(raw string) Shape {
	switch {
	case raw == "":
		return ShapeUnknown
	case IsLocalized(raw):
		return ShapeLocalized
	case strings.Contains(raw, "T"):
		return ShapeISO
	case strings.Count(raw, "-") == 2 && strings.Contains(raw, " "):
		return ShapeDateTime
	case strings.Count(raw, "-") == 2:
		return ShapeDate
	default:
		return ShapeUnknown
	}
}

// ParseISO parses ISO-8601 date-times. A trailing Z is UTC, explicit
// offsets are kept, zone-less values are taken as UTC
func ParseISO(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timefmt: parse iso %q", raw)
}

// Display formats a raw timestamp as day/month/year hour:minute.
// ISO strings are parsed, localized strings are already display ready,
// everything else must be year-month-day hour:minute:second. Whatever
// fails to parse is returned untouched
func Display(raw string) string {
	switch {
	case strings.Contains(raw, "T"):
		if t, err := ParseISO(raw); err == nil {
			return t.Format(DisplayLayout)
		}
	case IsLocalized(raw):
	default:
		if t, err := time.Parse(dateTimeLayout, strings.TrimSpace(raw)); err == nil {
			return t.Format(DisplayLayout)
		}
	}
	return raw
}

// DayKey returns the day/month/year bucket for raw. Localized strings
// contribute their date part verbatim. false means skip the value
func DayKey(raw string) (string, bool) {
	switch Classify(raw) {
	case ShapeLocalized:
		day, _, _ := strings.Cut(raw, ",")
		day = strings.TrimSpace(day)
		return day, day != ""
	case ShapeISO:
		t, err := ParseISO(raw)
		if err != nil {
			return "", false
		}
		return t.Format(DayLayout), true
	case ShapeDateTime:
		t, err := time.Parse(dateTimeLayout, strings.TrimSpace(raw))
		if err != nil {
			return "", false
		}
		return t.Format(DayLayout), true
	case ShapeDate:
		t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
		if err != nil {
			return "", false
		}
		return t.Format(DayLayout), true
	default:
		return "", false
	}
}

// ParseDayKey parses day/month/year with optional leading zeros. Impossible
// dates such as 31/02/2024 are errors rather than rolled over
func ParseDayKey(key string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(key), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("timefmt: day key %q: want day/month/year", key)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("timefmt: day key %q: %w", key, err)
		}
		n[i] = v
	}
	day, month, year := n[0], n[1], n[2]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("timefmt: day key %q: no such date", key)
	}
	return t, nil
}

// Chrono resolves raw to an instant for ordering. Localized strings are
// read as day/month/year with an optional 12 hour clock
func Chrono(raw string) (time.Time, bool) {
	var (
		t   time.Time
		err error
	)
	switch Classify(raw) {
	case ShapeLocalized:
		t, err = parseLocalized(raw)
	case ShapeISO:
		t, err = ParseISO(raw)
	case ShapeDateTime:
		t, err = time.Parse(dateTimeLayout, strings.TrimSpace(raw))
	case ShapeDate:
		t, err = time.Parse(dateLayout, strings.TrimSpace(raw))
	default:
		err = ErrUnrecognized
	}
	return t, err == nil
}

// parseLocalized reads "28/07/2025, 03:47:51 p. m."
func parseLocalized(raw string) (time.Time, error) {
	s := spaces.Replace(raw)
	datePart, clock, _ := strings.Cut(s, ",")
	day, err := ParseDayKey(datePart)
	if err != nil {
		return time.Time{}, err
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day, nil
	}

	pm := strings.Contains(clock, "p. m.")
	clock = strings.TrimSpace(strings.NewReplacer("a. m.", "", "p. m.", "").Replace(clock))
	fields := strings.Split(clock, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return time.Time{}, fmt.Errorf("timefmt: localized clock %q", clock)
	}
	var hms [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, fmt.Errorf("timefmt: localized clock %q: %w", clock, err)
		}
		hms[i] = v
	}
	h, m, sec := hms[0], hms[1], hms[2]
	if h < 0 || h > 12 || m > 59 || sec > 59 || m < 0 || sec < 0 {
		return time.Time{}, fmt.Errorf("timefmt: localized clock %q out of range", clock)
	}
	switch {
	case pm && h != 12:
		h += 12
	case !pm && h == 12:
		h = 0
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second), nil
}
