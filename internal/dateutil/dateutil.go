// Package dateutil normalizes the date shapes the Baserow API accepts and
// renders stored values for display.
//
// Accepted input shapes: bare YYYY-MM-DD, slash-separated YYYY/MM/DD,
// two-digit years (read as 21st century), single-digit month/day, and full
// timestamps YYYY-MM-DDTHH:MM:SS with optional fractional seconds and an
// optional Z or ±HH:MM offset. Normalized output is always dash-separated,
// zero-padded, and carries a zone suffix when time is included.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts the API emits for datetime values.
var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse interprets a normalized date or datetime string as a time.Time.
func Parse(value string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date value %q", value)
}

// Normalize converts any accepted input shape into the wire form for a date
// field. When includeTime is true a date-only input gains T00:00:00Z; when
// it is false an input carrying a time portion is rejected.
func Normalize(input string, includeTime bool) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty date value")
	}

	datePart := input
	timePart := ""
	if i := strings.IndexByte(input, 'T'); i >= 0 {
		datePart = input[:i]
		timePart = input[i+1:]
	}

	if timePart != "" && !includeTime {
		return "", fmt.Errorf("date value %q carries a time but the field is date-only", input)
	}

	datePart = strings.ReplaceAll(datePart, "/", "-")
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("unrecognized date value %q", input)
	}

	year, month, day := parts[0], parts[1], parts[2]
	if len(year) == 2 {
		year = "20" + year
	}
	if len(year) != 4 {
		return "", fmt.Errorf("unrecognized year in %q", input)
	}
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	for _, s := range []string{year, month, day} {
		if _, err := strconv.Atoi(s); err != nil {
			return "", fmt.Errorf("unrecognized date value %q", input)
		}
	}

	date := fmt.Sprintf("%s-%s-%s", year, month, day)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid calendar date %q", input)
	}

	if !includeTime {
		return date, nil
	}

	if timePart == "" {
		return date + "T00:00:00Z", nil
	}

	normalized := date + "T" + timePart
	if !hasZoneSuffix(timePart) {
		normalized += "Z"
	}
	if _, err := Parse(normalized); err != nil {
		return "", fmt.Errorf("invalid time portion in %q", input)
	}
	return normalized, nil
}

// hasZoneSuffix reports whether a time portion already carries Z or ±HH:MM.
func hasZoneSuffix(timePart string) bool {
	if strings.HasSuffix(timePart, "Z") {
		return true
	}
	// An offset sign after the seconds, e.g. 10:30:00+02:00. The first two
	// colons belong to HH:MM:SS; any later +/- is an offset.
	if i := strings.LastIndexAny(timePart, "+-"); i > 7 {
		return true
	}
	return false
}

// FormatConfig carries the field settings that drive display formatting.
type FormatConfig struct {
	DateFormat    string // "US", "EU", or "ISO"
	TimeFormat    string // "12" or "24"
	IncludeTime   bool
	ShowTZ        bool
	ForceTimezone string // IANA zone name, empty for local
}

var dateLayouts = map[string]string{
	"US":  "01-02-2006",
	"EU":  "02-01-2006",
	"ISO": "2006-01-02",
}

var timeLayouts = map[string]string{
	"12": "03:04:05 PM",
	"24": "15:04:05",
}

// Format renders a normalized wire value for display per the field settings.
func Format(value string, cfg FormatConfig) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}

	dateLayout, ok := dateLayouts[cfg.DateFormat]
	if !ok {
		dateLayout = dateLayouts["ISO"]
	}

	if !cfg.IncludeTime {
		return t.Format(dateLayout), nil
	}

	loc := time.Local
	if cfg.ForceTimezone != "" {
		loc, err = time.LoadLocation(cfg.ForceTimezone)
		if err != nil {
			return "", fmt.Errorf("load timezone %q: %w", cfg.ForceTimezone, err)
		}
	}
	t = t.In(loc)

	timeLayout, ok := timeLayouts[cfg.TimeFormat]
	if !ok {
		timeLayout = timeLayouts["24"]
	}

	out := t.Format(dateLayout) + " " + t.Format(timeLayout)
	if cfg.ShowTZ {
		zone, _ := t.Zone()
		out += " " + zone
	}
	return out, nil
}
