// Package duration parses YouTube ISO-8601 durations and renders seconds
// in the display units offered to users.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	isoduration "github.com/sosodev/duration"
)

// ParseSeconds converts an encoded duration such as "PT1H2M3S" into whole seconds.
// Absent fields count as zero and fractional seconds are truncated.
// Empty, negative or unparseable input yields 0.
func ParseSeconds(encoded string) int64 {
	s := strings.TrimSpace(encoded)
	if !strings.HasPrefix(s, "P") {
		return 0
	}
	d, err := isoduration.Parse(s)
	if err != nil {
		return 0
	}
	return int64(d.ToTimeDuration() / time.Second)
}

// Unit is a display unit for durations.
type Unit string

const (
	Hours   Unit = "hrs"
	Minutes Unit = "min"
	Seconds Unit = "sec"
)

// ParseUnit accepts the short codes and the long names ("hours", "minutes", "seconds").
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hrs", "hours", "h", "":
		return Hours, nil
	case "min", "minutes", "m":
		return Minutes, nil
	case "sec", "seconds", "s":
		return Seconds, nil
	default:
		return "", errors.Newf("unknown duration unit: %q", s)
	}
}

// Label returns the suffix shown next to a formatted value.
func (u Unit) Label() string {
	switch u {
	case Minutes:
		return "Min"
	case Seconds:
		return "Sec"
	default:
		return "Hrs"
	}
}

// Format renders totalSeconds in the given unit.
// Fractional seconds are truncated; negative input is treated as zero.
//
//	Hours:   H:MM:SS
//	Minutes: M:SS (M is the total minutes)
//	Seconds: the plain integer total
func Format(totalSeconds float64, unit Unit) string {
	total := int64(math.Trunc(totalSeconds))
	if total < 0 || math.IsNaN(totalSeconds) {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch unit {
	case Minutes:
		return fmt.Sprintf("%d:%02d", hours*60+minutes, seconds)
	case Seconds:
		return strconv.FormatInt(total, 10)
	default:
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
}

// FormatWithLabel is Format followed by the unit label, e.g. "1:05:30 Hrs".
func FormatWithLabel(totalSeconds float64, unit Unit) string {
	return Format(totalSeconds, unit) + " " + unit.Label()
}
