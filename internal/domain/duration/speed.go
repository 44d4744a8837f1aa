package duration

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Speed is a playback speed multiplier.
type Speed float64

const Normal Speed = 1

// Speeds lists the playback speeds offered to users.
var Speeds = []Speed{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// ParseSpeed parses "1.5", "1.5x" or "normal".
// Only values from Speeds are accepted.
func ParseSpeed(s string) (Speed, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "x")
	if s == "" || s == "normal" {
		return Normal, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid playback speed: %q", s)
	}
	for _, v := range Speeds {
		if float64(v) == f {
			return v, nil
		}
	}
	return 0, errors.Newf("unsupported playback speed: %s", s)
}

// Apply returns the wall-clock time needed to watch seconds at this speed.
func (s Speed) Apply(seconds int64) float64 {
	if s <= 0 {
		return float64(seconds)
	}
	return float64(seconds) / float64(s)
}

func (s Speed) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "x"
}
