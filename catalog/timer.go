// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	containers "github.com/wundergraph/go-containers"
)

// TimeUnit selects how durations are reported.
type TimeUnit int

const (
	Nano TimeUnit = iota
	Micro
	Second
)

// Lookup tables indexed by TimeUnit.
var (
	unitNames    = containers.FixedOf("nano", "micro", "second")
	unitSuffixes = containers.FixedOf(" nano seconds", " micro seconds", " seconds")
	unitDivisors = containers.FixedOf(float64(time.Nanosecond), float64(time.Microsecond), float64(time.Second))
)

func (u TimeUnit) String() string {
	if u < 0 || int(u) >= unitNames.Len() {
		return "unknown"
	}
	return unitNames.At(int(u))
}

// ParseTimeUnit accepts "nano", "micro" or "second", case-insensitively.
func ParseTimeUnit(s string) (TimeUnit, error) {
	for i, name := range unitNames.All() {
		if strings.EqualFold(s, name) {
			return TimeUnit(i), nil
		}
	}
	return 0, errors.Newf("unknown time unit %q", s)
}

// FormatDuration appends d to buf as a three-decimal number followed by the
// unit name, e.g. "12.500 micro seconds".
func FormatDuration(buf *containers.Buffer, d time.Duration, u TimeUnit) {
	buf.Printf("%.3f%s", float64(d)/unitDivisors.At(int(u)), unitSuffixes.At(int(u)))
}
