package duration

import (
	"math"
	"time"
)

// Duration is an elapsed time interval in nanoseconds.
// The zero value is a zero-length interval.
type Duration int64

// Unit sizes.
const (
	Nanosecond  Duration = 1
	Microsecond          = 1000 * Nanosecond
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
)

// Representable range.
const (
	// MaxDuration is the largest representable duration (about 292 years).
	MaxDuration Duration = math.MaxInt64

	// MinDuration is the smallest representable duration.
	MinDuration Duration = math.MinInt64
)

// Unit pairs a text suffix with its size.
type Unit struct {
	Suffix string
	Size   Duration
}

// units is ordered from largest to smallest; the formatter relies on it.
var units = [...]Unit{
	{Suffix: "h", Size: Hour},
	{Suffix: "m", Size: Minute},
	{Suffix: "s", Size: Second},
	{Suffix: "ms", Size: Millisecond},
	{Suffix: "us", Size: Microsecond},
	{Suffix: "ns", Size: Nanosecond},
}

// Units returns the unit table, largest unit first.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units[:])
	return out
}

// LookupUnit returns the size of the unit with the given suffix.
func LookupUnit(suffix string) (Duration, bool) {
	for _, u := range units {
		if u.Suffix == suffix {
			return u.Size, true
		}
	}
	return 0, false
}

// New returns a Duration of ns nanoseconds.
func New(ns int64) Duration {
	return Duration(ns)
}

// FromUnit returns v units as a Duration. The product is truncated toward
// zero to a whole nanosecond, so FromUnit(2.5, Nanosecond) is 2ns.
// Out-of-range products saturate; NaN yields zero.
func FromUnit(v float64, unit Duration) Duration {
	return fromFloat(v * float64(unit))
}

// FromStd converts a time.Duration. Both types count nanoseconds, so the
// conversion is exact.
func FromStd(d time.Duration) Duration {
	return Duration(d)
}

func fromFloat(ns float64) Duration {
	// 1<<63 rather than float64(math.MaxInt64): the latter rounds up to 1<<63.
	const limit = 1 << 63
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= limit:
		return MaxDuration
	case ns <= -limit:
		return MinDuration
	}
	return Duration(ns)
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Nanoseconds returns the duration as an integer nanosecond count.
func (d Duration) Nanoseconds() int64 {
	return int64(d)
}

// Microseconds returns the duration as a floating point number of microseconds.
func (d Duration) Microseconds() float64 {
	return float64(d) / float64(Microsecond)
}

// Milliseconds returns the duration as a floating point number of milliseconds.
func (d Duration) Milliseconds() float64 {
	return float64(d) / float64(Millisecond)
}

// Seconds returns the duration as a floating point number of seconds.
func (d Duration) Seconds() float64 {
	return float64(d) / float64(Second)
}

// Minutes returns the duration as a floating point number of minutes.
func (d Duration) Minutes() float64 {
	return float64(d) / float64(Minute)
}

// Hours returns the duration as a floating point number of hours.
func (d Duration) Hours() float64 {
	return float64(d) / float64(Hour)
}

// In returns the duration as a floating point number of the given unit.
// It panics if unit is zero.
func (d Duration) In(unit Duration) float64 {
	if unit == 0 {
		panic("duration: In called with zero unit")
	}
	return float64(d) / float64(unit)
}
