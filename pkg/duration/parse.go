package duration

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// magLimit is the magnitude of MinDuration. Magnitudes are accumulated as
// uint64 and clamped here so that overflow saturates instead of wrapping.
const magLimit uint64 = 1 << 63

// space is the set of characters trimmed from both ends of the input.
// Only ASCII whitespace and NUL qualify; U+00A0 and other Unicode spaces
// are rejected like any other stray character.
const space = " \t\n\r\x00\x0b"

// Parse parses a duration string such as "+1h2m3s", "-5us33ns" or "2.5ms".
//
// Surrounding ASCII whitespace is ignored. The value is an optional sign followed
// by one or more number+unit terms with nothing in between. Repeated units
// accumulate. Magnitudes beyond the int64 range saturate.
//
// On failure Parse returns a *FormatError matching ErrFormat.
func Parse(s string) (Duration, error) {
	s = strings.Trim(s, space)
	sc := scanner{s: s}
	d, ok := sc.scan()
	if !ok {
		return 0, &FormatError{Input: s}
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Duration {
	d, err := Parse(s)
	if err != nil {
		panic(`duration: Parse(` + strconv.Quote(s) + `): ` + err.Error())
	}
	return d
}

// scanner is a single-pass tokenizer over a trimmed duration string.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) scan() (Duration, bool) {
	if sc.s == "" {
		return 0, false
	}

	neg := false
	switch sc.s[0] {
	case '-':
		neg = true
		sc.pos++
	case '+':
		sc.pos++
	}

	var total uint64
	terms := 0
	for sc.pos < len(sc.s) {
		whole, frac, scale, ok := sc.number()
		if !ok {
			return 0, false
		}
		unit, ok := sc.unit()
		if !ok {
			return 0, false
		}
		total = addMag(total, termMag(whole, frac, scale, uint64(unit)))
		terms++
	}
	if terms == 0 {
		return 0, false
	}
	return signed(total, neg), true
}

// number consumes digits with an optional fraction. At least one integer
// digit is required; the fraction digits after '.' may be empty.
// frac/scale is the fractional part, with frac < scale.
func (sc *scanner) number() (whole, frac, scale uint64, ok bool) {
	start := sc.pos
	for sc.pos < len(sc.s) && isDigit(sc.s[sc.pos]) {
		whole = addMag(mulMag(whole, 10), uint64(sc.s[sc.pos]-'0'))
		sc.pos++
	}
	if sc.pos == start {
		return 0, 0, 0, false
	}

	scale = 1
	if sc.pos < len(sc.s) && sc.s[sc.pos] == '.' {
		sc.pos++
		for sc.pos < len(sc.s) && isDigit(sc.s[sc.pos]) {
			// Digits beyond uint64 precision cannot change the truncated result.
			if scale <= math.MaxUint64/10 {
				frac = frac*10 + uint64(sc.s[sc.pos]-'0')
				scale *= 10
			}
			sc.pos++
		}
	}
	return whole, frac, scale, true
}

// unit consumes a unit suffix, preferring two-letter suffixes so that
// "ms" is not read as "m" followed by a stray "s".
func (sc *scanner) unit() (Duration, bool) {
	rest := sc.s[sc.pos:]
	for n := 2; n >= 1; n-- {
		if len(rest) < n {
			continue
		}
		if u, ok := LookupUnit(rest[:n]); ok {
			sc.pos += n
			return u, true
		}
	}
	return 0, false
}

// termMag returns (whole + frac/scale) * unit, truncated toward zero.
func termMag(whole, frac, scale, unit uint64) uint64 {
	v := mulMag(whole, unit)
	if frac == 0 {
		return v
	}
	// frac < scale, so hi < scale and Div64 cannot overflow.
	hi, lo := bits.Mul64(frac, unit)
	q, _ := bits.Div64(hi, lo, scale)
	return addMag(v, q)
}

func signed(mag uint64, neg bool) Duration {
	if neg {
		if mag >= magLimit {
			return MinDuration
		}
		return -Duration(mag)
	}
	if mag > uint64(MaxDuration) {
		return MaxDuration
	}
	return Duration(mag)
}

func addMag(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s > magLimit {
		return magLimit
	}
	return s
}

func mulMag(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 || lo > magLimit {
		return magLimit
	}
	return lo
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
