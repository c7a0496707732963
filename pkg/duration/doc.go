// Package duration implements a fixed-precision time interval value.
//
// A Duration stores a signed 64-bit count of nanoseconds. It can be parsed
// from and formatted to a compact human-readable form such as "+1h2m3s", and
// supports saturating arithmetic.
//
// # Text Format
//
// A duration string is an optional leading sign followed by one or more
// terms. A term is a non-negative decimal number immediately followed by a
// unit suffix:
//
//	ns  nanoseconds
//	us  microseconds
//	ms  milliseconds
//	s   seconds
//	m   minutes
//	h   hours
//
// Terms are concatenated without separators ("1h30m", "2.5ms"). The sign
// applies to the whole value. Surrounding ASCII whitespace (space, tab,
// newline, carriage return, vertical tab and NUL) is ignored; any other
// character is rejected with ErrFormat.
//
// Terms are not normalized while parsing: "61m61s" is accepted and simply
// accumulates. Formatting always produces the canonical form, decomposing
// the magnitude greedily from hours down to nanoseconds:
//
//	MustParse("61m61s").String() // "+1h2m1s"
//	Duration(0).String()         // "0s"
//
// # Arithmetic
//
// Duration values are immutable. Add, Sub, Abs and Neg saturate at
// MaxDuration and MinDuration instead of wrapping around. Truncate returns
// ErrDivisionByZero for a zero unit.
//
// # Encodings
//
// Duration implements encoding.TextMarshaler (and so JSON), yaml.Marshaler,
// cbor.Marshaler and flag.Value. CBOR carries the raw nanosecond count;
// the text forms carry the canonical string.
package duration
