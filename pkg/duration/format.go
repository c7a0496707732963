package duration

import "strconv"

// String returns the canonical form of d: "0s" for zero, otherwise a sign
// followed by one term per non-zero unit from hours down to nanoseconds,
// e.g. "+1h2m1s" or "-5us33ns". Parse(d.String()) == d for every d.
func (d Duration) String() string {
	// Longest output is MinDuration: "-2562047h47m16s854ms775us808ns".
	var buf [32]byte
	return string(AppendFormat(buf[:0], d))
}

// Format returns d.String().
func Format(d Duration) string {
	return d.String()
}

// AppendFormat appends the canonical form of d to b.
func AppendFormat(b []byte, d Duration) []byte {
	if d == 0 {
		return append(b, "0s"...)
	}

	// Unsigned negation keeps MinDuration's magnitude intact.
	mag := uint64(d)
	if d < 0 {
		b = append(b, '-')
		mag = -mag
	} else {
		b = append(b, '+')
	}

	for _, u := range units {
		size := uint64(u.Size)
		if mag < size {
			continue
		}
		q := mag / size
		mag -= q * size
		b = strconv.AppendUint(b, q, 10)
		b = append(b, u.Suffix...)
	}
	return b
}
