package duration

// Abs returns the magnitude of d. Abs(MinDuration) is MaxDuration since
// the true magnitude is not representable.
func (d Duration) Abs() Duration {
	switch {
	case d >= 0:
		return d
	case d == MinDuration:
		return MaxDuration
	default:
		return -d
	}
}

// Neg returns -d, saturating MinDuration to MaxDuration.
func (d Duration) Neg() Duration {
	if d == MinDuration {
		return MaxDuration
	}
	return -d
}

// Add returns d+o, saturating at MaxDuration or MinDuration on overflow.
func (d Duration) Add(o Duration) Duration {
	s := d + o
	switch {
	case o > 0 && s < d:
		return MaxDuration
	case o < 0 && s > d:
		return MinDuration
	}
	return s
}

// Sub returns d-o, saturating at MaxDuration or MinDuration on overflow.
func (d Duration) Sub(o Duration) Duration {
	s := d - o
	switch {
	case o < 0 && s < d:
		return MaxDuration
	case o > 0 && s > d:
		return MinDuration
	}
	return s
}

// Truncate returns d rounded toward zero to a multiple of u.
// It returns ErrDivisionByZero if u is zero.
func (d Duration) Truncate(u Duration) (Duration, error) {
	if u == 0 {
		return 0, ErrDivisionByZero
	}
	// |d/u*u| <= |d|. MinDuration / -1 wraps, and * -1 wraps back to d.
	return d / u * u, nil
}

// Sum adds ds left to right with saturating Add.
func Sum(ds ...Duration) Duration {
	var total Duration
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
