package duration

import (
	"errors"
	"testing"
)

// canonicalCases pairs right-aligned canonical strings with their
// nanosecond values. The padding checks that whitespace is ignored.
var canonicalCases = []struct {
	text string
	ns   int64
}{
	{" +1m6s833ms500us33ns", 66833500033},
	{"     +333ms500us33ns", 333500033},
	{"       +1h1m1ms999ns", 3660001000999},
	{"           +2h6m25ns", 7560000000025},
	{"              +2h30m", 9000000000000},
	{"            +58m33ns", 3480000000033},
	{"            +5us33ns", 5033},
	{"                  0s", 0},
	{"            -5us33ns", -5033},
	{"       -1h1m1ms999ns", -3660001000999},
	{" -1m6s833ms500us33ns", -66833500033},
}

func TestParseCanonicalTable(t *testing.T) {
	for _, tc := range canonicalCases {
		d, err := Parse(tc.text)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tc.text, err)
			continue
		}
		if d.Nanoseconds() != tc.ns {
			t.Errorf("Parse(%q) = %d, want %d", tc.text, d.Nanoseconds(), tc.ns)
		}
	}
}

func TestParseAccepted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Duration
	}{
		{"unsigned", "1m15s", Minute + 15*Second},
		{"explicit plus", "+1h", Hour},
		{"negative", "-1h", -Hour},
		{"negative zero", "-0s", 0},
		{"repeated units accumulate", "+61m61s1001ms1001us1001ns", 3722002002001},
		{"same unit twice", "1s1s", 2 * Second},
		{"descending not required", "1ns1h", Hour + Nanosecond},
		{"fraction", "2.5ms", 2500 * Microsecond},
		{"fraction of hour", "1.5h", 90 * Minute},
		{"fraction truncated", "2.5ns", 2},
		{"fraction truncated negative", "-2.5ns", -2},
		{"tiny fraction", "0.0000001s", 100},
		{"long fraction", "1.123456789123456789123s", Second + 123456789},
		{"trailing point", "2.ms", 2 * Millisecond},
		{"fraction per term", "1.5s1.5ms", 1501500 * Microsecond},
		{"leading zeros", "007s", 7 * Second},
		{"surrounding whitespace", "\t 1m \n", Minute},
		{"carriage return vertical tab and nul", "\r\x0b\x001m\x00\x0b\r", Minute},
		{"microseconds", "5us", 5 * Microsecond},
		{"max", "+2562047h47m16s854ms775us807ns", MaxDuration},
		{"min", "-2562047h47m16s854ms775us808ns", MinDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRejected(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"xyz",
		"10unknown",
		"10",
		"+",
		"-",
		"s",
		"ms",
		".5s",
		"1..5s",
		"1.5.5s",
		"1m 5s",
		"1m-5s",
		"1m+5s",
		"--1s",
		"+-1s",
		"1s!",
		"1S",
		"1sec",
		"1hs",
		"1µs",
		"1m5",
		"h1",
		"\u00a01s\u00a0",
		"\u20031s",
		"1s\u2028",
		"\f1s",
	}

	for _, in := range inputs {
		d, err := Parse(in)
		if err == nil {
			t.Errorf("Parse(%q) = %v, want error", in, d)
			continue
		}
		if d != 0 {
			t.Errorf("Parse(%q) returned partial value %d", in, d)
		}
		if err.Error() != "bad duration format" {
			t.Errorf("Parse(%q) error message = %q, want %q", in, err.Error(), "bad duration format")
		}
		if !errors.Is(err, ErrFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrFormat", in, err)
		}
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("Parse(%q) error type = %T, want *FormatError", in, err)
		}
	}
}

func TestParseFormatErrorKeepsInput(t *testing.T) {
	_, err := Parse("  10unknown ")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Parse() error = %v, want *FormatError", err)
	}
	if fe.Input != "10unknown" {
		t.Errorf("FormatError.Input = %q, want %q", fe.Input, "10unknown")
	}
}

func TestParseSaturates(t *testing.T) {
	tests := []struct {
		in   string
		want Duration
	}{
		{"+2562048h", MaxDuration},
		{"-2562048h", MinDuration},
		{"+2562047h47m16s854ms775us808ns", MaxDuration},
		{"99999999999999999999999h", MaxDuration},
		{"-99999999999999999999999ns", MinDuration},
		{"9223372036854775807ns1ns", MaxDuration},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMustParse(t *testing.T) {
	if got := MustParse("1m1s"); got != Minute+Second {
		t.Errorf("MustParse() = %v, want %v", got, Minute+Second)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse() with bad input did not panic")
		}
	}()
	MustParse("10")
}
