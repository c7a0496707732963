// Package commands implements the nanodur CLI commands.
package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nanodur/nanodur-go/pkg/calc"
	"github.com/nanodur/nanodur-go/pkg/duration"
)

// RunParse parses text and prints its nanosecond count and canonical form.
func RunParse(ev *calc.Evaluator, text string, w io.Writer) error {
	d, err := ev.Parse(text)
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}
	fmt.Fprintf(w, "Nanoseconds: %d\n", d.Nanoseconds())
	fmt.Fprintf(w, "Canonical:   %s\n", ev.Format(d))
	return nil
}

// RunFormat prints the canonical form of a nanosecond count.
func RunFormat(ev *calc.Evaluator, nanos string, w io.Writer) error {
	n, err := strconv.ParseInt(strings.TrimSpace(nanos), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid nanosecond count %q: %w", nanos, err)
	}
	fmt.Fprintln(w, ev.Format(duration.New(n)))
	return nil
}

// RunEval evaluates a calculator expression and prints the result.
func RunEval(ev *calc.Evaluator, expr string, w io.Writer) error {
	d, err := ev.Eval(expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, d)
	return nil
}

// RunConvert parses text and prints it as a number of the given unit.
func RunConvert(ev *calc.Evaluator, unit, text string, w io.Writer) error {
	d, err := ev.Parse(text)
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}
	v, err := calc.Convert(d, unit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s%s\n", strconv.FormatFloat(v, 'g', -1, 64), unit)
	return nil
}
