package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/nanodur/nanodur-go/pkg/duration"
)

// Event is one journaled calculation.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the operation completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one evaluator (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Operation performed.
	Operation Operation `cbor:"3,keyasint"`

	// Input is the source text for PARSE and EVAL.
	Input string `cbor:"4,keyasint,omitempty"`

	// Operands are the duration arguments, in call order.
	Operands []duration.Duration `cbor:"5,keyasint,omitempty"`

	// Result is set when the operation succeeded.
	Result *duration.Duration `cbor:"6,keyasint,omitempty"`

	// Error is the error message when the operation failed.
	Error string `cbor:"7,keyasint,omitempty"`

	// Elapsed is how long the operation took.
	Elapsed duration.Duration `cbor:"8,keyasint,omitempty"`

	// Output is the produced text for FORMAT.
	Output string `cbor:"9,keyasint,omitempty"`
}

// Failed reports whether the event records an error.
func (e Event) Failed() bool {
	return e.Error != ""
}

// Operation identifies the journaled operation.
type Operation uint8

const (
	// OpParse is text to duration.
	OpParse Operation = 0
	// OpFormat is duration to canonical text.
	OpFormat Operation = 1
	// OpAbs is the absolute value.
	OpAbs Operation = 2
	// OpNeg is negation.
	OpNeg Operation = 3
	// OpAdd is saturating addition.
	OpAdd Operation = 4
	// OpSub is saturating subtraction.
	OpSub Operation = 5
	// OpTruncate is truncation to a multiple of a unit.
	OpTruncate Operation = 6
	// OpEval is a whole calculator expression.
	OpEval Operation = 7
)

var operationNames = [...]string{
	OpParse:    "PARSE",
	OpFormat:   "FORMAT",
	OpAbs:      "ABS",
	OpNeg:      "NEG",
	OpAdd:      "ADD",
	OpSub:      "SUB",
	OpTruncate: "TRUNCATE",
	OpEval:     "EVAL",
}

// Operations returns all known operations in numeric order.
func Operations() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}

// String returns the operation name.
func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return "UNKNOWN"
}

// MarshalText encodes the operation name so JSON exports stay readable.
func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText accepts an operation name in any case.
func (o *Operation) UnmarshalText(text []byte) error {
	op, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// ParseOperation looks up an operation by name, ignoring case.
func ParseOperation(s string) (Operation, error) {
	for i, name := range operationNames {
		if strings.EqualFold(s, name) {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation: %s", s)
}
