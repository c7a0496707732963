package calc

import (
	"errors"
	"fmt"
)

// Evaluation errors.
var (
	ErrEmptyExpression  = errors.New("empty expression")
	ErrMissingOperand   = errors.New("missing operand")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrNoPreviousResult = errors.New("no previous result")
	ErrArity            = errors.New("wrong number of operands")
	ErrUnknownUnit      = errors.New("unknown unit")
)

// Error locates an evaluation failure within an expression.
// Pos is the 1-based token index; Token is empty past the end of input.
type Error struct {
	Pos   int
	Token string
	Err   error
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("token %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("token %d %q: %v", e.Pos, e.Token, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
