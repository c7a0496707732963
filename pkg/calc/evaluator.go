package calc

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nanodur/nanodur-go/pkg/duration"
	"github.com/nanodur/nanodur-go/pkg/log"
)

// Evaluator parses and evaluates duration expressions, reporting each
// operation to a journal. It remembers the last successful Eval result.
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	logger    log.Logger
	sessionID string
	now       func() time.Time

	last    duration.Duration
	hasLast bool
}

// NewEvaluator creates an Evaluator with a fresh session ID.
// A nil logger disables journaling.
func NewEvaluator(logger log.Logger) *Evaluator {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Evaluator{
		logger:    logger,
		sessionID: uuid.New().String(),
		now:       time.Now,
	}
}

// SessionID returns the ID attached to every journaled event.
func (e *Evaluator) SessionID() string {
	return e.sessionID
}

// Last returns the result of the last successful Eval.
func (e *Evaluator) Last() (duration.Duration, bool) {
	return e.last, e.hasLast
}

// Parse parses a duration literal.
func (e *Evaluator) Parse(s string) (duration.Duration, error) {
	start := e.now()
	d, err := duration.Parse(s)
	e.emit(log.Event{Operation: log.OpParse, Input: s}, d, err, start)
	return d, err
}

// Format returns the canonical form of d.
func (e *Evaluator) Format(d duration.Duration) string {
	start := e.now()
	s := d.String()
	e.emit(log.Event{Operation: log.OpFormat, Operands: []duration.Duration{d}, Output: s}, d, nil, start)
	return s
}

// Apply performs a single arithmetic operation. ABS and NEG take one
// operand; ADD, SUB and TRUNCATE take two.
func (e *Evaluator) Apply(op log.Operation, operands ...duration.Duration) (duration.Duration, error) {
	start := e.now()
	res, err := apply(op, operands)
	e.emit(log.Event{Operation: op, Operands: operands}, res, err, start)
	return res, err
}

func apply(op log.Operation, operands []duration.Duration) (duration.Duration, error) {
	want := 2
	switch op {
	case log.OpAbs, log.OpNeg:
		want = 1
	case log.OpAdd, log.OpSub, log.OpTruncate:
	default:
		return 0, fmt.Errorf("operation %s is not arithmetic", op)
	}
	if len(operands) != want {
		return 0, fmt.Errorf("%s: %w: got %d, want %d", op, ErrArity, len(operands), want)
	}

	switch op {
	case log.OpAbs:
		return operands[0].Abs(), nil
	case log.OpNeg:
		return operands[0].Neg(), nil
	case log.OpAdd:
		return operands[0].Add(operands[1]), nil
	case log.OpSub:
		return operands[0].Sub(operands[1]), nil
	default:
		return operands[0].Truncate(operands[1])
	}
}

// Eval evaluates an expression. On success the result becomes the value
// of "_" in later expressions.
func (e *Evaluator) Eval(expr string) (duration.Duration, error) {
	start := e.now()
	st := &evalState{e: e, toks: strings.Fields(expr)}
	res, err := st.run()
	if err != nil {
		res = 0
	}
	e.emit(log.Event{Operation: log.OpEval, Input: expr}, res, err, start)
	if err == nil {
		e.last, e.hasLast = res, true
	}
	return res, err
}

func (e *Evaluator) emit(event log.Event, res duration.Duration, err error, start time.Time) {
	end := e.now()
	event.Timestamp = end
	event.SessionID = e.sessionID
	event.Elapsed = duration.FromStd(end.Sub(start))
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Result = &res
	}
	e.logger.Log(event)
}

// evalState walks the token list of one expression.
type evalState struct {
	e    *Evaluator
	toks []string
	pos  int
}

func (s *evalState) run() (duration.Duration, error) {
	if len(s.toks) == 0 {
		return 0, ErrEmptyExpression
	}

	acc, err := s.term()
	if err != nil {
		return 0, err
	}
	for s.pos < len(s.toks) {
		at := s.pos
		op, ok := binaryOp(s.toks[at])
		if !ok {
			return 0, s.errAt(at, ErrUnexpectedToken)
		}
		s.pos++

		rhs, err := s.term()
		if err != nil {
			return 0, err
		}
		acc, err = s.e.Apply(op, acc, rhs)
		if err != nil {
			return 0, s.errAt(at, err)
		}
	}
	return acc, nil
}

func (s *evalState) term() (duration.Duration, error) {
	if s.pos >= len(s.toks) {
		return 0, &Error{Pos: s.pos + 1, Err: ErrMissingOperand}
	}
	at := s.pos
	tok := s.toks[at]
	s.pos++

	if _, isOp := binaryOp(tok); isOp {
		return 0, s.errAt(at, ErrMissingOperand)
	}

	switch strings.ToLower(tok) {
	case "abs", "neg":
		v, err := s.term()
		if err != nil {
			return 0, err
		}
		op := log.OpAbs
		if strings.EqualFold(tok, "neg") {
			op = log.OpNeg
		}
		return s.e.Apply(op, v)
	case "_":
		if !s.e.hasLast {
			return 0, s.errAt(at, ErrNoPreviousResult)
		}
		return s.e.last, nil
	}

	d, err := s.e.Parse(tok)
	if err != nil {
		return 0, s.errAt(at, err)
	}
	return d, nil
}

func (s *evalState) errAt(i int, err error) error {
	return &Error{Pos: i + 1, Token: s.toks[i], Err: err}
}

func binaryOp(tok string) (log.Operation, bool) {
	switch strings.ToLower(tok) {
	case "+":
		return log.OpAdd, true
	case "-":
		return log.OpSub, true
	case "trunc", "truncate":
		return log.OpTruncate, true
	}
	return 0, false
}

// Convert expresses d in the unit with the given suffix.
func Convert(d duration.Duration, unit string) (float64, error) {
	size, ok := duration.LookupUnit(unit)
	if !ok {
		return 0, fmt.Errorf("%w %q (want ns, us, ms, s, m or h)", ErrUnknownUnit, unit)
	}
	return d.In(size), nil
}
