// Package calc evaluates duration expressions and journals every step.
//
// An expression is a whitespace-separated token list evaluated strictly
// left to right, without precedence:
//
//	1m + 1s               // +1m1s
//	1m - 1s - 2s500ms     // +56s500ms
//	1m15s trunc 14s       // +1m10s
//	abs -1h + 30m         // +1h30m
//	_ + 1s                // previous result plus one second
//
// Operands are duration literals (see package duration) or "_" for the
// previous successful result. Binary operators are "+", "-" and "trunc".
// The prefix functions "abs" and "neg" bind to the operand right after them.
//
// Every parse, arithmetic step and whole evaluation is reported to the
// Evaluator's log.Logger, tagged with a per-evaluator session ID.
package calc
