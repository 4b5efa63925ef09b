package disolve

import (
	"math"
	"strconv"
)

// Operator is a binary arithmetic operator. The zero value is not a valid
// operator; use the constants or ParseOperator.
type Operator byte

const (
	Add Operator = '+'
	Sub Operator = '-'
	Mul Operator = '*'
	Div Operator = '/'
	Mod Operator = '%'
	Pow Operator = '^'
)

// Class is the precedence class of an operator. Operators of a higher class
// fold before operators of a lower one; within a class, folding is left to
// right.
type Class int8

const (
	// Low is the class of + and -.
	Low Class = iota
	// High is the class of *, /, % and ^.
	High
	// atomic is the strength of anything that never needs parentheses.
	atomic
)

func (c Class) String() string {
	switch c {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return "Class(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseOperator returns the operator for sym. The error, if any, is an
// *OperatorError.
func ParseOperator(sym string) (Operator, error) {
	if len(sym) == 1 {
		if op := Operator(sym[0]); op.Valid() {
			return op, nil
		}
	}
	return 0, &OperatorError{Pos: -1, Operator: sym}
}

// Valid returns whether op is one of the six recognized operators.
func (op Operator) Valid() bool {
	switch op {
	case Add, Sub, Mul, Div, Mod, Pow:
		return true
	}
	return false
}

// Class returns the precedence class of op. Panics if op is not valid.
func (op Operator) Class() Class {
	switch op {
	case Add, Sub:
		return Low
	case Mul, Div, Mod, Pow:
		return High
	}
	panic("disolve: invalid operator " + strconv.QuoteRune(rune(op)))
}

// Apply computes a op b with IEEE-754 semantics. Division by zero gives an
// infinity or NaN rather than an error. The remainder truncates, so its sign
// follows a.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		return a / b
	case Mod:
		return math.Mod(a, b)
	case Pow:
		return math.Pow(a, b)
	}
	panic("disolve: invalid operator " + strconv.QuoteRune(rune(op)))
}

// String returns the operator's symbol.
func (op Operator) String() string {
	return string(rune(op))
}

// spaced returns the operator as it appears between two operands.
func (op Operator) spaced() string {
	if op == Pow {
		return "^"
	}
	return " " + string(rune(op)) + " "
}
