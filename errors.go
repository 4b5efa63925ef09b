package disolve

import (
	"strconv"
	"strings"
)

// OperatorError is an error indicating an operator symbol that is not one of
// + - * / % ^.
type OperatorError struct {
	// Pos is the index of the operator among the terms passed to a
	// constructor, or -1 if it did not come from a term list.
	Pos int
	// Operator is the symbol that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Pos, "unknown operator "+strconv.Quote(err.Operator))
}

// SequenceError is an error indicating a term list that does not alternate
// operand, operator, operand, and so on.
type SequenceError struct {
	// Pos is the index of the offending term, or the length of the list if
	// the list ended early.
	Pos int
	// Reason describes the problem.
	Reason string
}

func (err *SequenceError) Error() string {
	return errpos(err.Pos, "malformed sequence: "+err.Reason)
}

// ArgumentError is an error indicating a function call whose argument could
// not be reduced to a number.
type ArgumentError struct {
	// Func is the name of the function.
	Func string
	// Unknowns are the unresolved variables in the argument.
	Unknowns []string
}

func (err *ArgumentError) Error() string {
	return "unresolved argument to " + err.Func + ": unknown " + strings.Join(err.Unknowns, ", ")
}

// FuncError is an error indicating a call to a function that does not exist
// in the evaluation context.
type FuncError struct {
	// Name is the function name that was called.
	Name string
}

func (err *FuncError) Error() string {
	if err.Name == "" {
		return "empty function name"
	}
	return "undefined function: " + strconv.Quote(err.Name)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos < 0 {
		return msg
	}
	return "term " + strconv.Itoa(pos) + ": " + msg
}
