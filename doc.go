// Package disolve implements a symbolic arithmetic expression engine with
// partial evaluation.
//
// Expressions are trees of numbers, variables, operator combinations,
// parenthesized groups and calls of functions of one variable. They are
// built directly, e.g. New(2, "*", "x"), rather than parsed from text.
// Operators are + - * / % ^; "*", "/", "%" and "^" fold before "+" and "-",
// and operators of the same class fold left to right, so New(2, "*", 3, "^", 2)
// is 36 but New(2, "+", 3, "*", 2) is 8.
//
// Evaluating an expression against a Context whose variables cover all of its
// names gives a number. When some are missing, evaluation gives a smaller
// expression with the known values substituted and everything computable
// folded, which can be evaluated again as more variables become known:
//
//	e := MustNew("m", "*", "x", "+", "b")
//	r, _ := e.Eval(NewContext(SetVar("m", 2), SetVar("x", 3)))
//	// r.String() == "6 + b"
//
// Arithmetic follows IEEE-754: dividing by zero gives an infinity or NaN, not
// an error.
package disolve
