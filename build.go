package disolve

import (
	"fmt"
	"strconv"
)

// Num creates a number node.
func Num(v float64) *Node {
	return &Node{kind: KindNumber, num: v}
}

// Var creates a variable node.
func Var(name string) *Node {
	return &Node{kind: KindVariable, name: name}
}

// New creates a combination from an alternating list of operands and
// operators, e.g. New(2, "*", "x") or New("x", "+", 1, "/", y).
//
// Operands may be *Node, any integer or floating-point value, or a string
// naming a variable. Operators may be Operator values or strings holding one
// of the symbols + - * / % ^. A string that is an operator symbol is never a
// variable. A node that already belongs to another tree, or that appears
// more than once in terms, is cloned rather than moved.
//
// The error, if any, is an *OperatorError or a *SequenceError.
func New(terms ...any) (*Node, error) {
	return build(KindCombination, terms)
}

// MustNew is like New but panics on error.
func MustNew(terms ...any) *Node {
	n, err := New(terms...)
	if err != nil {
		panic(err)
	}
	return n
}

// Group creates a combination like New that is always rendered in
// parentheses.
func Group(terms ...any) (*Node, error) {
	return build(KindGroup, terms)
}

// MustGroup is like Group but panics on error.
func MustGroup(terms ...any) *Node {
	n, err := Group(terms...)
	if err != nil {
		panic(err)
	}
	return n
}

// Call creates a call of the named function on arg, which may be anything
// that New accepts as an operand. The function is resolved when the call is
// evaluated.
func Call(name string, arg any) (*Node, error) {
	if name == "" {
		return nil, &FuncError{}
	}
	a, err := operand(0, arg)
	if err != nil {
		return nil, err
	}
	return adopt(&Node{kind: KindCall, name: name, terms: []*Node{a}}), nil
}

// MustCall is like Call but panics on error.
func MustCall(name string, arg any) *Node {
	n, err := Call(name, arg)
	if err != nil {
		panic(err)
	}
	return n
}

func build(kind Kind, terms []any) (*Node, error) {
	if len(terms) == 0 {
		return nil, &SequenceError{Pos: 0, Reason: "no terms"}
	}
	n := &Node{kind: kind, terms: make([]*Node, 0, len(terms)/2+1)}
	for i, t := range terms {
		if i%2 == 1 {
			op, err := operator(i, t)
			if err != nil {
				return nil, err
			}
			n.ops = append(n.ops, op)
			continue
		}
		c, err := operand(i, t)
		if err != nil {
			return nil, err
		}
		n.terms = append(n.terms, c)
	}
	if len(terms)%2 == 0 {
		return nil, &SequenceError{Pos: len(terms), Reason: "ends with an operator"}
	}
	return adopt(n), nil
}

// adopt sets n as the parent of its terms. Terms that already have a parent,
// including a node appearing more than once in n's own terms, are replaced
// with clones.
func adopt(n *Node) *Node {
	for i, t := range n.terms {
		if t.parent != nil {
			t = t.Clone()
			n.terms[i] = t
		}
		t.parent = n
	}
	return n
}

func operator(pos int, t any) (Operator, error) {
	switch t := t.(type) {
	case Operator:
		if !t.Valid() {
			return 0, &OperatorError{Pos: pos, Operator: t.String()}
		}
		return t, nil
	case string:
		op, err := ParseOperator(t)
		if err != nil {
			return 0, &OperatorError{Pos: pos, Operator: t}
		}
		return op, nil
	}
	return 0, &SequenceError{Pos: pos, Reason: fmt.Sprintf("expected operator, got %T", t)}
}

func operand(pos int, t any) (*Node, error) {
	switch t := t.(type) {
	case *Node:
		if t == nil || t.kind == KindNone {
			return nil, &SequenceError{Pos: pos, Reason: "invalid node"}
		}
		return t, nil
	case string:
		if t == "" {
			return nil, &SequenceError{Pos: pos, Reason: "empty variable name"}
		}
		if _, err := ParseOperator(t); err == nil {
			return nil, &SequenceError{Pos: pos, Reason: "expected operand, got operator " + strconv.Quote(t)}
		}
		return Var(t), nil
	case Operator:
		return nil, &SequenceError{Pos: pos, Reason: "expected operand, got operator " + strconv.Quote(t.String())}
	case float64:
		return Num(t), nil
	case float32:
		return Num(float64(t)), nil
	case int:
		return Num(float64(t)), nil
	case int8:
		return Num(float64(t)), nil
	case int16:
		return Num(float64(t)), nil
	case int32:
		return Num(float64(t)), nil
	case int64:
		return Num(float64(t)), nil
	case uint:
		return Num(float64(t)), nil
	case uint8:
		return Num(float64(t)), nil
	case uint16:
		return Num(float64(t)), nil
	case uint32:
		return Num(float64(t)), nil
	case uint64:
		return Num(float64(t)), nil
	}
	return nil, &SequenceError{Pos: pos, Reason: fmt.Sprintf("unsupported operand type %T", t)}
}
