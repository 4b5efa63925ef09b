package disolve

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Node is a node in an expression tree. A tree is never modified after it is
// constructed: evaluation produces new nodes, and constructors adopt their
// children.
type Node struct {
	kind Kind

	num  float64
	name string // variable name, or function name for calls

	// terms are the operands of a combination or group, or the single
	// argument of a call. len(ops) == len(terms)-1 for combinations and
	// groups.
	terms []*Node
	ops   []Operator

	parent *Node
}

// Kind identifies the variant of a node.
type Kind int8

const (
	KindNone Kind = iota

	KindNumber      // num
	KindVariable    // lookup(name)
	KindCombination // terms[0] ops[0] terms[1] ops[1] ...
	KindGroup       // combination rendered in parentheses
	KindCall        // name(terms[0])
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindVariable:
		return "Variable"
	case KindCombination:
		return "Combination"
	case KindGroup:
		return "Group"
	case KindCall:
		return "Call"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Parent returns the node that owns n, or nil if n is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Value returns the value of a number node. ok is false for any other kind.
func (n *Node) Value() (v float64, ok bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	return n.num, true
}

// Name returns the name of a variable or the function name of a call. It is
// empty for other kinds.
func (n *Node) Name() string {
	return n.name
}

// Terms returns a copy of the operands of a combination or group, or the
// argument of a call.
func (n *Node) Terms() []*Node {
	return append([]*Node(nil), n.terms...)
}

// Ops returns a copy of the operators of a combination or group.
func (n *Node) Ops() []Operator {
	return append([]Operator(nil), n.ops...)
}

// Arg returns the argument of a call, or nil for other kinds.
func (n *Node) Arg() *Node {
	if n.kind != KindCall {
		return nil
	}
	return n.terms[0]
}

// Clone returns a deep copy of n. The copy is a root and shares no nodes with
// n.
func (n *Node) Clone() *Node {
	c := &Node{kind: n.kind, num: n.num, name: n.name}
	if n.terms != nil {
		c.terms = make([]*Node, len(n.terms))
		for i, t := range n.terms {
			c.terms[i] = t.Clone()
			c.terms[i].parent = c
		}
	}
	if n.ops != nil {
		c.ops = append([]Operator(nil), n.ops...)
	}
	return c
}

// Unknowns returns the names of variables in n that are not known in ctx, in
// depth-first order. Names appear once per occurrence.
func (n *Node) Unknowns(ctx *Context) []string {
	return n.unknowns(ctx, nil)
}

func (n *Node) unknowns(ctx *Context, dst []string) []string {
	switch n.kind {
	case KindNumber: // do nothing
	case KindVariable:
		if !ctx.Known(n.name) {
			dst = append(dst, n.name)
		}
	case KindCombination, KindGroup, KindCall:
		for _, t := range n.terms {
			dst = t.unknowns(ctx, dst)
		}
	default:
		panic("disolve: invalid node kind " + n.kind.String())
	}
	return dst
}

// Vars returns the sorted names of all variables in n, each once.
func (n *Node) Vars() []string {
	all := n.unknowns(nil, nil)
	if len(all) == 0 {
		return nil
	}
	sort.Strings(all)
	r := all[:1]
	for _, v := range all[1:] {
		if v != r[len(r)-1] {
			r = append(r, v)
		}
	}
	return r
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	switch n.kind {
	case KindNumber:
		b.WriteString(fmtnum(n.num))
	case KindVariable:
		b.WriteString(n.name)
	case KindCombination:
		n.fmtterms(b)
	case KindGroup:
		b.WriteByte('(')
		n.fmtterms(b)
		b.WriteByte(')')
	case KindCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.terms[0].fmt(b)
		b.WriteByte(')')
	default:
		panic("disolve: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *Node) fmtterms(b *strings.Builder) {
	if n.juxtaposed() {
		n.terms[0].fmt(b)
		n.terms[1].fmt(b)
		return
	}
	for i, t := range n.terms {
		paren := false
		if i > 0 {
			op := n.ops[i-1]
			b.WriteString(op.spaced())
			paren = t.parenRight(op)
		}
		if i < len(n.ops) && t.strength() < n.ops[i].Class() {
			paren = true
		}
		if paren {
			b.WriteByte('(')
			t.fmt(b)
			b.WriteByte(')')
		} else {
			t.fmt(b)
		}
	}
}

// juxtaposed returns whether n is a product written without an operator, as
// in 2x or mx. The right operand must be a name starting with a letter, and
// the two written together must not read as a number, so 2 * e5 and 3 * "2"
// keep their operator.
func (n *Node) juxtaposed() bool {
	if len(n.ops) != 1 || n.ops[0] != Mul {
		return false
	}
	l, r := n.terms[0], n.terms[1]
	if r.kind != KindVariable || !wordlike(r.name) {
		return false
	}
	var left string
	switch l.kind {
	case KindNumber:
		if math.IsInf(l.num, 0) || math.IsNaN(l.num) {
			return false
		}
		left = fmtnum(l.num)
	case KindVariable:
		left = l.name
	default:
		return false
	}
	return !numeric(left + r.name)
}

// wordlike returns whether name starts with a letter and does not spell a
// number such as NaN or Inf.
func wordlike(name string) bool {
	c, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLetter(c) && !numeric(name)
}

// numeric returns whether s is syntactically a floating-point number.
func numeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return !errors.Is(err, strconv.ErrSyntax)
}

// strength returns the class of the weakest operator that holds n together
// without parentheses.
func (n *Node) strength() Class {
	if n.kind != KindCombination || n.juxtaposed() {
		return atomic
	}
	if len(n.ops) == 0 {
		return n.terms[0].strength()
	}
	s := atomic
	for _, op := range n.ops {
		if c := op.Class(); c < s {
			s = c
		}
	}
	return s
}

// parenRight returns whether n needs parentheses as the right operand of op.
// Folding is left to right, so a right operand of the same class keeps its
// parentheses unless op is + or an unbroken product.
func (n *Node) parenRight(op Operator) bool {
	s := n.strength()
	switch {
	case s == atomic, s > op.Class():
		return false
	case s < op.Class():
		return true
	case op == Add:
		return false
	case op == Mul:
		return !n.only(Mul)
	}
	return true
}

// only returns whether every operator in n's top level is op.
func (n *Node) only(op Operator) bool {
	if len(n.ops) == 0 {
		return n.terms[0].kind == KindCombination && n.terms[0].only(op)
	}
	for _, o := range n.ops {
		if o != op {
			return false
		}
	}
	return true
}

func fmtnum(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
