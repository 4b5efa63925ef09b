package disolve

import (
	"sort"
	"strconv"
)

// Context is a context for evaluating expressions: the table of known variable
// values and the functions calls may use. Assignments write to the context.
// It is not safe to use a Context concurrently.
//
// A nil *Context is an empty context with the default functions.
type Context struct {
	names map[string]float64
	funcs map[string]Func
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varsopt   map[string]float64
	funcsopt  map[string]Func
	nofuncopt struct{}

	varopt struct {
		name string
		val  float64
	}
	funcopt struct {
		name string
		fn   Func
	}
)

func (varopt) ctxOption()    {}
func (varsopt) ctxOption()   {}
func (funcopt) ctxOption()   {}
func (funcsopt) ctxOption()  {}
func (nofuncopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// SetFunc sets a function in the context. A nil fn disables the function,
// including a default or engine-defined one of the same name.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs sets any number of functions in the context, as if by SetFunc.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// DisableDefaultFuncs removes every default and engine-defined function from
// the context. Functions set by other options are unaffected regardless of
// order.
func DisableDefaultFuncs() ContextOption {
	return nofuncopt{}
}

// NewContext creates a new evaluation context with the default functions.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Writes to the
// clone, e.g. by assignments, do not affect ctx.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]float64),
		funcs: make(map[string]Func),
	}
	if ctx != nil {
		for k, v := range ctx.names {
			n.names[k] = v
		}
		for k, v := range ctx.funcs {
			n.funcs[k] = v
		}
	}
	// Disabling defaults happens first so that it never removes a function
	// set explicitly.
	for _, opt := range opts {
		if _, ok := opt.(nofuncopt); ok {
			for k := range mathfuncs {
				n.funcs[k] = nil
			}
			for k := range enginefuncs {
				n.funcs[k] = nil
			}
			break
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case funcopt:
			n.funcs[opt.name] = opt.fn
		case funcsopt:
			for k, v := range opt {
				n.funcs[k] = v
			}
		case nofuncopt:
			// Already done. Do nothing.
		default:
			panic("disolve: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]float64)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is known.
func (ctx *Context) Lookup(name string) (float64, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.names[name]
	return v, ok
}

// Known returns whether the context has a value for a variable.
func (ctx *Context) Known(name string) bool {
	_, ok := ctx.Lookup(name)
	return ok
}

// Vars returns the sorted names of all known variables.
func (ctx *Context) Vars() []string {
	if ctx == nil || len(ctx.names) == 0 {
		return nil
	}
	r := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// fn looks up a function, first in the context's table, then among the
// defaults, then among the engine-defined functions. The result is nil if
// there is no such function or it is disabled.
func (ctx *Context) fn(name string) Func {
	if ctx != nil {
		if f, ok := ctx.funcs[name]; ok {
			return f
		}
	}
	if f, ok := mathfuncs[name]; ok {
		return f
	}
	return enginefuncs[name]
}

// Eval evaluates n against the variables known in ctx. If every variable in n
// is known, the result is a number node. Otherwise, it is a new tree with
// known values substituted and every resolvable subexpression folded;
// evaluating it again once the rest of the variables are known gives the same
// number as evaluating n would. n itself is never modified.
func (n *Node) Eval(ctx *Context) (*Node, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	return n.eval(ctx)
}

// Float evaluates n and returns its value. If the result is not a number, the
// error is a *NameError naming the first unknown variable.
func (n *Node) Float(ctx *Context) (float64, error) {
	r, err := n.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return r.float(ctx)
}

func (n *Node) float(ctx *Context) (float64, error) {
	if v, ok := n.Value(); ok {
		return v, nil
	}
	u := n.Unknowns(ctx)
	if len(u) == 0 {
		// Unreachable for trees built with this package.
		panic("disolve: unreduced expression with no unknowns: " + n.String())
	}
	return 0, &NameError{Name: u[0]}
}

func (n *Node) eval(ctx *Context) (*Node, error) {
	switch n.kind {
	case KindNumber:
		return Num(n.num), nil
	case KindVariable:
		if v, ok := ctx.Lookup(n.name); ok {
			return Num(v), nil
		}
		return Var(n.name), nil
	case KindCombination, KindGroup:
		return n.fold(ctx)
	case KindCall:
		return n.call(ctx)
	default:
		panic("disolve: invalid node kind " + n.kind.String())
	}
}

// fold reduces a combination or group. Operators of the high class fold
// first, then the low class, each left to right. An operator folds only when
// both of its operands are numbers and neither operand is still bound to a
// neighbouring operator that must apply first; otherwise the operator and its
// reduced operands stay in place.
func (n *Node) fold(ctx *Context) (*Node, error) {
	terms := append([]*Node(nil), n.terms...)
	ops := append([]Operator(nil), n.ops...)
	done := make([]bool, len(terms))
	resolve := func(i int) error {
		if done[i] {
			return nil
		}
		r, err := terms[i].eval(ctx)
		if err != nil {
			return err
		}
		terms[i], done[i] = r, true
		return nil
	}
	for _, class := range [...]Class{High, Low} {
		for i := 0; i < len(ops); {
			if ops[i].Class() != class {
				i++
				continue
			}
			if err := resolve(i); err != nil {
				return nil, err
			}
			if err := resolve(i + 1); err != nil {
				return nil, err
			}
			l, lok := terms[i].Value()
			r, rok := terms[i+1].Value()
			switch {
			case !lok, !rok,
				i > 0 && ops[i-1].Class() >= class,
				i+1 < len(ops) && ops[i+1].Class() > class:
				i++
				continue
			}
			terms[i] = Num(ops[i].Apply(l, r))
			terms = append(terms[:i+1], terms[i+2:]...)
			done = append(done[:i+1], done[i+2:]...)
			ops = append(ops[:i], ops[i+1:]...)
			// Stay at i: the folded number is now the left operand of ops[i].
		}
	}
	for i := range terms {
		if err := resolve(i); err != nil {
			return nil, err
		}
	}
	if len(terms) == 1 {
		t := terms[0]
		if n.kind != KindGroup || t.kind != KindCombination {
			return t, nil
		}
	}
	return adopt(&Node{kind: n.kind, terms: terms, ops: ops}), nil
}

// call evaluates a function call. The argument must resolve to a number.
func (n *Node) call(ctx *Context) (*Node, error) {
	f := ctx.fn(n.name)
	if f == nil {
		return nil, &FuncError{Name: n.name}
	}
	arg, err := n.terms[0].eval(ctx)
	if err != nil {
		return nil, err
	}
	v, ok := arg.Value()
	if !ok {
		return nil, &ArgumentError{Func: n.name, Unknowns: arg.Unknowns(ctx)}
	}
	return Num(f(v)), nil
}

// NameError is an error indicating that an expression could not be reduced to
// a number because a variable is missing from the evaluation context.
type NameError struct {
	// Name is the first missing name.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
