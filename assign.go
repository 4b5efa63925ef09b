package disolve

// Assignment binds the value of an expression to a variable, as in
// y = mx + b.
type Assignment struct {
	variable string
	expr     *Node
}

// For creates an assignment of e to variable. The assignment holds its own
// copy of e, so e remains free to join other trees.
func For(variable string, e *Node) *Assignment {
	if e == nil {
		panic("disolve: assignment to " + variable + " of nil expression")
	}
	return &Assignment{variable: variable, expr: e.Clone()}
}

// Variable returns the name of the assigned variable.
func (a *Assignment) Variable() string {
	return a.variable
}

// Expr returns a copy of the assigned expression.
func (a *Assignment) Expr() *Node {
	return a.expr.Clone()
}

// Eval evaluates the expression against ctx. If the result is a number, Eval
// sets the variable to it in ctx; this is the only way evaluation writes to a
// context. Otherwise, the result is the reduced expression and ctx is
// unchanged. A nil ctx evaluates with an empty context and the result is not
// stored anywhere.
func (a *Assignment) Eval(ctx *Context) (*Node, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	r, err := a.expr.eval(ctx)
	if err != nil {
		return nil, err
	}
	if v, ok := r.Value(); ok {
		ctx.Set(a.variable, v)
	}
	return r, nil
}

// Float evaluates the assignment and returns the assigned value. If the
// expression does not reduce to a number, the error is a *NameError.
func (a *Assignment) Float(ctx *Context) (float64, error) {
	r, err := a.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return r.float(ctx)
}

// Unknowns returns the unknown variables of the expression.
func (a *Assignment) Unknowns(ctx *Context) []string {
	return a.expr.Unknowns(ctx)
}

// Clone returns a deep copy of a.
func (a *Assignment) Clone() *Assignment {
	return &Assignment{variable: a.variable, expr: a.expr.Clone()}
}

func (a *Assignment) String() string {
	return a.variable + " = " + a.expr.String()
}
