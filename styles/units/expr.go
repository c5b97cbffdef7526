// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package units

// Op is a binary arithmetic operator in a calc expression.
type Op int32

const (
	Add Op = iota
	Sub
	Mul
	Div
)

// ExprKind discriminates the node types of an [Expr] tree.
type ExprKind int32

const (
	// Leaf is a plain [Value].
	Leaf ExprKind = iota

	// CalcOp applies a binary operator to two subexpressions.
	CalcOp

	// MinOp takes the minimum over its subexpressions.
	MinOp

	// MaxOp takes the maximum over its subexpressions.
	MaxOp

	// ClampOp clamps Args[1] to the range [Args[0], Args[2]].
	ClampOp
)

// Expr is a constraint expression tree over length values. An
// expression is resolvable iff all of its leaves are resolvable;
// an unresolvable leaf makes the whole expression resolve to auto.
type Expr struct {
	Kind  ExprKind
	Value Value // for Leaf
	Op    Op    // for CalcOp
	Args  []Expr
}

// Lit returns a leaf expression for the given value.
func Lit(v Value) Expr { return Expr{Kind: Leaf, Value: v} }

// Calc returns op(a, b).
func Calc(op Op, a, b Expr) Expr {
	return Expr{Kind: CalcOp, Op: op, Args: []Expr{a, b}}
}

// Min returns the minimum of the given expressions.
func Min(args ...Expr) Expr { return Expr{Kind: MinOp, Args: args} }

// Max returns the maximum of the given expressions.
func Max(args ...Expr) Expr { return Expr{Kind: MaxOp, Args: args} }

// Clamp clamps val to the range [lo, hi].
func Clamp(lo, val, hi Expr) Expr {
	return Expr{Kind: ClampOp, Args: []Expr{lo, val, hi}}
}

// IsZero reports whether this is the zero expression: a leaf holding
// zero pixels. Styles treat the zero Expr as "unset".
func (e Expr) IsZero() bool {
	return e.Kind == Leaf && len(e.Args) == 0 && e.Value == Value{}
}

// Resolve evaluates the expression in the given context, returning the
// pixel value and true, or 0 and false if any leaf is unresolvable or
// the tree is malformed (wrong arity, division by zero).
func (e Expr) Resolve(uc *Context) (float32, bool) {
	switch e.Kind {
	case Leaf:
		return e.Value.Resolve(uc)
	case CalcOp:
		if len(e.Args) != 2 {
			return 0, false
		}
		a, ok := e.Args[0].Resolve(uc)
		if !ok {
			return 0, false
		}
		b, ok := e.Args[1].Resolve(uc)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case Add:
			return a + b, true
		case Sub:
			return a - b, true
		case Mul:
			return a * b, true
		case Div:
			if b == 0 {
				return 0, false
			}
			return a / b, true
		}
		return 0, false
	case MinOp, MaxOp:
		if len(e.Args) == 0 {
			return 0, false
		}
		r, ok := e.Args[0].Resolve(uc)
		if !ok {
			return 0, false
		}
		for _, a := range e.Args[1:] {
			v, ok := a.Resolve(uc)
			if !ok {
				return 0, false
			}
			if e.Kind == MinOp {
				r = min(r, v)
			} else {
				r = max(r, v)
			}
		}
		return r, true
	case ClampOp:
		if len(e.Args) != 3 {
			return 0, false
		}
		lo, ok := e.Args[0].Resolve(uc)
		if !ok {
			return 0, false
		}
		v, ok := e.Args[1].Resolve(uc)
		if !ok {
			return 0, false
		}
		hi, ok := e.Args[2].Resolve(uc)
		if !ok {
			return 0, false
		}
		return min(max(v, lo), hi), true
	}
	return 0, false
}
