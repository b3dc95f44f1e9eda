package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
)

type ifExpr struct {
	cond    Expr
	onTrue  Expr
	onFalse Expr
}

// If returns an expression evaluating onTrue when cond is nonzero and
// onFalse otherwise. Both branches must produce the same type; that is
// the expression's type.
func If(cond, onTrue, onFalse Expr) Expr {
	return ifExpr{cond: cond, onTrue: onTrue, onFalse: onFalse}
}

// When returns an expression evaluating onTrue only when cond is
// nonzero. The branch must leave nothing on the stack.
func When(cond, onTrue Expr) Expr {
	return ifExpr{cond: cond, onTrue: onTrue}
}

func (e ifExpr) Type() Type {
	if e.onFalse == nil {
		return TypeNone
	}
	t := e.onTrue.Type()
	if t == TypeAny {
		return e.onFalse.Type()
	}
	return t
}

func (e ifExpr) String() string {
	if e.onFalse == nil {
		return fmt.Sprintf("(When %s %s)", e.cond, e.onTrue)
	}
	return fmt.Sprintf("(If %s %s %s)", e.cond, e.onTrue, e.onFalse)
}

func (e ifExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.cond, TypeUint64); err != nil {
		return nil, nil, err
	}

	condStart, condEnd, err := e.cond.Teal(options)
	if err != nil {
		return nil, nil, err
	}
	trueStart, trueEnd, err := e.onTrue.Teal(options)
	if err != nil {
		return nil, nil, err
	}

	end := ir.NewSimpleBlock()
	branch := ir.NewConditionalBlock()
	branch.SetTrue(trueStart)
	condEnd.SetNext(branch)
	trueEnd.SetNext(end)

	if e.onFalse == nil {
		if err := requireType(e.onTrue, TypeNone); err != nil {
			return nil, nil, err
		}
		branch.SetFalse(end)
		return condStart, end, nil
	}

	if !compatible(e.onFalse.Type(), e.onTrue.Type()) && !compatible(e.onTrue.Type(), e.onFalse.Type()) {
		return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "branch types differ: %s vs %s", e.onTrue.Type(), e.onFalse.Type()), "expr", e)
	}
	falseStart, falseEnd, err := e.onFalse.Teal(options)
	if err != nil {
		return nil, nil, err
	}
	branch.SetFalse(falseStart)
	falseEnd.SetNext(end)
	return condStart, end, nil
}
