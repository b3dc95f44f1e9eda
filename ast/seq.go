package ast

import (
	"fmt"
	"strings"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

type seqExpr struct {
	exprs []Expr
}

// Seq returns an expression evaluating exprs in order. Every
// expression except the last must leave nothing on the stack; the
// sequence takes its value and type from the last expression.
func Seq(exprs ...Expr) Expr {
	return seqExpr{exprs}
}

func (e seqExpr) Type() Type {
	if len(e.exprs) == 0 {
		return TypeNone
	}
	return e.exprs[len(e.exprs)-1].Type()
}

func (e seqExpr) String() string {
	parts := make([]string, len(e.exprs))
	for i, sub := range e.exprs {
		parts[i] = sub.String()
	}
	return fmt.Sprintf("(Seq %s)", strings.Join(parts, " "))
}

func (e seqExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if len(e.exprs) == 0 {
		empty := ir.NewSimpleBlock()
		return empty, empty, nil
	}

	var start ir.Block
	var end *ir.SimpleBlock
	for i, sub := range e.exprs {
		if i != len(e.exprs)-1 {
			if sub.Type() != TypeNone {
				return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "expression %s in sequence leaves a value on the stack", sub), "expr", sub)
			}
		}
		subStart, subEnd, err := sub.Teal(options)
		if err != nil {
			return nil, nil, err
		}
		if start == nil {
			start = subStart
		} else {
			end.SetNext(subStart)
		}
		end = subEnd
	}
	return start, end, nil
}

type popExpr struct {
	arg Expr
}

// Pop evaluates arg and discards its value.
func Pop(arg Expr) Expr {
	return popExpr{arg}
}

func (e popExpr) Type() Type { return TypeNone }

func (e popExpr) String() string { return fmt.Sprintf("(Pop %s)", e.arg) }

func (e popExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.arg, TypeAny); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpPop), e.arg)
}
