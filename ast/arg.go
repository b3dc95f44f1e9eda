package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// Arg reads the logic signature argument at index n. Arguments are
// only available in signature mode.
func Arg(n uint64) Expr {
	return argExpr{index: n}
}

type argExpr struct {
	index uint64
}

func (e argExpr) Type() Type { return TypeBytes }

func (e argExpr) String() string { return fmt.Sprintf("(Arg %d)", e.index) }

func (e argExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if e.index > 255 {
		return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "argument index %d out of range", e.index), "expr", e)
	}
	return emitOp(options, ir.NewOp(e, vm.OpArg, ir.IntOperand(e.index)))
}
