package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

const assertVersion = 3

// Assert halts the program when cond is zero and otherwise continues
// with no stack effect.
func Assert(cond Expr) Expr {
	return assertExpr{cond: cond}
}

type assertExpr struct {
	cond Expr
}

func (e assertExpr) Type() Type { return TypeNone }

func (e assertExpr) String() string { return fmt.Sprintf("(Assert %s)", e.cond) }

func (e assertExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if options.Version < assertVersion {
		return nil, nil, errVersionedOp(e, vm.OpAssert, assertVersion, options.Version)
	}
	if err := requireType(e.cond, TypeUint64); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpAssert), e.cond)
}

// Err halts the program immediately with failure.
func Err() Expr {
	return errExpr{}
}

type errExpr struct{}

func (errExpr) Type() Type { return TypeNone }

func (errExpr) String() string { return "(Err)" }

func (e errExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpErr))
}

// Return exits the enclosing routine with value. In the main routine
// value must be a uint64 and becomes the program's result; inside a
// subroutine value must match the subroutine's declared return type,
// or be absent for a subroutine returning nothing.
func Return(value ...Expr) Expr {
	e := returnExpr{}
	if len(value) > 0 {
		e.value = value[0]
	}
	return e
}

// Approve exits the main routine approving the transaction.
func Approve() Expr { return Return(Int(1)) }

// Reject exits the main routine rejecting the transaction.
func Reject() Expr { return Return(Int(0)) }

type returnExpr struct {
	value Expr
}

func (e returnExpr) Type() Type { return TypeNone }

func (e returnExpr) String() string {
	if e.value == nil {
		return "(Return)"
	}
	return fmt.Sprintf("(Return %s)", e.value)
}

func (e returnExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if sub := options.Subroutine; sub != nil {
		want := sub.ReturnType()
		if e.value == nil {
			if want != TypeNone {
				return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s must return a %s value", sub.Name(), want), "expr", e)
			}
			return emitOp(options, ir.NewOp(e, vm.OpRetSub))
		}
		if want == TypeNone {
			return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s returns no value", sub.Name()), "expr", e)
		}
		if err := requireType(e.value, want); err != nil {
			return nil, nil, err
		}
		return emitOp(options, ir.NewOp(e, vm.OpRetSub), e.value)
	}

	if e.value == nil {
		return nil, nil, errors.WithData(errors.WithDetail(ir.ErrInput, "return outside a subroutine needs a value"), "expr", e)
	}
	if err := requireType(e.value, TypeUint64); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpReturn), e.value)
}
