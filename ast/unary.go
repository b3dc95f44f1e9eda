package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

type unaryExpr struct {
	op      vm.Op
	argType Type
	outType Type
	arg     Expr
}

func unary(op vm.Op, argType, outType Type, arg Expr) Expr {
	return unaryExpr{op: op, argType: argType, outType: outType, arg: arg}
}

// Not returns an expression for the boolean negation of arg.
func Not(arg Expr) Expr { return unary(vm.OpNot, TypeUint64, TypeUint64, arg) }

// BitwiseNot returns an expression for the bitwise complement of arg.
func BitwiseNot(arg Expr) Expr { return unary(vm.OpBitwiseNot, TypeUint64, TypeUint64, arg) }

// Len returns an expression for the length of a byte string.
func Len(arg Expr) Expr { return unary(vm.OpLen, TypeBytes, TypeUint64, arg) }

// Itob returns an expression converting an integer to its big-endian
// byte form.
func Itob(arg Expr) Expr { return unary(vm.OpItob, TypeUint64, TypeBytes, arg) }

// Btoi returns an expression converting a big-endian byte string to an
// integer.
func Btoi(arg Expr) Expr { return unary(vm.OpBtoi, TypeBytes, TypeUint64, arg) }

// Sha256 returns an expression for the SHA-256 hash of a byte string.
func Sha256(arg Expr) Expr { return unary(vm.OpSha256, TypeBytes, TypeBytes, arg) }

func (e unaryExpr) Type() Type { return e.outType }

func (e unaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.op, e.arg)
}

func (e unaryExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.arg, e.argType); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, e.op), e.arg)
}
