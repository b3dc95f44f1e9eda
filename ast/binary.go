package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

type binaryExpr struct {
	op      vm.Op
	argType Type
	outType Type
	a, b    Expr
}

func binary(op vm.Op, argType, outType Type, a, b Expr) Expr {
	return binaryExpr{op: op, argType: argType, outType: outType, a: a, b: b}
}

// Add returns an expression for a + b.
func Add(a, b Expr) Expr { return binary(vm.OpAdd, TypeUint64, TypeUint64, a, b) }

// Minus returns an expression for a - b.
func Minus(a, b Expr) Expr { return binary(vm.OpMinus, TypeUint64, TypeUint64, a, b) }

// Mul returns an expression for a * b.
func Mul(a, b Expr) Expr { return binary(vm.OpMul, TypeUint64, TypeUint64, a, b) }

// Div returns an expression for a / b.
func Div(a, b Expr) Expr { return binary(vm.OpDiv, TypeUint64, TypeUint64, a, b) }

// Mod returns an expression for a % b.
func Mod(a, b Expr) Expr { return binary(vm.OpMod, TypeUint64, TypeUint64, a, b) }

// Lt returns an expression for a < b.
func Lt(a, b Expr) Expr { return binary(vm.OpLt, TypeUint64, TypeUint64, a, b) }

// Gt returns an expression for a > b.
func Gt(a, b Expr) Expr { return binary(vm.OpGt, TypeUint64, TypeUint64, a, b) }

// Le returns an expression for a <= b.
func Le(a, b Expr) Expr { return binary(vm.OpLe, TypeUint64, TypeUint64, a, b) }

// Ge returns an expression for a >= b.
func Ge(a, b Expr) Expr { return binary(vm.OpGe, TypeUint64, TypeUint64, a, b) }

// Eq returns an expression comparing a and b for equality.
func Eq(a, b Expr) Expr { return binary(vm.OpEq, TypeAny, TypeUint64, a, b) }

// Neq returns an expression comparing a and b for inequality.
func Neq(a, b Expr) Expr { return binary(vm.OpNeq, TypeAny, TypeUint64, a, b) }

// And returns an expression for the boolean conjunction of a and b.
func And(a, b Expr) Expr { return binary(vm.OpAnd, TypeUint64, TypeUint64, a, b) }

// Or returns an expression for the boolean disjunction of a and b.
func Or(a, b Expr) Expr { return binary(vm.OpOr, TypeUint64, TypeUint64, a, b) }

// BitwiseAnd returns an expression for a & b.
func BitwiseAnd(a, b Expr) Expr { return binary(vm.OpBitwiseAnd, TypeUint64, TypeUint64, a, b) }

// BitwiseOr returns an expression for a | b.
func BitwiseOr(a, b Expr) Expr { return binary(vm.OpBitwiseOr, TypeUint64, TypeUint64, a, b) }

// BitwiseXor returns an expression for a ^ b.
func BitwiseXor(a, b Expr) Expr { return binary(vm.OpBitwiseXor, TypeUint64, TypeUint64, a, b) }

// Concat returns an expression concatenating two byte strings.
func Concat(a, b Expr) Expr { return binary(vm.OpConcat, TypeBytes, TypeBytes, a, b) }

func (e binaryExpr) Type() Type { return e.outType }

func (e binaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.op, e.a, e.b)
}

func (e binaryExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.a, e.argType); err != nil {
		return nil, nil, err
	}
	if err := requireType(e.b, e.argType); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, e.op), e.a, e.b)
}
