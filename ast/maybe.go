package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// MaybeValue wraps an operation that pushes a value and a presence
// flag. Evaluating the MaybeValue runs the operation and stores both
// results into scratch cells; HasValue and Value read them back. The
// MaybeValue itself must therefore be sequenced before its readers.
type MaybeValue struct {
	op       vm.Op
	operands []ir.Operand
	args     []Expr
	argTypes []Type

	value *ScratchVar
	has   *ScratchVar
}

func newMaybeValue(op vm.Op, t Type, operands []ir.Operand, args []Expr, argTypes []Type) *MaybeValue {
	return &MaybeValue{
		op:       op,
		operands: operands,
		args:     args,
		argTypes: argTypes,
		value:    NewScratchVar(t),
		has:      NewScratchVar(TypeUint64),
	}
}

// HasValue returns an expression reading the presence flag.
func (m *MaybeValue) HasValue() Expr { return m.has.Load() }

// Value returns an expression reading the produced value. It is the
// operation's zero value when HasValue is false.
func (m *MaybeValue) Value() Expr { return m.value.Load() }

func (m *MaybeValue) Type() Type { return TypeNone }

func (m *MaybeValue) String() string { return fmt.Sprintf("(MaybeValue %s)", m.op) }

func (m *MaybeValue) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	for i, arg := range m.args {
		if err := requireType(arg, m.argTypes[i]); err != nil {
			return nil, nil, err
		}
	}
	// The flag is on top of the stack, so it stores first.
	start, end, err := emitOp(options, ir.NewOp(m, m.op, m.operands...), m.args...)
	if err != nil {
		return nil, nil, err
	}
	storeHas := ir.NewSimpleBlock(ir.NewOp(m, vm.OpStore, m.has.Slot()))
	storeValue := ir.NewSimpleBlock(ir.NewOp(m, vm.OpStore, m.value.Slot()))
	end.SetNext(storeHas)
	storeHas.SetNext(storeValue)
	return start, storeValue, nil
}

// AppObject reads and writes application state.
type AppObject struct{}

// App accesses application state. Its operations are only available
// in application mode.
var App AppObject

// GlobalGet reads key from the application's global state.
func (AppObject) GlobalGet(key Expr) Expr {
	return appGlobalGet{key: key}
}

// GlobalPut writes value under key in the application's global state.
func (AppObject) GlobalPut(key, value Expr) Expr {
	return appGlobalPut{key: key, value: value}
}

// GlobalGetEx reads key from the global state of the application at
// the given foreign apps index, reporting whether the key exists.
func (AppObject) GlobalGetEx(app, key Expr) *MaybeValue {
	return newMaybeValue(vm.OpAppGlobalGetEx, TypeAny, nil, []Expr{app, key}, []Type{TypeUint64, TypeBytes})
}

type appGlobalGet struct {
	key Expr
}

func (e appGlobalGet) Type() Type { return TypeAny }

func (e appGlobalGet) String() string { return fmt.Sprintf("(AppGlobalGet %s)", e.key) }

func (e appGlobalGet) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.key, TypeBytes); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpAppGlobalGet), e.key)
}

type appGlobalPut struct {
	key   Expr
	value Expr
}

func (e appGlobalPut) Type() Type { return TypeNone }

func (e appGlobalPut) String() string {
	return fmt.Sprintf("(AppGlobalPut %s %s)", e.key, e.value)
}

func (e appGlobalPut) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.key, TypeBytes); err != nil {
		return nil, nil, err
	}
	if e.value.Type() == TypeNone {
		return nil, nil, requireType(e.value, TypeAny)
	}
	return emitOp(options, ir.NewOp(e, vm.OpAppGlobalPut), e.key, e.value)
}

// AssetHoldingBalance reports the holding of the asset at the given
// foreign assets index for the account at the given accounts index.
func AssetHoldingBalance(account, asset Expr) *MaybeValue {
	return newMaybeValue(vm.OpAssetHoldingGet, TypeUint64, []ir.Operand{ir.FieldOperand("AssetBalance")}, []Expr{account, asset}, []Type{TypeUint64, TypeUint64})
}

// Balance reads the balance of the account at the given accounts
// index, in microalgos.
func Balance(account Expr) Expr {
	return balanceExpr{account: account}
}

type balanceExpr struct {
	account Expr
}

func (e balanceExpr) Type() Type { return TypeUint64 }

func (e balanceExpr) String() string { return fmt.Sprintf("(Balance %s)", e.account) }

func (e balanceExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.account, TypeUint64); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpBalance), e.account)
}
