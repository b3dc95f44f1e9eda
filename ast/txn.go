package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// TxnField identifies one field of a transaction.
type TxnField int

// Transaction fields.
const (
	TxnSender TxnField = iota
	TxnFee
	TxnReceiver
	TxnAmount
	TxnCloseRemainderTo
	TxnTypeEnum
	TxnGroupIndex
	TxnApplicationID
	TxnOnCompletion
	TxnNumAppArgs
	TxnRekeyTo
)

type txnFieldInfo struct {
	name       string
	typ        Type
	minVersion uint64
}

var txnFields = [...]txnFieldInfo{
	TxnSender:           {"Sender", TypeBytes, 2},
	TxnFee:              {"Fee", TypeUint64, 2},
	TxnReceiver:         {"Receiver", TypeBytes, 2},
	TxnAmount:           {"Amount", TypeUint64, 2},
	TxnCloseRemainderTo: {"CloseRemainderTo", TypeBytes, 2},
	TxnTypeEnum:         {"TypeEnum", TypeUint64, 2},
	TxnGroupIndex:       {"GroupIndex", TypeUint64, 2},
	TxnApplicationID:    {"ApplicationID", TypeUint64, 2},
	TxnOnCompletion:     {"OnCompletion", TypeUint64, 2},
	TxnNumAppArgs:       {"NumAppArgs", TypeUint64, 2},
	TxnRekeyTo:          {"RekeyTo", TypeBytes, 2},
}

func (f TxnField) String() string { return txnFields[f].name }

// TxnObject reads fields of the current transaction.
type TxnObject struct{}

// Txn accesses the transaction being evaluated.
var Txn TxnObject

// Sender is the sending account.
func (TxnObject) Sender() Expr { return txnExpr{field: TxnSender} }

// Fee is the fee in microalgos.
func (TxnObject) Fee() Expr { return txnExpr{field: TxnFee} }

// Receiver is the payment destination account.
func (TxnObject) Receiver() Expr { return txnExpr{field: TxnReceiver} }

// Amount is the payment amount in microalgos.
func (TxnObject) Amount() Expr { return txnExpr{field: TxnAmount} }

// CloseRemainderTo is the account the sender's balance closes out to.
func (TxnObject) CloseRemainderTo() Expr { return txnExpr{field: TxnCloseRemainderTo} }

// TypeEnum is the transaction type as a small integer.
func (TxnObject) TypeEnum() Expr { return txnExpr{field: TxnTypeEnum} }

// GroupIndex is the transaction's position within its group.
func (TxnObject) GroupIndex() Expr { return txnExpr{field: TxnGroupIndex} }

// ApplicationID is the called application's id.
func (TxnObject) ApplicationID() Expr { return txnExpr{field: TxnApplicationID} }

// OnCompletion is the application call's completion action.
func (TxnObject) OnCompletion() Expr { return txnExpr{field: TxnOnCompletion} }

// NumAppArgs is the number of application call arguments.
func (TxnObject) NumAppArgs() Expr { return txnExpr{field: TxnNumAppArgs} }

// RekeyTo is the account the sender rekeys to.
func (TxnObject) RekeyTo() Expr { return txnExpr{field: TxnRekeyTo} }

type txnExpr struct {
	field TxnField
}

func (e txnExpr) Type() Type { return txnFields[e.field].typ }

func (e txnExpr) String() string { return fmt.Sprintf("(Txn %s)", e.field) }

func (e txnExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := checkTxnField(e, e.field, options); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpTxn, ir.FieldOperand(e.field.String())))
}

// GtxnObject reads fields of another transaction in the group.
type GtxnObject struct {
	index uint64
}

// Gtxn accesses the transaction at the given group position.
func Gtxn(index uint64) GtxnObject {
	return GtxnObject{index: index}
}

// Sender is the indexed transaction's sending account.
func (g GtxnObject) Sender() Expr { return gtxnExpr{index: g.index, field: TxnSender} }

// Fee is the indexed transaction's fee.
func (g GtxnObject) Fee() Expr { return gtxnExpr{index: g.index, field: TxnFee} }

// Receiver is the indexed transaction's payment destination.
func (g GtxnObject) Receiver() Expr { return gtxnExpr{index: g.index, field: TxnReceiver} }

// Amount is the indexed transaction's payment amount.
func (g GtxnObject) Amount() Expr { return gtxnExpr{index: g.index, field: TxnAmount} }

// TypeEnum is the indexed transaction's type.
func (g GtxnObject) TypeEnum() Expr { return gtxnExpr{index: g.index, field: TxnTypeEnum} }

type gtxnExpr struct {
	index uint64
	field TxnField
}

func (e gtxnExpr) Type() Type { return txnFields[e.field].typ }

func (e gtxnExpr) String() string { return fmt.Sprintf("(Gtxn %d %s)", e.index, e.field) }

func (e gtxnExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if e.index > 15 {
		return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "group index %d out of range", e.index), "expr", e)
	}
	if err := checkTxnField(e, e.field, options); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpGtxn, ir.IntOperand(e.index), ir.FieldOperand(e.field.String())))
}

func checkTxnField(source Expr, f TxnField, options *CompileOptions) error {
	if min := txnFields[f].minVersion; options.Version < min {
		return errors.WithData(errors.WithDetailf(ir.ErrInput, "field %s requires program version %d, target is %d", f, min, options.Version), "expr", source)
	}
	return nil
}
