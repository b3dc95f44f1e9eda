package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// GlobalField identifies one global parameter of the execution
// environment.
type GlobalField int

// Global fields.
const (
	GlobalMinTxnFee GlobalField = iota
	GlobalMinBalance
	GlobalMaxTxnLife
	GlobalZeroAddress
	GlobalGroupSize
	GlobalLogicSigVersion
	GlobalRound
	GlobalLatestTimestamp
	GlobalCurrentApplicationID
)

type globalFieldInfo struct {
	name       string
	typ        Type
	minVersion uint64
}

var globalFields = [...]globalFieldInfo{
	GlobalMinTxnFee:            {"MinTxnFee", TypeUint64, 2},
	GlobalMinBalance:           {"MinBalance", TypeUint64, 2},
	GlobalMaxTxnLife:           {"MaxTxnLife", TypeUint64, 2},
	GlobalZeroAddress:          {"ZeroAddress", TypeBytes, 2},
	GlobalGroupSize:            {"GroupSize", TypeUint64, 2},
	GlobalLogicSigVersion:      {"LogicSigVersion", TypeUint64, 2},
	GlobalRound:                {"Round", TypeUint64, 2},
	GlobalLatestTimestamp:      {"LatestTimestamp", TypeUint64, 2},
	GlobalCurrentApplicationID: {"CurrentApplicationID", TypeUint64, 2},
}

func (f GlobalField) String() string { return globalFields[f].name }

// GlobalObject reads global execution parameters.
type GlobalObject struct{}

// Global accesses the execution environment's global parameters.
var Global GlobalObject

// MinTxnFee is the minimum transaction fee in microalgos.
func (GlobalObject) MinTxnFee() Expr { return globalExpr{field: GlobalMinTxnFee} }

// MinBalance is the minimum account balance in microalgos.
func (GlobalObject) MinBalance() Expr { return globalExpr{field: GlobalMinBalance} }

// MaxTxnLife is the maximum transaction validity window in rounds.
func (GlobalObject) MaxTxnLife() Expr { return globalExpr{field: GlobalMaxTxnLife} }

// ZeroAddress is the 32 zero bytes address.
func (GlobalObject) ZeroAddress() Expr { return globalExpr{field: GlobalZeroAddress} }

// GroupSize is the number of transactions in the group.
func (GlobalObject) GroupSize() Expr { return globalExpr{field: GlobalGroupSize} }

// LogicSigVersion is the maximum supported program version.
func (GlobalObject) LogicSigVersion() Expr { return globalExpr{field: GlobalLogicSigVersion} }

// Round is the current round number.
func (GlobalObject) Round() Expr { return globalExpr{field: GlobalRound} }

// LatestTimestamp is the previous block's timestamp.
func (GlobalObject) LatestTimestamp() Expr { return globalExpr{field: GlobalLatestTimestamp} }

// CurrentApplicationID is the id of the executing application.
func (GlobalObject) CurrentApplicationID() Expr {
	return globalExpr{field: GlobalCurrentApplicationID}
}

type globalExpr struct {
	field GlobalField
}

func (e globalExpr) Type() Type { return globalFields[e.field].typ }

func (e globalExpr) String() string { return fmt.Sprintf("(Global %s)", e.field) }

func (e globalExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if min := globalFields[e.field].minVersion; options.Version < min {
		return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "field %s requires program version %d, target is %d", e.field, min, options.Version), "expr", e)
	}
	return emitOp(options, ir.NewOp(e, vm.OpGlobal, ir.FieldOperand(e.field.String())))
}
