package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

const dynamicScratchVersion = 5

// DynamicScratchVar addresses a scratch cell chosen at run time. The
// variable owns a plain index cell holding the number of the cell it
// currently points at; Store and Load go through the indirect loads
// and stores opcodes, so they need program version 5.
//
// By-reference subroutine parameters are DynamicScratchVars: the
// caller passes a cell number, the prologue stores it into the index
// cell, and the body reads and writes through it.
type DynamicScratchVar struct {
	indexVar *ScratchVar
	typ      Type
}

// NewDynamicScratchVar returns a dynamic variable pointing nowhere.
// SetIndex must run before Store or Load.
func NewDynamicScratchVar(t Type) *DynamicScratchVar {
	return &DynamicScratchVar{indexVar: NewScratchVar(TypeUint64), typ: t}
}

// SetIndex points the variable at another variable's cell.
func (v *DynamicScratchVar) SetIndex(target *ScratchVar) Expr {
	return v.indexVar.Store(target.Index())
}

// Store returns an expression writing value into the pointed-at cell.
func (v *DynamicScratchVar) Store(value Expr) Expr {
	return dynamicStore{v: v, value: value}
}

// Load returns an expression reading the pointed-at cell.
func (v *DynamicScratchVar) Load() Expr {
	return dynamicLoad{v: v}
}

func (v *DynamicScratchVar) Type() Type { return v.typ }

func (v *DynamicScratchVar) String() string {
	return fmt.Sprintf("DynamicScratchVar(%s)", v.typ)
}

func (v *DynamicScratchVar) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return v.Load().Teal(options)
}

func (v *DynamicScratchVar) indexExpr() Expr { return v.indexVar.Load() }

type dynamicStore struct {
	v     *DynamicScratchVar
	value Expr
}

func (e dynamicStore) Type() Type { return TypeNone }

func (e dynamicStore) String() string { return fmt.Sprintf("(DynamicStore %s)", e.value) }

func (e dynamicStore) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if options.Version < dynamicScratchVersion {
		return nil, nil, errVersionedOp(e, vm.OpStores, dynamicScratchVersion, options.Version)
	}
	if err := requireType(e.value, e.v.typ); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpStores), e.v.indexVar.Load(), e.value)
}

type dynamicLoad struct {
	v *DynamicScratchVar
}

func (e dynamicLoad) Type() Type { return e.v.typ }

func (e dynamicLoad) String() string { return "(DynamicLoad)" }

func (e dynamicLoad) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if options.Version < dynamicScratchVersion {
		return nil, nil, errVersionedOp(e, vm.OpLoads, dynamicScratchVersion, options.Version)
	}
	return emitOp(options, ir.NewOp(e, vm.OpLoads), e.v.indexVar.Load())
}
