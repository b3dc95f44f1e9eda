package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// ScratchVar is one scratch space cell. The compiler chooses the cell
// number unless the variable was created over a reserved slot.
//
// A ScratchVar used directly as an expression reads its value, so
// variables can be passed to subroutines; whether that call passes the
// value or the cell itself depends on the parameter's kind.
type ScratchVar struct {
	slot *ir.Slot
	typ  Type
}

// NewScratchVar returns a scratch variable over a compiler-assigned
// cell.
func NewScratchVar(t Type) *ScratchVar {
	return &ScratchVar{slot: ir.NewSlot(), typ: t}
}

// NewReservedScratchVar returns a scratch variable pinned to the given
// cell number.
func NewReservedScratchVar(t Type, id uint32) (*ScratchVar, error) {
	slot, err := ir.ReservedSlot(id)
	if err != nil {
		return nil, err
	}
	return &ScratchVar{slot: slot, typ: t}, nil
}

// Slot returns the variable's underlying slot handle.
func (v *ScratchVar) Slot() *ir.Slot { return v.slot }

// Store returns an expression writing value into the variable.
func (v *ScratchVar) Store(value Expr) Expr {
	return scratchStore{slot: v.slot, typ: v.typ, value: value}
}

// Load returns an expression reading the variable.
func (v *ScratchVar) Load() Expr {
	return scratchLoad{slot: v.slot, typ: v.typ}
}

// Index returns an expression pushing the variable's cell number.
func (v *ScratchVar) Index() Expr {
	return slotIndex{slot: v.slot}
}

func (v *ScratchVar) Type() Type { return v.typ }

func (v *ScratchVar) String() string { return fmt.Sprintf("ScratchVar(%s)", v.typ) }

func (v *ScratchVar) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return v.Load().Teal(options)
}

func (v *ScratchVar) indexExpr() Expr { return v.Index() }

type scratchStore struct {
	slot  *ir.Slot
	typ   Type
	value Expr
}

func (e scratchStore) Type() Type { return TypeNone }

func (e scratchStore) String() string { return fmt.Sprintf("(Store %s %s)", e.slot, e.value) }

func (e scratchStore) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if err := requireType(e.value, e.typ); err != nil {
		return nil, nil, err
	}
	return emitOp(options, ir.NewOp(e, vm.OpStore, e.slot), e.value)
}

// stackStore pops the top of the stack into a slot. Subroutine entry
// prologues use it to receive pushed arguments.
type stackStore struct {
	slot *ir.Slot
}

func (e stackStore) Type() Type { return TypeNone }

func (e stackStore) String() string { return fmt.Sprintf("(StoreStack %s)", e.slot) }

func (e stackStore) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpStore, e.slot))
}

type scratchLoad struct {
	slot *ir.Slot
	typ  Type
}

func (e scratchLoad) Type() Type { return e.typ }

func (e scratchLoad) String() string { return fmt.Sprintf("(Load %s)", e.slot) }

func (e scratchLoad) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpLoad, e.slot))
}

// slotIndex pushes a slot's assigned cell number as an integer. It is
// how a by-reference argument communicates which cell the callee
// should address.
type slotIndex struct {
	slot *ir.Slot
}

func (e slotIndex) Type() Type { return TypeUint64 }

func (e slotIndex) String() string { return fmt.Sprintf("(Index %s)", e.slot) }

func (e slotIndex) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpInt, e.slot))
}
