package ir

import (
	"strings"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// Expr identifies the expression node an instruction was emitted for.
// It is opaque to this package and used only in diagnostics.
type Expr interface {
	String() string
}

// Component is one line of the final assembly: an instruction or a
// label definition.
type Component interface {
	Assemble() (string, error)
}

// Op is a single instruction: an opcode plus its operands. Source
// carries the originating expression node for diagnostics.
type Op struct {
	Op     vm.Op
	Args   []Operand
	Source Expr

	// Comment, if set, is rendered as a trailing "// ..." on the
	// assembled line. The constant pool pass uses it to preserve the
	// original literal text next to pool references.
	Comment string
}

// NewOp returns an instruction for the given opcode and operands.
func NewOp(source Expr, op vm.Op, args ...Operand) *Op {
	return &Op{Op: op, Args: args, Source: source}
}

// Slots returns the unresolved slot references among the operands.
func (o *Op) Slots() []*Slot {
	var slots []*Slot
	for _, arg := range o.Args {
		if s, ok := arg.(*Slot); ok {
			slots = append(slots, s)
		}
	}
	return slots
}

// AssignSlot replaces every reference to slot with its assigned cell
// number.
func (o *Op) AssignSlot(slot *Slot, id uint32) {
	for i, arg := range o.Args {
		if s, ok := arg.(*Slot); ok && s == slot {
			o.Args[i] = IntOperand(id)
		}
	}
}

// Subroutines returns the unresolved subroutine references among the
// operands.
func (o *Op) Subroutines() []Subroutine {
	var subs []Subroutine
	for _, arg := range o.Args {
		if s, ok := arg.(SubroutineOperand); ok {
			subs = append(subs, s.Sub)
		}
	}
	return subs
}

// ResolveSubroutine replaces every reference to sub with its entry
// label.
func (o *Op) ResolveSubroutine(sub Subroutine, label string) {
	for i, arg := range o.Args {
		if s, ok := arg.(SubroutineOperand); ok && s.Sub == sub {
			o.Args[i] = LabelOperand(label)
		}
	}
}

// Assemble renders the instruction as one line of assembly text. Ops
// that still carry slot or subroutine references cannot be assembled;
// reaching one here means an earlier pass failed to resolve it.
func (o *Op) Assemble() (string, error) {
	parts := []string{o.Op.String()}
	for _, arg := range o.Args {
		switch arg.(type) {
		case *Slot:
			return "", errors.WithData(errors.WithDetailf(ErrInternal, "slot not assigned in %s", o.Op), "op", o)
		case SubroutineOperand:
			return "", errors.WithData(errors.WithDetailf(ErrInternal, "subroutine not resolved in %s", o.Op), "op", o)
		}
		parts = append(parts, arg.String())
	}
	if o.Comment != "" {
		parts = append(parts, "//", o.Comment)
	}
	return strings.Join(parts, " "), nil
}

func (o *Op) String() string {
	parts := []string{o.Op.String()}
	for _, arg := range o.Args {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ")
}

// Label is a label definition line.
type Label struct {
	Name string
}

// Assemble renders the label definition.
func (l *Label) Assemble() (string, error) {
	return l.Name + ":", nil
}
