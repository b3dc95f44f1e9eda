package ir

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
)

// NumSlots is the number of scratch space cells available to a program.
const NumSlots = 256

// Slot is an abstract handle for one scratch space cell. Distinct Slot
// values denote distinct cells until the allocator assigns final cell
// numbers; identity is pointer identity.
type Slot struct {
	id       uint32
	reserved bool
}

// NewSlot returns a slot whose cell number will be chosen by the
// allocator.
func NewSlot() *Slot {
	return &Slot{}
}

// ReservedSlot returns a slot pinned to the requested cell number.
// Two distinct reserved slots requesting the same number is a fatal
// allocation error.
func ReservedSlot(id uint32) (*Slot, error) {
	if id >= NumSlots {
		return nil, errors.WithDetailf(ErrInput, "slot id %d out of range [0, %d)", id, NumSlots)
	}
	return &Slot{id: id, reserved: true}, nil
}

// Reserved reports whether the slot is pinned to a caller-chosen cell.
func (s *Slot) Reserved() bool {
	return s.reserved
}

// ID returns the requested cell number. It is meaningful only for
// reserved slots.
func (s *Slot) ID() uint32 {
	return s.id
}

func (s *Slot) isOperand() {}

func (s *Slot) String() string {
	if s.reserved {
		return fmt.Sprintf("slot#%d", s.id)
	}
	return "slot"
}
