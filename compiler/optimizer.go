package compiler

import (
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// optimizeScratchSlots drops adjacent "store s; load s" pairs when the
// pair is the slot's only use in the whole program: the stored value
// is already on the stack, so the round trip through scratch space is
// a no-op. Reserved slots are never elided, and any other reference to
// the slot (another access or a cell-number read) disqualifies it.
func optimizeScratchSlots(routines []*routine) {
	uses := make(map[*ir.Slot]int)
	for _, r := range routines {
		for _, block := range ir.Iterate(r.start) {
			for _, op := range block.Ops() {
				for _, slot := range op.Slots() {
					uses[slot]++
				}
			}
		}
	}

	for _, r := range routines {
		for _, block := range ir.Iterate(r.start) {
			ops := block.Ops()
			var kept []*ir.Op
			for i := 0; i < len(ops); i++ {
				if i+1 < len(ops) {
					if slot := elidablePair(ops[i], ops[i+1], uses); slot != nil {
						i++
						continue
					}
				}
				kept = append(kept, ops[i])
			}
			if len(kept) != len(ops) {
				block.SetOps(kept)
			}
		}
	}
}

func elidablePair(store, load *ir.Op, uses map[*ir.Slot]int) *ir.Slot {
	if store.Op != vm.OpStore || load.Op != vm.OpLoad {
		return nil
	}
	storeSlots := store.Slots()
	loadSlots := load.Slots()
	if len(storeSlots) != 1 || len(loadSlots) != 1 {
		return nil
	}
	slot := storeSlots[0]
	if slot != loadSlots[0] || slot.Reserved() || uses[slot] != 2 {
		return nil
	}
	return slot
}
