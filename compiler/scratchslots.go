package compiler

import (
	"sort"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// slotUsage records which distinct slots each routine touches and a
// deterministic ordering over all slots, assigned at first encounter
// during the routine walk. Slot handles have no global numbering, so
// the encounter index is what makes allocation reproducible.
type slotUsage struct {
	perRoutine []map[*ir.Slot]bool
	order      map[*ir.Slot]int
	all        []*ir.Slot
}

func collectSlots(routines []*routine) *slotUsage {
	u := &slotUsage{
		perRoutine: make([]map[*ir.Slot]bool, len(routines)),
		order:      make(map[*ir.Slot]int),
	}
	for i, r := range routines {
		used := make(map[*ir.Slot]bool)
		for _, block := range ir.Iterate(r.start) {
			for _, op := range block.Ops() {
				for _, slot := range op.Slots() {
					used[slot] = true
					if _, ok := u.order[slot]; !ok {
						u.order[slot] = len(u.all)
						u.all = append(u.all, slot)
					}
				}
			}
		}
		u.perRoutine[i] = used
	}
	return u
}

// sortKey orders slots for assignment: reserved slots by their
// requested cell, then automatic slots by first encounter.
func (u *slotUsage) sortKey(s *ir.Slot) int {
	if s.Reserved() {
		return int(s.ID())
	}
	return ir.NumSlots + u.order[s]
}

func (u *slotUsage) sorted(slots []*ir.Slot) []*ir.Slot {
	out := append([]*ir.Slot(nil), slots...)
	sort.Slice(out, func(i, j int) bool {
		return u.sortKey(out[i]) < u.sortKey(out[j])
	})
	return out
}

// assignScratchSlots maps every slot handle to a final cell number and
// rewrites the instruction operands in place. Slots referenced by more
// than one routine are global and receive program-wide cells; slots
// local to one routine share cell numbers with other routines' locals.
// It returns, per routine, the sorted cell numbers its local slots
// received.
func assignScratchSlots(routines []*routine) ([][]uint32, error) {
	u := collectSlots(routines)

	// Distinct reserved slots must not request the same cell.
	reserved := make(map[uint32]*ir.Slot)
	for _, slot := range u.all {
		if !slot.Reserved() {
			continue
		}
		if other := reserved[slot.ID()]; other != nil && other != slot {
			return nil, errors.WithDetailf(ir.ErrInternal, "slot %d reserved more than once", slot.ID())
		}
		reserved[slot.ID()] = slot
	}

	// Slots used by more than one routine are global.
	global := make(map[*ir.Slot]bool)
	var globalSlots []*ir.Slot
	for _, slot := range u.all {
		n := 0
		for _, used := range u.perRoutine {
			if used[slot] {
				n++
			}
		}
		if n > 1 {
			global[slot] = true
			globalSlots = append(globalSlots, slot)
		}
	}

	for i, r := range routines {
		var locals []*ir.Slot
		for _, slot := range u.all {
			if u.perRoutine[i][slot] && !global[slot] {
				locals = append(locals, slot)
			}
		}
		if err := checkLoadCoverage(r, localSet(locals)); err != nil {
			return nil, err
		}
	}

	// Cells requested by any reserved slot are off limits everywhere.
	// assignRange later adds global auto-slot cells to this same map,
	// which is what keeps every routine's locals disjoint from the
	// global cells.
	claimed := make(map[uint32]bool)
	for id := range reserved {
		claimed[id] = true
	}

	ids := make(map[*ir.Slot]uint32)
	assignRange := func(slots []*ir.Slot, taken map[uint32]bool) {
		next := uint32(0)
		for _, slot := range u.sorted(slots) {
			if slot.Reserved() {
				ids[slot] = slot.ID()
				continue
			}
			for taken[next] {
				next++
			}
			taken[next] = true
			ids[slot] = next
		}
	}

	assignRange(globalSlots, claimed)

	localIDs := make([][]uint32, len(routines))
	for i, r := range routines {
		var locals []*ir.Slot
		for _, slot := range u.all {
			if u.perRoutine[i][slot] && !global[slot] {
				locals = append(locals, slot)
			}
		}
		taken := make(map[uint32]bool, len(claimed))
		for id := range claimed {
			taken[id] = true
		}
		assignRange(locals, taken)

		cells := make([]uint32, 0, len(locals))
		for _, slot := range locals {
			cells = append(cells, ids[slot])
		}
		sort.Slice(cells, func(a, b int) bool { return cells[a] < cells[b] })
		localIDs[i] = cells

		for _, block := range ir.Iterate(r.start) {
			for _, op := range block.Ops() {
				for _, slot := range op.Slots() {
					op.AssignSlot(slot, ids[slot])
				}
			}
		}
	}

	// Capacity is a bound on cell numbers, not on slot counts: locals
	// skip cells claimed elsewhere, so a routine can run past the top
	// of scratch space with fewer than NumSlots slots of its own.
	var maxID uint32
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	if maxID >= ir.NumSlots {
		total := maxID + 1
		return nil, errors.WithDetailf(ir.ErrInternal, "too many scratch slots in use: %d exceeds %d by %d", total, ir.NumSlots, total-ir.NumSlots)
	}
	return localIDs, nil
}

func localSet(slots []*ir.Slot) map[*ir.Slot]bool {
	set := make(map[*ir.Slot]bool, len(slots))
	for _, slot := range slots {
		set[slot] = true
	}
	return set
}

// checkLoadCoverage verifies that within one routine every load of a
// routine-local slot is preceded by a store on all paths. Slots shared
// across routines are exempt, their initialization order depends on
// call order and is not verified.
func checkLoadCoverage(r *routine, locals map[*ir.Slot]bool) error {
	blocks := ir.Iterate(r.start)

	incoming := make(map[ir.Block][]ir.Block)
	for _, block := range blocks {
		for _, next := range block.Outgoing() {
			incoming[next] = append(incoming[next], block)
		}
	}

	// Must-store analysis: a slot is covered at block entry when every
	// path to the block stores it first. Everything starts optimistic
	// and the fixpoint only removes coverage.
	in := make(map[ir.Block]map[*ir.Slot]bool)
	out := make(map[ir.Block]map[*ir.Slot]bool)
	for _, block := range blocks {
		full := make(map[*ir.Slot]bool, len(locals))
		for slot := range locals {
			full[slot] = true
		}
		out[block] = full
	}

	changed := true
	for changed {
		changed = false
		for _, block := range blocks {
			entry := make(map[*ir.Slot]bool)
			if block == r.start {
				// nothing covered at routine entry
			} else if preds := incoming[block]; len(preds) > 0 {
				for slot := range out[preds[0]] {
					entry[slot] = true
				}
				for _, pred := range preds[1:] {
					for slot := range entry {
						if !out[pred][slot] {
							delete(entry, slot)
						}
					}
				}
			}
			in[block] = entry

			exit := make(map[*ir.Slot]bool, len(entry))
			for slot := range entry {
				exit[slot] = true
			}
			for _, op := range block.Ops() {
				if op.Op == vm.OpStore {
					for _, slot := range op.Slots() {
						exit[slot] = true
					}
				}
			}
			if len(exit) != len(out[block]) {
				out[block] = exit
				changed = true
			}
		}
	}

	for _, block := range blocks {
		covered := in[block]
		seen := make(map[*ir.Slot]bool, len(covered))
		for slot := range covered {
			seen[slot] = true
		}
		for _, op := range block.Ops() {
			switch op.Op {
			case vm.OpStore:
				for _, slot := range op.Slots() {
					seen[slot] = true
				}
			case vm.OpLoad:
				for _, slot := range op.Slots() {
					if locals[slot] && !seen[slot] {
						return errors.WithData(errors.WithDetailf(ir.ErrInternal, "scratch slot loaded before it is stored"), "expr", op.Source)
					}
				}
			}
		}
	}
	return nil
}
