package compiler

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// flattenRoutine linearizes a sorted block list into components,
// inserting branch instructions where control cannot fall through and
// label definitions for every block something branches to. Block
// labels are "<prefix>_l<i>" with i the block's position in emission
// order; only referenced labels are emitted.
func flattenRoutine(blocks []ir.Block, prefix string) []ir.Component {
	labels := make(map[ir.Block]string, len(blocks))
	for i, block := range blocks {
		labels[block] = fmt.Sprintf("%s_l%d", prefix, i)
	}

	referenced := make(map[ir.Block]bool)
	var lines [][]ir.Component

	for i, block := range blocks {
		var out []ir.Component
		for _, op := range block.Ops() {
			out = append(out, op)
		}

		var next ir.Block
		if i+1 < len(blocks) {
			next = blocks[i+1]
		}

		switch b := block.(type) {
		case *ir.SimpleBlock:
			if b.Next() != nil && b.Next() != next {
				referenced[b.Next()] = true
				out = append(out, ir.NewOp(nil, vm.OpB, ir.LabelOperand(labels[b.Next()])))
			}
		case *ir.ConditionalBlock:
			switch {
			case b.False() == next:
				referenced[b.True()] = true
				out = append(out, ir.NewOp(nil, vm.OpBnz, ir.LabelOperand(labels[b.True()])))
			case b.True() == next:
				referenced[b.False()] = true
				out = append(out, ir.NewOp(nil, vm.OpBz, ir.LabelOperand(labels[b.False()])))
			default:
				referenced[b.True()] = true
				referenced[b.False()] = true
				out = append(out,
					ir.NewOp(nil, vm.OpBnz, ir.LabelOperand(labels[b.True()])),
					ir.NewOp(nil, vm.OpB, ir.LabelOperand(labels[b.False()])))
			}
		}
		lines = append(lines, out)
	}

	var components []ir.Component
	for i, block := range blocks {
		if referenced[block] {
			components = append(components, &ir.Label{Name: labels[block]})
		}
		components = append(components, lines[i]...)
	}
	return components
}

// resolveCalls rewrites every subroutine reference in components to the
// entry label of the routine it targets. A reference to a subroutine
// that was never materialized is an internal error.
func resolveCalls(components []ir.Component, entryLabels map[ir.Subroutine]string) error {
	for _, c := range components {
		op, ok := c.(*ir.Op)
		if !ok {
			continue
		}
		for _, sub := range op.Subroutines() {
			label, ok := entryLabels[sub]
			if !ok {
				return errors.WithDetailf(ir.ErrInternal, "call to unknown subroutine %s", sub.Name())
			}
			op.ResolveSubroutine(sub, label)
		}
	}
	return nil
}
