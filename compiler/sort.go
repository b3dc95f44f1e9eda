package compiler

import "github.com/INIT-FOUNDATION/tealc/ir"

// sortBlocks produces the emission order for a routine's graph: a
// depth-first walk from start, with the terminal block relocated to
// the end so the routine can fall off its final instruction. Visited
// state lives in a local set keyed by block identity, so sorting the
// same graph twice gives the same order.
func sortBlocks(start ir.Block, end *ir.SimpleBlock) []ir.Block {
	var order []ir.Block
	visited := make(map[ir.Block]bool)

	stack := []ir.Block{start}
	for len(stack) > 0 {
		block := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[block] {
			continue
		}
		visited[block] = true
		stack = append(stack, block.Outgoing()...)
		order = append(order, block)
	}

	for i, block := range order {
		if block == ir.Block(end) {
			order = append(order[:i], order[i+1:]...)
			order = append(order, end)
			break
		}
	}
	return order
}
