package compiler

import (
	"github.com/INIT-FOUNDATION/tealc/ast"
	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
)

// routine is one compiled unit: the main program or one subroutine
// body, as a normalized block graph.
type routine struct {
	// def is nil for the main routine.
	def   *ast.SubroutineDefinition
	start ir.Block
	end   *ir.SimpleBlock
}

// discoverSubroutines walks the main routine's instructions for call
// targets and materializes each referenced subroutine exactly once, in
// first-encounter order. Newly materialized bodies are scanned in turn,
// so transitive and mutually recursive references all resolve to a
// single body per definition.
func discoverSubroutines(options *ast.CompileOptions, main ir.Block) ([]*routine, error) {
	seen := make(map[ir.Subroutine]*routine)
	var order []*routine

	queue := []ir.Block{main}
	for len(queue) > 0 {
		start := queue[0]
		queue = queue[1:]

		for _, block := range ir.Iterate(start) {
			for _, op := range block.Ops() {
				for _, sub := range op.Subroutines() {
					if _, ok := seen[sub]; ok {
						continue
					}
					// Reserve the identity before building the body so
					// a recursive reference cannot re-enter.
					seen[sub] = nil

					def, ok := sub.(*ast.SubroutineDefinition)
					if !ok {
						return nil, errors.WithDetailf(ir.ErrInternal, "unknown subroutine reference %s", sub.Name())
					}
					r, err := materializeSubroutine(options, def)
					if err != nil {
						return nil, err
					}
					seen[sub] = r
					order = append(order, r)
					queue = append(queue, r.start)
				}
			}
		}
	}
	return order, nil
}

func materializeSubroutine(options *ast.CompileOptions, def *ast.SubroutineDefinition) (*routine, error) {
	decl, err := def.Declaration()
	if err != nil {
		return nil, err
	}
	start, end, err := decl.Teal(options)
	if err != nil {
		return nil, err
	}
	return &routine{def: def, start: ir.Normalize(start), end: end}, nil
}
