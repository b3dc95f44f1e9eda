package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// Expr is an expression node. Composing nodes builds the program tree
// handed to the compiler.
type Expr interface {
	fmt.Stringer

	// Type returns the kind of value the expression leaves on the
	// stack.
	Type() Type

	// Teal lowers the expression into a block graph fragment,
	// returning the fragment's entry and exit blocks.
	Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error)
}

// CompileOptions carries the compilation parameters expression nodes
// consult while lowering.
type CompileOptions struct {
	Mode    vm.Mode
	Version uint64

	// Subroutine is the subroutine whose body is being lowered, or
	// nil in the main routine.
	Subroutine *SubroutineDefinition
}

func errVersionedOp(source Expr, op vm.Op, need, have uint64) error {
	return errors.WithData(errors.WithDetailf(ir.ErrVersion, "%s requires program version %d, target is %d", op, need, have), "expr", source)
}

// emitOp lowers args left to right, chains their fragments, and
// appends a block holding o. It also rejects ops that are unavailable
// in the requested execution mode.
func emitOp(options *CompileOptions, o *ir.Op, args ...Expr) (ir.Block, *ir.SimpleBlock, error) {
	if options.Mode&o.Op.Modes() == 0 {
		return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "%s not permitted in %s mode", o.Op, options.Mode), "expr", o.Source)
	}

	opBlock := ir.NewSimpleBlock(o)

	var start ir.Block
	var end *ir.SimpleBlock
	for _, arg := range args {
		argStart, argEnd, err := arg.Teal(options)
		if err != nil {
			return nil, nil, err
		}
		if start == nil {
			start = argStart
		} else {
			end.SetNext(argStart)
		}
		end = argEnd
	}
	if start == nil {
		return opBlock, opBlock, nil
	}
	end.SetNext(opBlock)
	return start, opBlock, nil
}
