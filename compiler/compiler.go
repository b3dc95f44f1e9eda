// Package compiler lowers expression trees into assembly text for the
// stack machine.
//
// Compilation is a fixed pipeline over block graphs: emit the main
// routine, discover and materialize called subroutines, assign scratch
// cells, linearize each graph with labels and explicit jumps, resolve
// call targets, verify opcode versions, and optionally rewrite
// literals through constant pools. All state is owned by one Compile
// call, so independent compilations may run concurrently.
package compiler

import (
	"fmt"
	"strings"

	"github.com/INIT-FOUNDATION/tealc/ast"
	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// Options configures one compilation.
type Options struct {
	// Mode selects which instruction set surface the program may use.
	Mode vm.Mode

	// Version is the target program version. Zero means
	// vm.DefaultVersion.
	Version uint64

	// AssembleConstants enables the constant pool rewrite. Requires a
	// version with the push opcodes.
	AssembleConstants bool

	// OptimizeScratchSlots removes scratch round trips whose slot has
	// no other use.
	OptimizeScratchSlots bool
}

// Compile lowers program to assembly text.
func Compile(program ast.Expr, opts Options) (string, error) {
	if program == nil {
		return "", errors.WithDetail(ir.ErrInput, "no program given")
	}
	if opts.Mode == 0 {
		return "", errors.WithDetail(ir.ErrInput, "execution mode is required")
	}
	version := opts.Version
	if version == 0 {
		version = vm.DefaultVersion
	}
	if version < vm.MinVersion || version > vm.MaxVersion {
		return "", errors.WithDetailf(ir.ErrInput, "program version %d outside supported range [%d, %d]", version, vm.MinVersion, vm.MaxVersion)
	}
	if program.Type() == ast.TypeNone {
		return "", errors.WithData(errors.WithDetail(ir.ErrInput, "program must leave a value on the stack"), "expr", program)
	}

	options := &ast.CompileOptions{Mode: opts.Mode, Version: version}

	start, end, err := program.Teal(options)
	if err != nil {
		return "", err
	}
	start = ir.Normalize(start)

	subs, err := discoverSubroutines(options, start)
	if err != nil {
		return "", err
	}
	if len(subs) > 0 {
		// Subroutine bodies follow the main routine in the emitted
		// text; main must not fall through into them.
		end.Append(ir.NewOp(program, vm.OpReturn))
	}

	routines := append([]*routine{{start: start, end: end}}, subs...)

	if opts.OptimizeScratchSlots {
		optimizeScratchSlots(routines)
	}
	if _, err := assignScratchSlots(routines); err != nil {
		return "", err
	}

	entryLabels := make(map[ir.Subroutine]string, len(subs))
	prefixes := make([]string, len(routines))
	prefixes[0] = "main"
	for i, r := range subs {
		prefix := fmt.Sprintf("%s_%d", r.def.Name(), i)
		prefixes[i+1] = prefix
		entryLabels[r.def] = prefix
	}

	var components []ir.Component
	for i, r := range routines {
		if r.def != nil {
			components = append(components, &ir.Label{Name: prefixes[i]})
		}
		components = append(components, flattenRoutine(sortBlocks(r.start, r.end), prefixes[i])...)
	}

	if err := resolveCalls(components, entryLabels); err != nil {
		return "", err
	}
	if err := verifyOpsForVersion(components, version); err != nil {
		return "", err
	}
	if opts.AssembleConstants {
		components, err = assembleConstants(components, version)
		if err != nil {
			return "", err
		}
	}

	lines := make([]string, 0, len(components)+1)
	lines = append(lines, fmt.Sprintf("#pragma version %d", version))
	for _, c := range components {
		line, err := c.Assemble()
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// verifyOpsForVersion rejects any instruction introduced after the
// target version.
func verifyOpsForVersion(components []ir.Component, version uint64) error {
	for _, c := range components {
		op, ok := c.(*ir.Op)
		if !ok {
			continue
		}
		if min := op.Op.MinVersion(); min > version {
			err := errors.WithDetailf(ir.ErrVersion, "%s requires program version %d, target is %d", op.Op, min, version)
			if op.Source != nil {
				err = errors.WithData(err, "expr", op.Source)
			}
			return err
		}
	}
	return nil
}
