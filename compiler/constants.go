package compiler

import (
	"encoding/hex"
	"sort"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// poolVersion is the lowest program version with the push opcodes the
// pooling rewrite needs for singletons.
const poolVersion = 3

// extractIntValue canonicalizes an int op's operand for frequency
// counting: named constants count as their numeric value. Template
// operands return false, they stay inline so the produced text remains
// substitutable.
func extractIntValue(op *ir.Op) (uint64, bool, error) {
	if len(op.Args) != 1 {
		return 0, false, errors.WithDetailf(ir.ErrInternal, "unexpected operands in %s", op)
	}
	switch a := op.Args[0].(type) {
	case ir.IntOperand:
		return uint64(a), true, nil
	case ir.ConstOperand:
		return a.Value, true, nil
	case ir.TmplOperand:
		return 0, false, nil
	}
	return 0, false, errors.WithDetailf(ir.ErrInternal, "unexpected operand in %s", op)
}

// extractBytesValue canonicalizes a byte or addr op's operand to its
// raw bytes, so different spellings of one value share a pool entry.
func extractBytesValue(op *ir.Op) (string, bool, error) {
	if len(op.Args) != 1 {
		return "", false, errors.WithDetailf(ir.ErrInternal, "unexpected operands in %s", op)
	}
	switch a := op.Args[0].(type) {
	case ir.BytesOperand:
		return string(a.Raw), true, nil
	case ir.AddrOperand:
		return string(a.Raw), true, nil
	case ir.TmplOperand:
		return "", false, nil
	}
	return "", false, errors.WithDetailf(ir.ErrInternal, "unexpected operand in %s", op)
}

// assembleConstants rewrites the flat instruction sequence to use
// constant pools: values pushed more than once move into an intcblock
// or bytecblock header and are referenced by index, the first four per
// pool through the compact zero-operand forms. Singletons and template
// placeholders are pushed inline. Every rewritten instruction keeps
// its original literal text as a trailing comment.
func assembleConstants(components []ir.Component, version uint64) ([]ir.Component, error) {
	if version < poolVersion {
		return nil, errors.WithDetailf(ir.ErrInternal, "constant pooling requires program version %d, target is %d", poolVersion, version)
	}

	intFreqs := make(map[uint64]int)
	byteFreqs := make(map[string]int)
	for _, c := range components {
		op, ok := c.(*ir.Op)
		if !ok {
			continue
		}
		switch op.Op {
		case vm.OpInt:
			value, pooled, err := extractIntValue(op)
			if err != nil {
				return nil, err
			}
			if pooled {
				intFreqs[value]++
			}
		case vm.OpByte, vm.OpAddr:
			value, pooled, err := extractBytesValue(op)
			if err != nil {
				return nil, err
			}
			if pooled {
				byteFreqs[value]++
			}
		}
	}

	var sortedInts []uint64
	for value := range intFreqs {
		if intFreqs[value] > 1 {
			sortedInts = append(sortedInts, value)
		}
	}
	sort.Slice(sortedInts, func(i, j int) bool {
		a, b := sortedInts[i], sortedInts[j]
		if intFreqs[a] != intFreqs[b] {
			return intFreqs[a] > intFreqs[b]
		}
		return a < b
	})
	intIndex := make(map[uint64]int, len(sortedInts))
	for i, value := range sortedInts {
		intIndex[value] = i
	}

	var sortedBytes []string
	for value := range byteFreqs {
		if byteFreqs[value] > 1 {
			sortedBytes = append(sortedBytes, value)
		}
	}
	sort.Slice(sortedBytes, func(i, j int) bool {
		a, b := sortedBytes[i], sortedBytes[j]
		if byteFreqs[a] != byteFreqs[b] {
			return byteFreqs[a] > byteFreqs[b]
		}
		return a < b
	})
	byteIndex := make(map[string]int, len(sortedBytes))
	for i, value := range sortedBytes {
		byteIndex[value] = i
	}

	var assembled []ir.Component
	if len(sortedInts) > 0 {
		args := make([]ir.Operand, len(sortedInts))
		for i, value := range sortedInts {
			args[i] = ir.IntOperand(value)
		}
		assembled = append(assembled, ir.NewOp(nil, vm.OpIntcBlock, args...))
	}
	if len(sortedBytes) > 0 {
		args := make([]ir.Operand, len(sortedBytes))
		for i, value := range sortedBytes {
			args[i] = ir.BytesOperand{Raw: []byte(value), Source: "0x" + hex.EncodeToString([]byte(value))}
		}
		assembled = append(assembled, ir.NewOp(nil, vm.OpBytecBlock, args...))
	}

	intcOps := [4]vm.Op{vm.OpIntc0, vm.OpIntc1, vm.OpIntc2, vm.OpIntc3}
	bytecOps := [4]vm.Op{vm.OpBytec0, vm.OpBytec1, vm.OpBytec2, vm.OpBytec3}

	for _, c := range components {
		op, ok := c.(*ir.Op)
		if !ok {
			assembled = append(assembled, c)
			continue
		}

		switch op.Op {
		case vm.OpInt:
			original := op.Args[0].String()
			value, pooled, err := extractIntValue(op)
			if err != nil {
				return nil, err
			}
			var replacement *ir.Op
			switch {
			case !pooled:
				replacement = ir.NewOp(op.Source, vm.OpPushInt, op.Args[0])
			case intFreqs[value] == 1:
				replacement = ir.NewOp(op.Source, vm.OpPushInt, ir.IntOperand(value))
			case intIndex[value] < len(intcOps):
				replacement = ir.NewOp(op.Source, intcOps[intIndex[value]])
			default:
				replacement = ir.NewOp(op.Source, vm.OpIntc, ir.IntOperand(uint64(intIndex[value])))
			}
			replacement.Comment = original
			assembled = append(assembled, replacement)

		case vm.OpByte, vm.OpAddr:
			original := op.Args[0].String()
			value, pooled, err := extractBytesValue(op)
			if err != nil {
				return nil, err
			}
			var replacement *ir.Op
			switch {
			case !pooled:
				replacement = ir.NewOp(op.Source, vm.OpPushBytes, op.Args[0])
			case byteFreqs[value] == 1:
				replacement = ir.NewOp(op.Source, vm.OpPushBytes, ir.BytesOperand{Raw: []byte(value), Source: "0x" + hex.EncodeToString([]byte(value))})
			case byteIndex[value] < len(bytecOps):
				replacement = ir.NewOp(op.Source, bytecOps[byteIndex[value]])
			default:
				replacement = ir.NewOp(op.Source, vm.OpBytec, ir.IntOperand(uint64(byteIndex[value])))
			}
			replacement.Comment = original
			assembled = append(assembled, replacement)

		default:
			assembled = append(assembled, c)
		}
	}
	return assembled, nil
}
