package ir

import (
	"testing"

	"github.com/INIT-FOUNDATION/tealc/vm"
)

func op(o vm.Op, args ...Operand) *Op {
	return NewOp(nil, o, args...)
}

func TestIterate(t *testing.T) {
	b3 := NewSimpleBlock(op(vm.OpReturn))
	b2 := NewSimpleBlock(op(vm.OpInt, IntOperand(2)))
	b2.SetNext(b3)
	b1 := NewSimpleBlock(op(vm.OpInt, IntOperand(1)))
	b1.SetNext(b2)

	got := Iterate(b1)
	want := []Block{b1, b2, b3}
	if len(got) != len(want) {
		t.Fatalf("Iterate returned %d blocks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Iterate[%d] = %v want %v", i, got[i], want[i])
		}
	}
}

func TestIterateCycle(t *testing.T) {
	cond := NewConditionalBlock(op(vm.OpInt, IntOperand(1)))
	body := NewSimpleBlock(op(vm.OpPop))
	end := NewSimpleBlock()
	cond.SetTrue(body)
	cond.SetFalse(end)
	body.SetNext(cond) // back-edge

	got := Iterate(cond)
	if len(got) != 3 {
		t.Fatalf("Iterate returned %d blocks, want 3", len(got))
	}
	seen := make(map[Block]int)
	for _, b := range got {
		seen[b]++
	}
	for b, n := range seen {
		if n != 1 {
			t.Errorf("block %v visited %d times, want 1", b, n)
		}
	}

	// a second traversal of the same graph must see the same blocks
	again := Iterate(cond)
	if len(again) != len(got) {
		t.Errorf("reentrant Iterate returned %d blocks, want %d", len(again), len(got))
	}
}

func TestNormalizeMergesChain(t *testing.T) {
	b3 := NewSimpleBlock(op(vm.OpAdd))
	b2 := NewSimpleBlock(op(vm.OpInt, IntOperand(2)))
	b2.SetNext(b3)
	b1 := NewSimpleBlock(op(vm.OpInt, IntOperand(1)))
	b1.SetNext(b2)

	start := Normalize(b1)
	blocks := Iterate(start)
	if len(blocks) != 1 {
		t.Fatalf("Normalize left %d blocks, want 1", len(blocks))
	}
	ops := start.Ops()
	if len(ops) != 3 {
		t.Fatalf("merged block has %d ops, want 3", len(ops))
	}
	want := []vm.Op{vm.OpInt, vm.OpInt, vm.OpAdd}
	for i, o := range ops {
		if o.Op != want[i] {
			t.Errorf("merged op %d = %s want %s", i, o.Op, want[i])
		}
	}
}

func TestNormalizeAbsorbsIntoConditional(t *testing.T) {
	// A conditional block with a lone simple predecessor absorbs the
	// predecessor's condition prefix.
	cond := NewSimpleBlock(op(vm.OpInt, IntOperand(1)))
	branch := NewConditionalBlock()
	end := NewSimpleBlock()
	branch.SetTrue(end)
	branch.SetFalse(end)
	cond.SetNext(branch)

	start := Normalize(cond)
	if start != Block(branch) {
		t.Fatalf("Normalize start = %v want the conditional block", start)
	}
	if len(branch.Ops()) != 1 || branch.Ops()[0].Op != vm.OpInt {
		t.Errorf("conditional did not absorb the condition prefix: %v", branch.Ops())
	}
}

func TestNormalizeKeepsBranchTargets(t *testing.T) {
	// The convergence block has two predecessors and must survive.
	end := NewSimpleBlock()
	trueBlock := NewSimpleBlock(op(vm.OpByte, BytesOperand{Raw: []byte("true"), Source: `"true"`}))
	trueBlock.SetNext(end)
	falseBlock := NewSimpleBlock(op(vm.OpByte, BytesOperand{Raw: []byte("false"), Source: `"false"`}))
	falseBlock.SetNext(end)
	cond := NewConditionalBlock(op(vm.OpInt, IntOperand(1)))
	cond.SetTrue(trueBlock)
	cond.SetFalse(falseBlock)

	start := Normalize(cond)
	if got := len(Iterate(start)); got != 4 {
		t.Errorf("Normalize left %d blocks, want 4", got)
	}
}

func TestReplaceOutgoing(t *testing.T) {
	a := NewSimpleBlock()
	b := NewSimpleBlock()
	c := NewSimpleBlock()
	a.SetNext(b)
	a.ReplaceOutgoing(b, c)
	if a.Next() != Block(c) {
		t.Errorf("ReplaceOutgoing did not redirect the edge")
	}

	cond := NewConditionalBlock()
	cond.SetTrue(b)
	cond.SetFalse(b)
	cond.ReplaceOutgoing(b, c)
	if cond.True() != Block(c) || cond.False() != Block(c) {
		t.Errorf("ReplaceOutgoing did not redirect both conditional edges")
	}
}
