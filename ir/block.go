package ir

// Block is a basic block: a straight-line instruction sequence with
// explicit successor edges. Blocks form a graph that may contain
// cycles; loop constructs create back-edges.
type Block interface {
	// Ops returns the block's instructions. The returned slice is the
	// block's own storage; passes mutate the *Op values in place.
	Ops() []*Op

	// SetOps replaces the block's instructions. Optimization passes
	// use it when dropping instructions.
	SetOps(ops []*Op)

	// Outgoing returns the block's successors in branch order.
	Outgoing() []Block

	// ReplaceOutgoing redirects every edge to old so it points at new.
	ReplaceOutgoing(old, new Block)

	// prependOps inserts instructions before the block's own. Only
	// Normalize uses it; keeping it unexported closes the variant.
	prependOps(ops []*Op)
}

// SimpleBlock is a block with zero or one successor.
type SimpleBlock struct {
	ops  []*Op
	next Block
}

// NewSimpleBlock returns a block containing the given instructions and
// no successor.
func NewSimpleBlock(ops ...*Op) *SimpleBlock {
	return &SimpleBlock{ops: ops}
}

func (b *SimpleBlock) Ops() []*Op { return b.ops }

func (b *SimpleBlock) SetOps(ops []*Op) { b.ops = ops }

// Append adds instructions to the end of the block.
func (b *SimpleBlock) Append(ops ...*Op) {
	b.ops = append(b.ops, ops...)
}

// SetNext sets the block that follows this one.
func (b *SimpleBlock) SetNext(next Block) {
	b.next = next
}

// Next returns the block's successor, or nil.
func (b *SimpleBlock) Next() Block {
	return b.next
}

func (b *SimpleBlock) Outgoing() []Block {
	if b.next == nil {
		return nil
	}
	return []Block{b.next}
}

func (b *SimpleBlock) ReplaceOutgoing(old, new Block) {
	if b.next == old {
		b.next = new
	}
}

func (b *SimpleBlock) prependOps(ops []*Op) {
	b.ops = append(append([]*Op{}, ops...), b.ops...)
}

// ConditionalBlock is a block whose instructions produce a boolean and
// whose control transfers to one of two successors. Callers are
// responsible for connecting both branches onward to a common block;
// the model does not enforce convergence.
type ConditionalBlock struct {
	ops        []*Op
	trueBlock  Block
	falseBlock Block
}

// NewConditionalBlock returns a conditional block containing the given
// condition-producing instructions and no successors.
func NewConditionalBlock(ops ...*Op) *ConditionalBlock {
	return &ConditionalBlock{ops: ops}
}

func (b *ConditionalBlock) Ops() []*Op { return b.ops }

func (b *ConditionalBlock) SetOps(ops []*Op) { b.ops = ops }

// SetTrue sets the successor taken when the condition is nonzero.
func (b *ConditionalBlock) SetTrue(block Block) {
	b.trueBlock = block
}

// SetFalse sets the successor taken when the condition is zero.
func (b *ConditionalBlock) SetFalse(block Block) {
	b.falseBlock = block
}

// True returns the nonzero-condition successor.
func (b *ConditionalBlock) True() Block { return b.trueBlock }

// False returns the zero-condition successor.
func (b *ConditionalBlock) False() Block { return b.falseBlock }

func (b *ConditionalBlock) Outgoing() []Block {
	var out []Block
	if b.trueBlock != nil {
		out = append(out, b.trueBlock)
	}
	if b.falseBlock != nil {
		out = append(out, b.falseBlock)
	}
	return out
}

func (b *ConditionalBlock) ReplaceOutgoing(old, new Block) {
	if b.trueBlock == old {
		b.trueBlock = new
	}
	if b.falseBlock == old {
		b.falseBlock = new
	}
}

func (b *ConditionalBlock) prependOps(ops []*Op) {
	b.ops = append(append([]*Op{}, ops...), b.ops...)
}

// Iterate returns every block reachable from start exactly once, in
// breadth-first order. Visitation state is kept here, keyed by block
// identity, never on the blocks themselves, so a graph with cycles can
// be traversed reentrantly.
func Iterate(start Block) []Block {
	visited := map[Block]bool{start: true}
	queue := []Block{start}
	var blocks []Block
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		blocks = append(blocks, b)
		for _, next := range b.Outgoing() {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return blocks
}

// Normalize fuses blocks wherever a block's only predecessor is a
// simple block whose only successor is that block: the block absorbs
// its predecessor's instructions and inherits its incoming edges.
// Fusing shrinks the final instruction count without changing program
// behavior. It returns the graph's start block, which may change when
// the original start is absorbed.
func Normalize(start Block) Block {
	for {
		blocks := Iterate(start)
		incoming := make(map[Block][]Block)
		for _, b := range blocks {
			for _, next := range b.Outgoing() {
				incoming[next] = append(incoming[next], b)
			}
		}

		merged := false
		for _, b := range blocks {
			ins := incoming[b]
			if len(ins) != 1 {
				continue
			}
			prev, ok := ins[0].(*SimpleBlock)
			if !ok || len(prev.Outgoing()) != 1 || Block(prev) == b {
				continue
			}
			b.prependOps(prev.ops)
			for _, p := range incoming[Block(prev)] {
				p.ReplaceOutgoing(prev, b)
			}
			if Block(prev) == start {
				start = b
			}
			merged = true
			break
		}
		if !merged {
			return start
		}
	}
}
