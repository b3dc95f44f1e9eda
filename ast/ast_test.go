package ast

import (
	"testing"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/testutil"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

func sigOptions(version uint64) *CompileOptions {
	return &CompileOptions{Mode: vm.ModeSignature, Version: version}
}

func appOptions(version uint64) *CompileOptions {
	return &CompileOptions{Mode: vm.ModeApplication, Version: version}
}

// linearOps lowers e and collects the ops of the resulting fragment,
// which must be a straight chain of simple blocks.
func linearOps(t *testing.T, e Expr, options *CompileOptions) []*ir.Op {
	t.Helper()
	start, end, err := e.Teal(options)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	var got []*ir.Op
	block := start
	for {
		simple, ok := block.(*ir.SimpleBlock)
		if !ok {
			t.Fatalf("fragment is not linear at %v", block)
		}
		got = append(got, simple.Ops()...)
		if simple == end {
			return got
		}
		block = simple.Next()
	}
}

func opText(o *ir.Op) string {
	s := o.Op.String()
	for _, arg := range o.Args {
		s += " " + arg.String()
	}
	return s
}

func expectOps(t *testing.T, e Expr, options *CompileOptions, want ...string) {
	t.Helper()
	ops := linearOps(t, e, options)
	var got []string
	for _, o := range ops {
		got = append(got, opText(o))
	}
	testutil.ExpectEqual(t, got, want, "lowered ops")
}

const (
	zeroAddr = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAY5HFKQ"
	seqAddr  = "AAAQEAYEAUDAOCAJBIFQYDIOB4IBCEQTCQKRMFYYDENBWHA5DYP7MUPJQE"
)

func TestLeaves(t *testing.T) {
	tmpl, err := TmplInt("TMPL_FEE")
	if err != nil {
		testutil.FatalErr(t, err)
	}
	hexBytes, err := BytesHex("0xdeadbeef")
	if err != nil {
		testutil.FatalErr(t, err)
	}
	addr, err := Addr(zeroAddr)
	if err != nil {
		testutil.FatalErr(t, err)
	}

	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"int", Int(42), "int 42"},
		{"named const", OnCompleteNoOp, "int NoOp"},
		{"txn type", TxnTypePayment, "int pay"},
		{"bytes", Bytes("hi"), `byte "hi"`},
		{"hex bytes", hexBytes, "byte 0xdeadbeef"},
		{"addr", addr, "addr " + zeroAddr},
		{"template", tmpl, "int TMPL_FEE"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			expectOps(t, c.expr, sigOptions(vm.DefaultVersion), c.want)
		})
	}
}

func TestLiteralValidation(t *testing.T) {
	cases := []struct {
		name string
		fn   func() error
	}{
		{"bad hex", func() error { _, err := BytesHex("0xzz"); return err }},
		{"bad base32", func() error { _, err := BytesBase32("01"); return err }},
		{"bad base64", func() error { _, err := BytesBase64("!!"); return err }},
		{"short address", func() error { _, err := Addr("AAAA"); return err }},
		{"bad checksum", func() error {
			_, err := Addr("AAAQEAYEAUDAOCAJBIFQYDIOB4IBCEQTCQKRMFYYDENBWHA5DYP7MUPJQA")
			return err
		}},
		{"template without prefix", func() error { _, err := TmplInt("FEE"); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			testutil.ExpectError(t, ir.ErrInput, c.name, c.fn)
		})
	}
}

func TestAddrDecodesKey(t *testing.T) {
	key, err := decodeAddress(seqAddr)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	want := make([]byte, 32)
	for i := range want {
		want[i] = byte(i)
	}
	testutil.ExpectEqual(t, key, want, "decoded key")
}

func TestBinaryLowering(t *testing.T) {
	expectOps(t, Add(Int(1), Int(2)), sigOptions(vm.DefaultVersion),
		"int 1", "int 2", "+")
	expectOps(t, Concat(Bytes("a"), Bytes("b")), sigOptions(vm.DefaultVersion),
		`byte "a"`, `byte "b"`, "concat")
	expectOps(t, Eq(Arg(0), Bytes("x")), sigOptions(vm.DefaultVersion),
		"arg 0", `byte "x"`, "==")
}

func TestBinaryTypeChecking(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
	}{
		{"add bytes", Add(Int(1), Bytes("a"))},
		{"concat int", Concat(Int(1), Bytes("a"))},
		{"and bytes", And(Bytes("a"), Int(1))},
		{"not bytes", Not(Bytes("a"))},
		{"len int", Len(Int(1))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			testutil.ExpectError(t, ir.ErrInput, c.name, func() error {
				_, _, err := c.expr.Teal(sigOptions(vm.DefaultVersion))
				return err
			})
		})
	}
}

func TestSeqRejectsDanglingValues(t *testing.T) {
	testutil.ExpectError(t, ir.ErrInput, "value before end of sequence", func() error {
		_, _, err := Seq(Int(1), Int(2)).Teal(sigOptions(vm.DefaultVersion))
		return err
	})

	expectOps(t, Seq(Pop(Int(1)), Int(2)), sigOptions(vm.DefaultVersion),
		"int 1", "pop", "int 2")
}

func TestIfShape(t *testing.T) {
	start, end, err := If(Int(1), Bytes("yes"), Bytes("no")).Teal(sigOptions(vm.DefaultVersion))
	if err != nil {
		testutil.FatalErr(t, err)
	}

	cond, ok := start.(*ir.SimpleBlock)
	if !ok {
		t.Fatal("condition fragment is not a simple block")
	}
	testutil.ExpectEqual(t, opText(cond.Ops()[0]), "int 1", "condition op")

	branch, ok := cond.Next().(*ir.ConditionalBlock)
	if !ok {
		t.Fatal("condition does not feed a conditional block")
	}
	trueBlock := branch.True().(*ir.SimpleBlock)
	falseBlock := branch.False().(*ir.SimpleBlock)
	testutil.ExpectEqual(t, opText(trueBlock.Ops()[0]), `byte "yes"`, "true branch")
	testutil.ExpectEqual(t, opText(falseBlock.Ops()[0]), `byte "no"`, "false branch")
	if trueBlock.Next() != end || falseBlock.Next() != end {
		t.Error("branches do not rejoin at the exit block")
	}
}

func TestIfBranchTypesMustAgree(t *testing.T) {
	testutil.ExpectError(t, ir.ErrInput, "mismatched branches", func() error {
		_, _, err := If(Int(1), Int(2), Bytes("no")).Teal(sigOptions(vm.DefaultVersion))
		return err
	})
}

func TestWhenBranchMustBeEmpty(t *testing.T) {
	testutil.ExpectError(t, ir.ErrInput, "when branch with value", func() error {
		_, _, err := When(Int(1), Int(2)).Teal(sigOptions(vm.DefaultVersion))
		return err
	})
}

func TestLoopShape(t *testing.T) {
	i := NewScratchVar(TypeUint64)
	loop := For(i.Store(Int(0)), Lt(i.Load(), Int(10)), i.Store(Add(i.Load(), Int(1)))).
		Do(Pop(i.Load()))

	start, end, err := loop.Teal(sigOptions(4))
	if err != nil {
		testutil.FatalErr(t, err)
	}

	// Walk init, then the condition, into the branch.
	block := ir.Block(start)
	var branch *ir.ConditionalBlock
	for branch == nil {
		simple, ok := block.(*ir.SimpleBlock)
		if !ok {
			t.Fatal("expected simple blocks before the branch")
		}
		if b, ok := simple.Next().(*ir.ConditionalBlock); ok {
			branch = b
		} else {
			block = simple.Next()
		}
	}
	if branch.False() != end {
		t.Error("false edge does not exit the loop")
	}

	// Following the body from the true edge must come back around to
	// the same branch.
	cyclic := false
	block = branch.True()
	for i := 0; i < 32 && block != nil; i++ {
		if block == ir.Block(branch) {
			cyclic = true
			break
		}
		simple, ok := block.(*ir.SimpleBlock)
		if !ok {
			break
		}
		block = simple.Next()
	}
	if !cyclic {
		t.Error("loop body has no back-edge to the condition")
	}
}

func TestLoopVersionGate(t *testing.T) {
	loop := While(Int(1)).Do(Pop(Int(0)))
	testutil.ExpectError(t, ir.ErrVersion, "loop below version 4", func() error {
		_, _, err := loop.Teal(sigOptions(2))
		return err
	})
}

func TestModeChecking(t *testing.T) {
	testutil.ExpectError(t, ir.ErrInput, "arg in application mode", func() error {
		_, _, err := Arg(0).Teal(appOptions(vm.DefaultVersion))
		return err
	})
	testutil.ExpectError(t, ir.ErrInput, "app state in signature mode", func() error {
		_, _, err := App.GlobalGet(Bytes("k")).Teal(sigOptions(vm.DefaultVersion))
		return err
	})

	expectOps(t, Arg(1), sigOptions(vm.DefaultVersion), "arg 1")
	expectOps(t, App.GlobalGet(Bytes("k")), appOptions(vm.DefaultVersion),
		`byte "k"`, "app_global_get")
}

func TestTxnAndGlobalFields(t *testing.T) {
	expectOps(t, Txn.Amount(), sigOptions(vm.DefaultVersion), "txn Amount")
	expectOps(t, Txn.Sender(), sigOptions(vm.DefaultVersion), "txn Sender")
	expectOps(t, Gtxn(1).Receiver(), sigOptions(vm.DefaultVersion), "gtxn 1 Receiver")
	expectOps(t, Global.GroupSize(), sigOptions(vm.DefaultVersion), "global GroupSize")

	testutil.ExpectEqual(t, Txn.Amount().Type(), TypeUint64, "amount type")
	testutil.ExpectEqual(t, Txn.Sender().Type(), TypeBytes, "sender type")

	testutil.ExpectError(t, ir.ErrInput, "group index out of range", func() error {
		_, _, err := Gtxn(16).Sender().Teal(sigOptions(vm.DefaultVersion))
		return err
	})
}

func TestScratchVarLowering(t *testing.T) {
	v := NewScratchVar(TypeUint64)
	ops := linearOps(t, Seq(v.Store(Int(7)), Pop(v.Load())), sigOptions(vm.DefaultVersion))

	var got []vm.Op
	for _, o := range ops {
		got = append(got, o.Op)
	}
	testutil.ExpectEqual(t, got, []vm.Op{vm.OpInt, vm.OpStore, vm.OpLoad, vm.OpPop}, "op sequence")

	// Store and load must address the same unassigned slot.
	if ops[1].Args[0] != ops[2].Args[0] {
		t.Error("store and load reference different slots")
	}
	testutil.ExpectError(t, ir.ErrInput, "store of wrong type", func() error {
		_, _, err := v.Store(Bytes("x")).Teal(sigOptions(vm.DefaultVersion))
		return err
	})
}

func TestReservedScratchVar(t *testing.T) {
	v, err := NewReservedScratchVar(TypeUint64, 200)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	if !v.Slot().Reserved() {
		t.Error("slot is not reserved")
	}

	testutil.ExpectError(t, ir.ErrInput, "slot id out of range", func() error {
		_, err := NewReservedScratchVar(TypeUint64, 256)
		return err
	})
}

func TestDynamicScratchVar(t *testing.T) {
	target := NewScratchVar(TypeUint64)
	dyn := NewDynamicScratchVar(TypeUint64)

	program := Seq(
		target.Store(Int(1)),
		dyn.SetIndex(target),
		dyn.Store(Int(2)),
		Pop(dyn.Load()),
	)
	ops := linearOps(t, program, sigOptions(5))

	var got []vm.Op
	for _, o := range ops {
		got = append(got, o.Op)
	}
	testutil.ExpectEqual(t, got, []vm.Op{
		vm.OpInt, vm.OpStore, // target value
		vm.OpInt, vm.OpStore, // index cell
		vm.OpLoad, vm.OpInt, vm.OpStores, // indirect write
		vm.OpLoad, vm.OpLoads, vm.OpPop, // indirect read
	}, "op sequence")

	testutil.ExpectError(t, ir.ErrVersion, "indirect access below version 5", func() error {
		_, _, err := dyn.Load().Teal(sigOptions(4))
		return err
	})
}

func TestMaybeValue(t *testing.T) {
	maybe := App.GlobalGetEx(Int(0), Bytes("k"))
	ops := linearOps(t, maybe, appOptions(vm.DefaultVersion))

	var got []vm.Op
	for _, o := range ops {
		got = append(got, o.Op)
	}
	testutil.ExpectEqual(t, got, []vm.Op{
		vm.OpInt, vm.OpByte, vm.OpAppGlobalGetEx, vm.OpStore, vm.OpStore,
	}, "op sequence")

	// The first store receives the presence flag.
	hasOps := linearOps(t, maybe.HasValue(), appOptions(vm.DefaultVersion))
	testutil.ExpectEqual(t, hasOps[0].Args[0], ops[3].Args[0], "flag slot")
	valueOps := linearOps(t, maybe.Value(), appOptions(vm.DefaultVersion))
	testutil.ExpectEqual(t, valueOps[0].Args[0], ops[4].Args[0], "value slot")
}

func TestAssetAndBalance(t *testing.T) {
	holding := AssetHoldingBalance(Int(0), Int(0))
	ops := linearOps(t, holding, appOptions(vm.DefaultVersion))
	testutil.ExpectEqual(t, opText(ops[2]), "asset_holding_get AssetBalance", "holding op")

	expectOps(t, Balance(Int(0)), appOptions(vm.DefaultVersion), "int 0", "balance")
}

func TestAssertAndErr(t *testing.T) {
	expectOps(t, Assert(Int(1)), sigOptions(3), "int 1", "assert")
	expectOps(t, Err(), sigOptions(vm.DefaultVersion), "err")

	testutil.ExpectError(t, ir.ErrVersion, "assert below version 3", func() error {
		_, _, err := Assert(Int(1)).Teal(sigOptions(2))
		return err
	})
}

func TestReturnInMain(t *testing.T) {
	expectOps(t, Return(Int(1)), sigOptions(vm.DefaultVersion), "int 1", "return")
	expectOps(t, Approve(), sigOptions(vm.DefaultVersion), "int 1", "return")
	expectOps(t, Reject(), sigOptions(vm.DefaultVersion), "int 0", "return")

	testutil.ExpectError(t, ir.ErrInput, "bytes result in main", func() error {
		_, _, err := Return(Bytes("x")).Teal(sigOptions(vm.DefaultVersion))
		return err
	})
	testutil.ExpectError(t, ir.ErrInput, "bare return in main", func() error {
		_, _, err := Return().Teal(sigOptions(vm.DefaultVersion))
		return err
	})
}

func TestSubroutineCallValidation(t *testing.T) {
	double, err := NewSubroutine("double", TypeUint64,
		[]Param{{Name: "x", Type: TypeUint64, Kind: ByValue}},
		func(args []Expr) Expr { return Add(args[0], args[0]) })
	if err != nil {
		testutil.FatalErr(t, err)
	}

	testutil.ExpectError(t, ir.ErrInput, "wrong arity", func() error {
		_, err := double.Call()
		return err
	})
	testutil.ExpectError(t, ir.ErrInput, "wrong type", func() error {
		_, err := double.Call(Bytes("x"))
		return err
	})

	swap, err := NewSubroutine("swap", TypeNone,
		[]Param{
			{Name: "a", Type: TypeUint64, Kind: ByReference},
			{Name: "b", Type: TypeUint64, Kind: ByReference},
		},
		func(args []Expr) Expr {
			a := args[0].(*DynamicScratchVar)
			b := args[1].(*DynamicScratchVar)
			tmp := NewScratchVar(TypeUint64)
			return Seq(tmp.Store(a.Load()), a.Store(b.Load()), b.Store(tmp.Load()))
		})
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectError(t, ir.ErrInput, "by-reference needs a variable", func() error {
		_, err := swap.Call(Int(1), Int(2))
		return err
	})

	x := NewScratchVar(TypeUint64)
	y := NewScratchVar(TypeUint64)
	if _, err := swap.Call(x, y); err != nil {
		testutil.FatalErr(t, err)
	}
}

func TestSubroutineCallLowering(t *testing.T) {
	double, err := NewSubroutine("double", TypeUint64,
		[]Param{{Name: "x", Type: TypeUint64, Kind: ByValue}},
		func(args []Expr) Expr { return Add(args[0], args[0]) })
	if err != nil {
		testutil.FatalErr(t, err)
	}
	call, err := double.Call(Int(21))
	if err != nil {
		testutil.FatalErr(t, err)
	}

	ops := linearOps(t, call, sigOptions(4))
	var got []vm.Op
	for _, o := range ops {
		got = append(got, o.Op)
	}
	testutil.ExpectEqual(t, got, []vm.Op{vm.OpInt, vm.OpCallSub}, "op sequence")
	if _, ok := ops[1].Args[0].(ir.SubroutineOperand); !ok {
		t.Error("callsub target is not a subroutine operand")
	}
	testutil.ExpectEqual(t, call.Type(), TypeUint64, "call type")

	testutil.ExpectError(t, ir.ErrVersion, "callsub below version 4", func() error {
		_, _, err := call.Teal(sigOptions(2))
		return err
	})
}

func TestSubroutineDeclaration(t *testing.T) {
	sum, err := NewSubroutine("sum", TypeUint64,
		[]Param{
			{Name: "a", Type: TypeUint64, Kind: ByValue},
			{Name: "b", Type: TypeUint64, Kind: ByValue},
		},
		func(args []Expr) Expr { return Add(args[0], args[1]) })
	if err != nil {
		testutil.FatalErr(t, err)
	}
	decl, err := sum.Declaration()
	if err != nil {
		testutil.FatalErr(t, err)
	}

	ops := linearOps(t, decl, sigOptions(4))
	var got []vm.Op
	for _, o := range ops {
		got = append(got, o.Op)
	}
	// Arguments are pushed left to right, so the prologue stores in
	// reverse, and the body result leaves through retsub.
	testutil.ExpectEqual(t, got, []vm.Op{
		vm.OpStore, vm.OpStore, vm.OpLoad, vm.OpLoad, vm.OpAdd, vm.OpRetSub,
	}, "op sequence")

	// store b; store a; load a; load b
	testutil.ExpectEqual(t, ops[1].Args[0], ops[2].Args[0], "first parameter cell")
	testutil.ExpectEqual(t, ops[0].Args[0], ops[3].Args[0], "second parameter cell")
}

func TestSubroutineReturnTypeChecking(t *testing.T) {
	wrong, err := NewSubroutine("wrong", TypeUint64, nil,
		func(args []Expr) Expr { return Bytes("x") })
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectError(t, ir.ErrInput, "body type mismatch", func() error {
		_, err := wrong.Declaration()
		return err
	})

	early, err := NewSubroutine("early", TypeNone, nil,
		func(args []Expr) Expr { return Return(Int(1)) })
	if err != nil {
		testutil.FatalErr(t, err)
	}
	decl, err := early.Declaration()
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectError(t, ir.ErrInput, "value return from none subroutine", func() error {
		_, _, err := decl.Teal(sigOptions(4))
		return err
	})
}

func TestSubroutineDefinitionValidation(t *testing.T) {
	body := func(args []Expr) Expr { return Int(1) }
	testutil.ExpectError(t, ir.ErrInput, "empty name", func() error {
		_, err := NewSubroutine("", TypeUint64, nil, body)
		return err
	})
	testutil.ExpectError(t, ir.ErrInput, "nil body", func() error {
		_, err := NewSubroutine("f", TypeUint64, nil, nil)
		return err
	})
	testutil.ExpectError(t, ir.ErrInput, "none parameter", func() error {
		_, err := NewSubroutine("f", TypeUint64, []Param{{Name: "x", Type: TypeNone}}, body)
		return err
	})
}

func TestErrorsCarrySourceExpression(t *testing.T) {
	bad := Add(Int(1), Bytes("a"))
	_, _, err := bad.Teal(sigOptions(vm.DefaultVersion))
	if err == nil {
		t.Fatal("expected a typing error")
	}
	data := errors.Data(err)
	if data["expr"] == nil {
		t.Error("error is missing the offending expression")
	}
}
