package vm

import "testing"

func TestOpString(t *testing.T) {
	cases := []struct {
		op   Op
		want string
	}{
		{OpErr, "err"},
		{OpAdd, "+"},
		{OpAppGlobalGet, "app_global_get"},
		{OpCallSub, "callsub"},
		{OpInvalid, "invalid"},
		{Op(1000), "invalid"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("Op(%d).String() = %q want %q", c.op, got, c.want)
		}
	}
}

func TestOpMinVersion(t *testing.T) {
	cases := []struct {
		op   Op
		want uint64
	}{
		{OpErr, 1},
		{OpB, 2},
		{OpPushInt, 3},
		{OpCallSub, 4},
		{OpLoads, 5},
	}
	for _, c := range cases {
		if got := c.op.MinVersion(); got != c.want {
			t.Errorf("%s.MinVersion() = %d want %d", c.op, got, c.want)
		}
	}
}

func TestOpModes(t *testing.T) {
	if m := OpArg.Modes(); m != ModeSignature {
		t.Errorf("arg modes = %v want %v", m, ModeSignature)
	}
	if m := OpAppGlobalPut.Modes(); m != ModeApplication {
		t.Errorf("app_global_put modes = %v want %v", m, ModeApplication)
	}
	if m := OpTxn.Modes(); m != ModeAny {
		t.Errorf("txn modes = %v want %v", m, ModeAny)
	}
}

func TestOpTableComplete(t *testing.T) {
	for op := OpErr; int(op) < len(ops); op++ {
		if ops[op].name == "" {
			t.Errorf("opcode %d has no table entry", op)
		}
		if ops[op].minVersion == 0 {
			t.Errorf("opcode %s has no minimum version", ops[op].name)
		}
		if ops[op].modes == 0 {
			t.Errorf("opcode %s has no modes", ops[op].name)
		}
	}
}
