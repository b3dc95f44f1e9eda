package vm

// Op is an opcode the compiler can emit. The zero value is not a valid
// opcode.
type Op int

const (
	OpInvalid Op = iota

	// flow control
	OpErr
	OpBnz
	OpBz
	OpB
	OpReturn
	OpAssert
	OpCallSub
	OpRetSub

	// pseudo-ops for literal values, replaced by the constant pool
	// pass when it runs
	OpInt
	OpByte
	OpAddr

	// constant pools
	OpIntcBlock
	OpIntc0
	OpIntc1
	OpIntc2
	OpIntc3
	OpIntc
	OpPushInt
	OpBytecBlock
	OpBytec0
	OpBytec1
	OpBytec2
	OpBytec3
	OpBytec
	OpPushBytes

	// arithmetic, comparison, logic
	OpAdd
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNeq
	OpAnd
	OpOr
	OpNot
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpBitwiseNot

	// byte string manipulation
	OpLen
	OpItob
	OpBtoi
	OpConcat
	OpSha256

	// stack manipulation
	OpPop
	OpDup
	OpDup2
	OpSwap

	// scratch space
	OpLoad
	OpStore
	OpLoads
	OpStores

	// transaction introspection
	OpArg
	OpTxn
	OpGtxn
	OpGlobal

	// application state
	OpAppGlobalGet
	OpAppGlobalPut
	OpAppGlobalGetEx
	OpAssetHoldingGet
	OpBalance
)

type opInfo struct {
	name       string
	minVersion uint64
	modes      Mode
}

var ops = [...]opInfo{
	OpErr:     {"err", 1, ModeAny},
	OpBnz:     {"bnz", 1, ModeAny},
	OpBz:      {"bz", 2, ModeAny},
	OpB:       {"b", 2, ModeAny},
	OpReturn:  {"return", 2, ModeAny},
	OpAssert:  {"assert", 3, ModeAny},
	OpCallSub: {"callsub", 4, ModeAny},
	OpRetSub:  {"retsub", 4, ModeAny},

	OpInt:  {"int", 1, ModeAny},
	OpByte: {"byte", 1, ModeAny},
	OpAddr: {"addr", 1, ModeAny},

	OpIntcBlock:  {"intcblock", 1, ModeAny},
	OpIntc0:      {"intc_0", 1, ModeAny},
	OpIntc1:      {"intc_1", 1, ModeAny},
	OpIntc2:      {"intc_2", 1, ModeAny},
	OpIntc3:      {"intc_3", 1, ModeAny},
	OpIntc:       {"intc", 1, ModeAny},
	OpPushInt:    {"pushint", 3, ModeAny},
	OpBytecBlock: {"bytecblock", 1, ModeAny},
	OpBytec0:     {"bytec_0", 1, ModeAny},
	OpBytec1:     {"bytec_1", 1, ModeAny},
	OpBytec2:     {"bytec_2", 1, ModeAny},
	OpBytec3:     {"bytec_3", 1, ModeAny},
	OpBytec:      {"bytec", 1, ModeAny},
	OpPushBytes:  {"pushbytes", 3, ModeAny},

	OpAdd:        {"+", 1, ModeAny},
	OpMinus:      {"-", 1, ModeAny},
	OpMul:        {"*", 1, ModeAny},
	OpDiv:        {"/", 1, ModeAny},
	OpMod:        {"%", 1, ModeAny},
	OpLt:         {"<", 1, ModeAny},
	OpGt:         {">", 1, ModeAny},
	OpLe:         {"<=", 1, ModeAny},
	OpGe:         {">=", 1, ModeAny},
	OpEq:         {"==", 1, ModeAny},
	OpNeq:        {"!=", 1, ModeAny},
	OpAnd:        {"&&", 1, ModeAny},
	OpOr:         {"||", 1, ModeAny},
	OpNot:        {"!", 1, ModeAny},
	OpBitwiseAnd: {"&", 1, ModeAny},
	OpBitwiseOr:  {"|", 1, ModeAny},
	OpBitwiseXor: {"^", 1, ModeAny},
	OpBitwiseNot: {"~", 1, ModeAny},

	OpLen:    {"len", 1, ModeAny},
	OpItob:   {"itob", 1, ModeAny},
	OpBtoi:   {"btoi", 1, ModeAny},
	OpConcat: {"concat", 2, ModeAny},
	OpSha256: {"sha256", 1, ModeAny},

	OpPop:  {"pop", 1, ModeAny},
	OpDup:  {"dup", 1, ModeAny},
	OpDup2: {"dup2", 2, ModeAny},
	OpSwap: {"swap", 3, ModeAny},

	OpLoad:   {"load", 1, ModeAny},
	OpStore:  {"store", 1, ModeAny},
	OpLoads:  {"loads", 5, ModeAny},
	OpStores: {"stores", 5, ModeAny},

	OpArg:    {"arg", 1, ModeSignature},
	OpTxn:    {"txn", 1, ModeAny},
	OpGtxn:   {"gtxn", 1, ModeAny},
	OpGlobal: {"global", 1, ModeAny},

	OpAppGlobalGet:    {"app_global_get", 2, ModeApplication},
	OpAppGlobalPut:    {"app_global_put", 2, ModeApplication},
	OpAppGlobalGetEx:  {"app_global_get_ex", 2, ModeApplication},
	OpAssetHoldingGet: {"asset_holding_get", 2, ModeApplication},
	OpBalance:         {"balance", 2, ModeApplication},
}

// String returns the assembly mnemonic for op.
func (op Op) String() string {
	if op <= OpInvalid || int(op) >= len(ops) {
		return "invalid"
	}
	return ops[op].name
}

// MinVersion returns the lowest program version in which op is available.
func (op Op) MinVersion() uint64 {
	return ops[op].minVersion
}

// Modes returns the mask of execution modes in which op is available.
func (op Op) Modes() Mode {
	return ops[op].modes
}
