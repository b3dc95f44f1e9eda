package ir

import "strconv"

// Operand is one argument of an instruction. It is a closed variant:
// integer, named integer constant, byte string, address, template
// placeholder, label reference, scratch slot reference, or subroutine
// reference. Passes match exhaustively over the concrete types.
type Operand interface {
	isOperand()

	// String returns the operand's assembly text. For unresolved
	// slot and subroutine references it returns a diagnostic form;
	// Op.Assemble rejects those.
	String() string
}

// IntOperand is an integer literal.
type IntOperand uint64

func (IntOperand) isOperand() {}

func (o IntOperand) String() string {
	return strconv.FormatUint(uint64(o), 10)
}

// ConstOperand is a named integer constant, such as an OnComplete or
// transaction type symbol. It renders as its name but pools as its
// numeric value, so distinct spellings of the same value share a pool
// entry.
type ConstOperand struct {
	Name  string
	Value uint64
}

func (ConstOperand) isOperand() {}

func (o ConstOperand) String() string {
	return o.Name
}

// BytesOperand is a byte string literal. Source holds the literal as
// written (a quoted string, 0x hex, or a base32/base64 form); Raw holds
// the decoded bytes used for pool frequency counting.
type BytesOperand struct {
	Raw    []byte
	Source string
}

func (BytesOperand) isOperand() {}

func (o BytesOperand) String() string {
	return o.Source
}

// AddrOperand is an address literal. Source is the checksummed base32
// address; Raw is the decoded 32-byte public key, the canonical form
// used for pooling.
type AddrOperand struct {
	Raw    []byte
	Source string
}

func (AddrOperand) isOperand() {}

func (o AddrOperand) String() string {
	return o.Source
}

// TmplOperand is a template placeholder name. Template values are never
// pooled so that the emitted text remains substitutable.
type TmplOperand string

func (TmplOperand) isOperand() {}

func (o TmplOperand) String() string {
	return string(o)
}

// FieldOperand is a named immediate argument, such as a transaction or
// global field name.
type FieldOperand string

func (FieldOperand) isOperand() {}

func (o FieldOperand) String() string {
	return string(o)
}

// LabelOperand is a resolved branch or call target.
type LabelOperand string

func (LabelOperand) isOperand() {}

func (o LabelOperand) String() string {
	return string(o)
}

// Subroutine identifies a callable unit. It is implemented by the ast
// subroutine definition type; this package needs only its identity and
// name.
type Subroutine interface {
	Name() string
}

// SubroutineOperand is an unresolved call target. The label resolver
// rewrites it to the subroutine's entry label.
type SubroutineOperand struct {
	Sub Subroutine
}

func (SubroutineOperand) isOperand() {}

func (o SubroutineOperand) String() string {
	return o.Sub.Name()
}
