package ast

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

// TmplPrefix is the naming convention for template placeholders.
// Template values are rendered inline and never pooled, so the
// produced assembly remains textually substitutable.
const TmplPrefix = "TMPL_"

type intExpr struct {
	value uint64
}

// Int returns an expression pushing an integer literal.
func Int(value uint64) Expr {
	return intExpr{value}
}

func (e intExpr) Type() Type { return TypeUint64 }

func (e intExpr) String() string { return fmt.Sprintf("Int(%d)", e.value) }

func (e intExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpInt, ir.IntOperand(e.value)))
}

type constExpr struct {
	name  string
	value uint64
}

func (e constExpr) Type() Type { return TypeUint64 }

func (e constExpr) String() string { return fmt.Sprintf("Int(%s)", e.name) }

func (e constExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpInt, ir.ConstOperand{Name: e.name, Value: e.value}))
}

// OnComplete constants.
var (
	OnCompleteNoOp              Expr = constExpr{"NoOp", 0}
	OnCompleteOptIn             Expr = constExpr{"OptIn", 1}
	OnCompleteCloseOut          Expr = constExpr{"CloseOut", 2}
	OnCompleteClearState        Expr = constExpr{"ClearState", 3}
	OnCompleteUpdateApplication Expr = constExpr{"UpdateApplication", 4}
	OnCompleteDeleteApplication Expr = constExpr{"DeleteApplication", 5}
)

// Transaction type constants.
var (
	TxnTypeUnknown         Expr = constExpr{"unknown", 0}
	TxnTypePayment         Expr = constExpr{"pay", 1}
	TxnTypeKeyRegistration Expr = constExpr{"keyreg", 2}
	TxnTypeAssetConfig     Expr = constExpr{"acfg", 3}
	TxnTypeAssetTransfer   Expr = constExpr{"axfer", 4}
	TxnTypeAssetFreeze     Expr = constExpr{"afrz", 5}
	TxnTypeApplicationCall Expr = constExpr{"appl", 6}
)

type bytesExpr struct {
	raw    []byte
	source string
}

// Bytes returns an expression pushing a byte string literal, written
// in the assembly as a quoted UTF-8 string.
func Bytes(s string) Expr {
	return bytesExpr{raw: []byte(s), source: strconv.Quote(s)}
}

// BytesHex returns an expression pushing a byte string literal written
// in hex. The argument may carry a 0x prefix.
func BytesHex(s string) (Expr, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, errors.Wrapf(errors.WithDetailf(ir.ErrInput, "invalid hex literal"), "decoding %q", s)
	}
	return bytesExpr{raw: raw, source: "0x" + trimmed}, nil
}

// BytesBase32 returns an expression pushing a byte string literal
// written in base32.
func BytesBase32(s string) (Expr, error) {
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, errors.Wrapf(errors.WithDetailf(ir.ErrInput, "invalid base32 literal"), "decoding %q", s)
	}
	return bytesExpr{raw: raw, source: fmt.Sprintf("base32(%s)", s)}, nil
}

// BytesBase64 returns an expression pushing a byte string literal
// written in base64.
func BytesBase64(s string) (Expr, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.WithDetailf(ir.ErrInput, "invalid base64 literal"), "decoding %q", s)
	}
	return bytesExpr{raw: raw, source: fmt.Sprintf("base64(%s)", s)}, nil
}

func (e bytesExpr) Type() Type { return TypeBytes }

func (e bytesExpr) String() string { return fmt.Sprintf("Bytes(%s)", e.source) }

func (e bytesExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpByte, ir.BytesOperand{Raw: e.raw, Source: e.source}))
}

type addrExpr struct {
	raw    []byte
	source string
}

// Addr returns an expression pushing an address literal. The address
// must be a valid checksummed base32 address.
func Addr(address string) (Expr, error) {
	raw, err := decodeAddress(address)
	if err != nil {
		return nil, err
	}
	return addrExpr{raw: raw, source: address}, nil
}

func (e addrExpr) Type() Type { return TypeBytes }

func (e addrExpr) String() string { return fmt.Sprintf("Addr(%s)", e.source) }

func (e addrExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, vm.OpAddr, ir.AddrOperand{Raw: e.raw, Source: e.source}))
}

type tmplExpr struct {
	op   vm.Op
	name string
	typ  Type
}

func newTmpl(op vm.Op, typ Type, name string) (Expr, error) {
	if !strings.HasPrefix(name, TmplPrefix) {
		return nil, errors.WithDetailf(ir.ErrInput, "template name %q lacks the %s prefix", name, TmplPrefix)
	}
	return tmplExpr{op: op, name: name, typ: typ}, nil
}

// TmplInt returns a template placeholder for an integer value. The
// name must begin with TmplPrefix.
func TmplInt(name string) (Expr, error) {
	return newTmpl(vm.OpInt, TypeUint64, name)
}

// TmplBytes returns a template placeholder for a byte string value.
func TmplBytes(name string) (Expr, error) {
	return newTmpl(vm.OpByte, TypeBytes, name)
}

// TmplAddr returns a template placeholder for an address value.
func TmplAddr(name string) (Expr, error) {
	return newTmpl(vm.OpAddr, TypeBytes, name)
}

func (e tmplExpr) Type() Type { return e.typ }

func (e tmplExpr) String() string { return fmt.Sprintf("Tmpl(%s)", e.name) }

func (e tmplExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	return emitOp(options, ir.NewOp(e, e.op, ir.TmplOperand(e.name)))
}
