package ast

import (
	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
)

// Type is the kind of value an expression leaves on the stack.
type Type int

const (
	// TypeUint64 is a 64-bit unsigned integer.
	TypeUint64 Type = iota

	// TypeBytes is a byte string.
	TypeBytes

	// TypeNone marks expressions that leave nothing on the stack.
	TypeNone

	// TypeAny matches either value type.
	TypeAny
)

func (t Type) String() string {
	switch t {
	case TypeUint64:
		return "uint64"
	case TypeBytes:
		return "bytes"
	case TypeNone:
		return "none"
	case TypeAny:
		return "any"
	}
	return "invalid"
}

// compatible reports whether an expression of type actual can be used
// where want is expected.
func compatible(actual, want Type) bool {
	if want == actual {
		return true
	}
	switch want {
	case TypeAny:
		return actual != TypeNone
	case TypeUint64, TypeBytes:
		return actual == TypeAny
	}
	return false
}

// requireType returns an input error unless e produces a value usable
// as type want.
func requireType(e Expr, want Type) error {
	if !compatible(e.Type(), want) {
		return errors.WithData(errors.WithDetailf(ir.ErrInput, "%s has type %s, want %s", e, e.Type(), want), "expr", e)
	}
	return nil
}
