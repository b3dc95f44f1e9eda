package ir

import "github.com/INIT-FOUNDATION/tealc/errors"

// Every fatal compilation error wraps one of these three roots. Use
// errors.Root to classify a failure.
var (
	// ErrInput marks malformed program construction: wrong argument
	// arity or kind, out-of-range slot ids, unsupported versions or
	// modes requested by the caller.
	ErrInput = errors.New("invalid program input")

	// ErrInternal marks a violated compiler invariant: unresolved
	// operands at assembly time, slot capacity exceeded, duplicate
	// reserved slot ids, a local slot read before it is written.
	ErrInternal = errors.New("internal compile error")

	// ErrVersion marks an instruction whose minimum program version
	// exceeds the configured target.
	ErrVersion = errors.New("program version mismatch")
)
