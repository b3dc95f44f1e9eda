package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
	"github.com/INIT-FOUNDATION/tealc/vm"
)

const subroutineVersion = 4

// ParamKind says how a subroutine parameter is passed.
type ParamKind int

const (
	// ByValue parameters receive a copy of the argument's value.
	ByValue ParamKind = iota

	// ByReference parameters receive the argument's scratch cell
	// number, so writes inside the subroutine are visible to the
	// caller. By-reference arguments must be scratch variables.
	ByReference
)

func (k ParamKind) String() string {
	if k == ByReference {
		return "by reference"
	}
	return "by value"
}

// Param declares one subroutine parameter.
type Param struct {
	Name string
	Type Type
	Kind ParamKind
}

// scratchRef is a scratch variable usable as a by-reference argument.
type scratchRef interface {
	Expr
	indexExpr() Expr
}

// SubroutineDefinition is a named, callable unit compiled once and
// entered with callsub. The body builder runs once, when the
// subroutine's declaration is first materialized; it receives one
// expression per parameter, reading the parameter for by-value
// parameters and addressing the caller's cell for by-reference ones.
type SubroutineDefinition struct {
	name       string
	returnType Type
	params     []Param
	body       func(args []Expr) Expr
}

// NewSubroutine defines a subroutine.
func NewSubroutine(name string, returnType Type, params []Param, body func(args []Expr) Expr) (*SubroutineDefinition, error) {
	if name == "" {
		return nil, errors.WithDetail(ir.ErrInput, "subroutine name is empty")
	}
	if body == nil {
		return nil, errors.WithDetailf(ir.ErrInput, "subroutine %s has no body", name)
	}
	for _, p := range params {
		if p.Type == TypeNone {
			return nil, errors.WithDetailf(ir.ErrInput, "subroutine %s parameter %s cannot have type %s", name, p.Name, TypeNone)
		}
	}
	return &SubroutineDefinition{
		name:       name,
		returnType: returnType,
		params:     params,
		body:       body,
	}, nil
}

// Name returns the subroutine's declared name.
func (s *SubroutineDefinition) Name() string { return s.name }

// ReturnType returns the type of value the subroutine leaves on the
// stack, or TypeNone.
func (s *SubroutineDefinition) ReturnType() Type { return s.returnType }

// Params returns the declared parameters.
func (s *SubroutineDefinition) Params() []Param { return s.params }

// Call returns an expression invoking the subroutine with args. The
// argument list must match the declared parameters in count, type,
// and kind.
func (s *SubroutineDefinition) Call(args ...Expr) (Expr, error) {
	if len(args) != len(s.params) {
		return nil, errors.WithDetailf(ir.ErrInput, "subroutine %s takes %d arguments, got %d", s.name, len(s.params), len(args))
	}
	for i, arg := range args {
		p := s.params[i]
		if p.Kind == ByReference {
			ref, ok := arg.(scratchRef)
			if !ok {
				return nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s parameter %s is by reference and needs a scratch variable argument", s.name, p.Name), "expr", arg)
			}
			if !compatible(ref.Type(), p.Type) {
				return nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s parameter %s has type %s, argument has type %s", s.name, p.Name, p.Type, ref.Type()), "expr", arg)
			}
			continue
		}
		if arg.Type() == TypeNone {
			return nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s parameter %s needs a value argument", s.name, p.Name), "expr", arg)
		}
		if !compatible(arg.Type(), p.Type) {
			return nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s parameter %s has type %s, argument has type %s", s.name, p.Name, p.Type, arg.Type()), "expr", arg)
		}
	}
	return &subroutineCall{sub: s, args: args}, nil
}

// Declaration materializes the subroutine's entry prologue and body as
// a single expression. The caller pushes arguments left to right, so
// the prologue stores them into parameter cells in reverse; the body
// then runs against those cells, and its result is returned with
// retsub.
//
// Each call builds fresh parameter cells, so a declaration must be
// materialized once per compilation and reused.
func (s *SubroutineDefinition) Declaration() (Expr, error) {
	paramExprs := make([]Expr, len(s.params))
	stores := make([]Expr, len(s.params))
	for i, p := range s.params {
		if p.Kind == ByReference {
			v := NewDynamicScratchVar(p.Type)
			paramExprs[i] = v
			stores[i] = stackStore{slot: v.indexVar.slot}
			continue
		}
		v := NewScratchVar(p.Type)
		paramExprs[i] = v
		stores[i] = stackStore{slot: v.slot}
	}

	body := s.body(paramExprs)
	if body == nil {
		return nil, errors.WithDetailf(ir.ErrInput, "subroutine %s body is empty", s.name)
	}
	if body.Type() != TypeNone && !compatible(body.Type(), s.returnType) {
		return nil, errors.WithData(errors.WithDetailf(ir.ErrInput, "subroutine %s returns %s, body has type %s", s.name, s.returnType, body.Type()), "expr", body)
	}

	seq := make([]Expr, 0, len(s.params)+1)
	for i := len(stores) - 1; i >= 0; i-- {
		seq = append(seq, stores[i])
	}
	if body.Type() == TypeNone {
		seq = append(seq, body, Return())
	} else {
		seq = append(seq, Return(body))
	}
	return declarationExpr{sub: s, body: Seq(seq...)}, nil
}

// declarationExpr marks the root of a subroutine body so lowering can
// bind the enclosing subroutine for return checking.
type declarationExpr struct {
	sub  *SubroutineDefinition
	body Expr
}

func (e declarationExpr) Type() Type { return TypeNone }

func (e declarationExpr) String() string { return fmt.Sprintf("(SubroutineDeclaration %s)", e.sub.name) }

func (e declarationExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	inner := *options
	inner.Subroutine = e.sub
	return e.body.Teal(&inner)
}

type subroutineCall struct {
	sub  *SubroutineDefinition
	args []Expr
}

func (e *subroutineCall) Type() Type { return e.sub.returnType }

func (e *subroutineCall) String() string {
	return fmt.Sprintf("(SubroutineCall %s %d args)", e.sub.name, len(e.args))
}

func (e *subroutineCall) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if options.Version < subroutineVersion {
		return nil, nil, errVersionedOp(e, vm.OpCallSub, subroutineVersion, options.Version)
	}
	pushed := make([]Expr, len(e.args))
	for i, arg := range e.args {
		if e.sub.params[i].Kind == ByReference {
			pushed[i] = arg.(scratchRef).indexExpr()
		} else {
			pushed[i] = arg
		}
	}
	return emitOp(options, ir.NewOp(e, vm.OpCallSub, ir.SubroutineOperand{Sub: e.sub}), pushed...)
}
