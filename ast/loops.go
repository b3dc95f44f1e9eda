package ast

import (
	"fmt"

	"github.com/INIT-FOUNDATION/tealc/errors"
	"github.com/INIT-FOUNDATION/tealc/ir"
)

// loopVersion is the lowest program version in which branches may
// target earlier instructions.
const loopVersion = 4

// WhileExpr is a while loop under construction. Call Do to supply the
// body.
type WhileExpr struct {
	cond Expr
	body Expr
}

// While starts a loop that runs while cond is nonzero.
func While(cond Expr) *WhileExpr {
	return &WhileExpr{cond: cond}
}

// Do sets the loop body and returns the completed loop expression.
func (e *WhileExpr) Do(body Expr) Expr {
	return &WhileExpr{cond: e.cond, body: body}
}

func (e *WhileExpr) Type() Type { return TypeNone }

func (e *WhileExpr) String() string {
	return fmt.Sprintf("(While %s %s)", e.cond, e.body)
}

func (e *WhileExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if e.body == nil {
		return nil, nil, errors.WithDetailf(ir.ErrInput, "while loop is missing a body")
	}
	return lowerLoop(options, e, nil, e.cond, nil, e.body)
}

// ForExpr is a for loop under construction. Call Do to supply the
// body.
type ForExpr struct {
	init Expr
	cond Expr
	step Expr
	body Expr
}

// For starts a loop with an init expression, a condition, and a step
// expression evaluated after each iteration.
func For(init, cond, step Expr) *ForExpr {
	return &ForExpr{init: init, cond: cond, step: step}
}

// Do sets the loop body and returns the completed loop expression.
func (e *ForExpr) Do(body Expr) Expr {
	return &ForExpr{init: e.init, cond: e.cond, step: e.step, body: body}
}

func (e *ForExpr) Type() Type { return TypeNone }

func (e *ForExpr) String() string {
	return fmt.Sprintf("(For %s %s %s %s)", e.init, e.cond, e.step, e.body)
}

func (e *ForExpr) Teal(options *CompileOptions) (ir.Block, *ir.SimpleBlock, error) {
	if e.body == nil {
		return nil, nil, errors.WithDetailf(ir.ErrInput, "for loop is missing a body")
	}
	return lowerLoop(options, e, e.init, e.cond, e.step, e.body)
}

// lowerLoop builds the shared loop shape: an optional init fragment, a
// condition feeding a conditional block, a body (plus optional step)
// fragment whose exit loops back to the condition, and an empty exit
// block. The body's back-edge makes the graph cyclic.
func lowerLoop(options *CompileOptions, source Expr, init, cond, step, body Expr) (ir.Block, *ir.SimpleBlock, error) {
	if options.Version < loopVersion {
		return nil, nil, errors.WithData(errors.WithDetailf(ir.ErrVersion, "loops require program version %d, target is %d", loopVersion, options.Version), "expr", source)
	}
	if err := requireType(cond, TypeUint64); err != nil {
		return nil, nil, err
	}
	if err := requireType(body, TypeNone); err != nil {
		return nil, nil, err
	}

	condStart, condEnd, err := cond.Teal(options)
	if err != nil {
		return nil, nil, err
	}
	bodyStart, bodyEnd, err := body.Teal(options)
	if err != nil {
		return nil, nil, err
	}

	if step != nil {
		if err := requireType(step, TypeNone); err != nil {
			return nil, nil, err
		}
		stepStart, stepEnd, err := step.Teal(options)
		if err != nil {
			return nil, nil, err
		}
		bodyEnd.SetNext(stepStart)
		bodyEnd = stepEnd
	}

	end := ir.NewSimpleBlock()
	branch := ir.NewConditionalBlock()
	branch.SetTrue(bodyStart)
	branch.SetFalse(end)
	condEnd.SetNext(branch)
	bodyEnd.SetNext(condStart)

	start := ir.Block(condStart)
	if init != nil {
		if err := requireType(init, TypeNone); err != nil {
			return nil, nil, err
		}
		initStart, initEnd, err := init.Teal(options)
		if err != nil {
			return nil, nil, err
		}
		initEnd.SetNext(condStart)
		start = initStart
	}
	return start, end, nil
}
