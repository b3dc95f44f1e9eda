/*
Package ir contains the intermediate representation the compiler works
on: instructions with tagged operands, basic blocks linked into a
control flow graph, and scratch slots.

Expression nodes lower themselves into fragments of this representation
(pairs of start and end blocks). The compiler packages then mutate the
graph in place: scratch slot operands are rewritten to their assigned
cell numbers, subroutine operands are rewritten to entry labels, and the
constant pool pass replaces literal pseudo-ops with pool references.
Assembling a component that still carries an unresolved operand is an
internal error.
*/
package ir
