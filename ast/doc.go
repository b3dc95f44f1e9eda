/*
Package ast provides the expression nodes programs are composed from:
literals, arithmetic, transaction and state access, scratch variables,
control flow, and subroutines.

Every node implements the emission contract the compiler consumes:
given compile options, a node lowers itself to a fragment of the ir
block graph and returns the fragment's entry and exit blocks. Nodes
perform their own type and mode checking during lowering; structural
mistakes in subroutine calls (argument arity or kind) are rejected when
the call is constructed.
*/
package ast
