/*
Package vm describes the target virtual machine: the catalog of TEAL
opcodes the compiler may emit, the minimum program version each opcode
requires, and the execution modes in which each opcode is available.

The package contains no execution logic. It exists so that the ir and
compiler packages can reason about version and mode constraints without
duplicating opcode data.
*/
package vm
