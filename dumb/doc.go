// Package dumb implements the interpreter for the dumb stack language. A
// program is a flat sequence of separator-delimited tokens:
//   - Integer literals push a value onto the evaluation stack.
//   - `print`, `dup`, `swap`, `over` and `drop` manipulate the stack.
//   - `+`, `-`, `*`, `/` and `%` pop two operands and push the result.
//   - `n loop ... end` runs the enclosed tokens n times.
//   - `-> name int end` pops the top of the stack into a variable; the bare
//     name pushes the stored value back.
//
// The engine enforces a step quota, a region nesting limit and a stack size
// limit, and reports every failure as a *RuntimeError.
package dumb
