package dumb

import (
	"errors"
	"math"
)

type arithmeticOp struct {
	name  string
	apply func(a, b int64) (int64, error)
}

var (
	errInt64Overflow   = errors.New("exceeded the limits of i64")
	errRemainderByZero = errors.New("integer divide by zero")
)

var arithmeticOps = map[string]arithmeticOp{
	"+": {name: "sum", apply: addInt64},
	"-": {name: "subtraction", apply: subInt64},
	"*": {name: "multiplication", apply: mulInt64},
	"/": {name: "division", apply: divInt64},
	"%": {name: "remainder", apply: remInt64},
}

// arithmetic pops b then a and pushes a op b.
func (exec *Execution) arithmetic(tok string) error {
	op := arithmeticOps[tok]
	if err := exec.require(tok, 2); err != nil {
		return err
	}
	result, err := op.apply(exec.peek(1), exec.peek(0))
	if err != nil {
		if errors.Is(err, errInt64Overflow) {
			return exec.errorAt(ErrArithmeticOverflow, "%s %s", op.name, err)
		}
		return exec.errorAt(ErrRemainderFault, "%s failed: %s", op.name, err)
	}
	exec.pop()
	exec.pop()
	return exec.push(result)
}

func addInt64(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, errInt64Overflow
	}
	return sum, nil
}

func subInt64(a, b int64) (int64, error) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, errInt64Overflow
	}
	return diff, nil
}

func mulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, errInt64Overflow
	}
	product := a * b
	if product/b != a {
		return 0, errInt64Overflow
	}
	return product, nil
}

// divInt64 treats a zero divisor the same as an overflow.
func divInt64(a, b int64) (int64, error) {
	if b == 0 || (a == math.MinInt64 && b == -1) {
		return 0, errInt64Overflow
	}
	return a / b, nil
}

// remInt64 is Go's native truncating remainder with no overflow check, so
// MinInt64 % -1 yields 0. Only a zero divisor faults.
func remInt64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errRemainderByZero
	}
	return a % b, nil
}
