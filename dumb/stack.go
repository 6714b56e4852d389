package dumb

import "fmt"

// require fails with a stack underflow unless at least n values are present.
func (exec *Execution) require(word string, n int) error {
	if got := len(exec.session.stack); got < n {
		return exec.errorAt(ErrStackUnderflow, "insufficient number of elements in stack for %s, got %d need %d", word, got, n)
	}
	return nil
}

func (exec *Execution) push(val int64) error {
	if exec.stackCap > 0 && len(exec.session.stack) >= exec.stackCap {
		return exec.errorAt(ErrStackLimitExceeded, "stack limit exceeded (%d values)", exec.stackCap)
	}
	exec.session.stack = append(exec.session.stack, val)
	return nil
}

func (exec *Execution) pop() int64 {
	stack := exec.session.stack
	top := stack[len(stack)-1]
	exec.session.stack = stack[:len(stack)-1]
	return top
}

func (exec *Execution) peek(depth int) int64 {
	stack := exec.session.stack
	return stack[len(stack)-1-depth]
}

func (exec *Execution) stackWord(word string) error {
	switch word {
	case keywordPrint:
		if err := exec.require(word, 1); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(exec.out, "%d\n", exec.peek(0)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		exec.pop()
		return nil
	case keywordDup:
		if err := exec.require(word, 1); err != nil {
			return err
		}
		return exec.push(exec.peek(0))
	case keywordSwap:
		if err := exec.require(word, 2); err != nil {
			return err
		}
		stack := exec.session.stack
		n := len(stack)
		stack[n-1], stack[n-2] = stack[n-2], stack[n-1]
		return nil
	case keywordOver:
		if err := exec.require(word, 2); err != nil {
			return err
		}
		return exec.push(exec.peek(1))
	case keywordDrop:
		if err := exec.require(word, 1); err != nil {
			return err
		}
		exec.pop()
		return nil
	default:
		return exec.errorAt(ErrUnknownToken, "token unknown %q", word)
	}
}
