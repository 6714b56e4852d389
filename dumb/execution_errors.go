package dumb

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StackFrame identifies one active region at the point of failure.
type StackFrame struct {
	Region string
	Token  int
}

// RuntimeError is returned for every failure detected while executing a
// program. Kind is one of the Err* sentinels and is exposed through Unwrap.
type RuntimeError struct {
	Kind      error
	Message   string
	Token     string
	CodeFrame string
	Frames    []StackFrame
}

const (
	regionScript     = "<script>"
	regionLoop       = "loop"
	regionAssignment = "->"

	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var (
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrRemainderFault     = errors.New("remainder fault")
	ErrUnknownToken       = errors.New("unknown token")
	ErrInvalidLiteral     = errors.New("invalid integer literal")
	ErrInvalidAssignment  = errors.New("invalid assignment")
	ErrStepQuotaExceeded  = errors.New("step quota exceeded")
	ErrRecursionLimit     = errors.New("region nesting limit exceeded")
	ErrStackLimitExceeded = errors.New("stack limit exceeded")
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		fmt.Fprintf(&b, "\n  at %s (token %d)", frame.Region, frame.Token)
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

func (re *RuntimeError) Unwrap() error {
	return re.Kind
}

// IsInterrupted reports whether err stems from the host canceling the
// context or its deadline expiring, as opposed to a program fault.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.errorAt(ErrStepQuotaExceeded, "step quota exceeded (%d)", exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

// errorAt builds a RuntimeError positioned at the current token of the
// innermost region.
func (exec *Execution) errorAt(kind error, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.frames))
	for i := len(exec.frames) - 1; i >= 0; i-- {
		frames = append(frames, StackFrame{Region: exec.frames[i].region, Token: exec.frames[i].pos})
	}

	re := &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Frames: frames}
	if len(exec.frames) > 0 {
		current := exec.frames[len(exec.frames)-1]
		if current.pos >= 0 && current.pos < len(current.tokens) {
			re.Token = current.tokens[current.pos]
		}
		re.CodeFrame = formatTokenFrame(current.tokens, current.pos)
	}
	return re
}
