package dumb

import (
	"context"
	"io"
	"strconv"

	"github.com/rs/zerolog"
)

// Execution carries the state of one Session.RunTokens call across every
// nested region invocation.
type Execution struct {
	session      *Session
	ctx          context.Context
	out          io.Writer
	logger       zerolog.Logger
	quota        int
	recursionCap int
	stackCap     int
	steps        int
	frames       []regionFrame
}

type regionFrame struct {
	region string
	tokens []string
	pos    int
}

type scanState int

const (
	stateIdle scanState = iota
	stateCollectingLoop
	stateCollectingAssignment
)

func (s scanState) String() string {
	switch s {
	case stateCollectingLoop:
		return "collecting-loop"
	case stateCollectingAssignment:
		return "collecting-assignment"
	default:
		return "idle"
	}
}

// run scans tokens left to right. Region openers switch the scanner into a
// collecting state until the matching end, at which point the enclosed
// tokens are dispatched and scanning resumes after the end. A region that is
// never closed is dropped without being executed.
func (exec *Execution) run(region string, tokens []string) error {
	if err := exec.pushFrame(region, tokens); err != nil {
		return err
	}
	defer exec.popFrame()

	state := stateIdle
	opener := 0
	depth := 0

	for i, tok := range tokens {
		exec.setPos(i)
		if err := exec.step(); err != nil {
			return err
		}
		exec.logger.Trace().
			Str("region", region).
			Int("index", i).
			Str("token", tok).
			Stringer("state", state).
			Ints64("stack", exec.session.stack).
			Msg("dispatch")

		if state != stateIdle {
			switch {
			case isRegionOpener(tok):
				depth++
			case tok == keywordEnd && depth > 0:
				depth--
			case tok == keywordEnd:
				body := tokens[opener+1 : i]
				exec.setPos(opener)
				var err error
				if state == stateCollectingLoop {
					err = exec.loop(body)
				} else {
					err = exec.assignment(body)
				}
				if err != nil {
					return err
				}
				state = stateIdle
			}
			continue
		}

		switch {
		case isIntegerLiteral(tok):
			val, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return exec.errorAt(ErrInvalidLiteral, "integer literal %q exceeds the limits of i64", tok)
			}
			if err := exec.push(val); err != nil {
				return err
			}
		case tok == keywordLoop:
			opener, depth, state = i, 0, stateCollectingLoop
		case tok == keywordAssign:
			opener, depth, state = i, 0, stateCollectingAssignment
		case tok == keywordEnd:
		case isKeyword(tok):
			if err := exec.stackWord(tok); err != nil {
				return err
			}
		case isOperator(tok):
			if err := exec.arithmetic(tok); err != nil {
				return err
			}
		default:
			val, ok := exec.session.vars.Lookup(tok)
			if !ok {
				return exec.errorAt(ErrUnknownToken, "token unknown %q", tok)
			}
			if err := exec.push(val); err != nil {
				return err
			}
		}
	}

	if state != stateIdle {
		exec.logger.Debug().
			Str("region", region).
			Int("opener", opener).
			Stringer("state", state).
			Msg("unterminated region skipped")
	}
	return nil
}
