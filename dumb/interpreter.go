package dumb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog"
)

const (
	defaultStepQuota      = 10_000_000
	defaultRecursionLimit = 256
	defaultStackLimit     = 1 << 20
)

// Config controls interpreter execution bounds and output. A zero limit
// selects the default; a negative StepQuota or StackLimit disables that limit.
type Config struct {
	StepQuota      int
	RecursionLimit int
	StackLimit     int
	Stdout         io.Writer
	Logger         *zerolog.Logger
}

// Engine executes dumb programs with deterministic limits.
type Engine struct {
	config Config
	logger zerolog.Logger
}

// NewEngine constructs an Engine with sane defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota == 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit < 0 {
		return nil, errors.New("dumb: recursion limit cannot be disabled")
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.StackLimit == 0 {
		cfg.StackLimit = defaultStackLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Engine{config: cfg, logger: logger}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Execute tokenizes source and runs it against a fresh stack and variable table.
func (e *Engine) Execute(ctx context.Context, source string) error {
	return e.NewSession().Run(ctx, source)
}

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d recursion=%d stack=%d", e.config.StepQuota, e.config.RecursionLimit, e.config.StackLimit)
}

// Session owns the evaluation stack and variable table of one program run.
// Successive Run calls on the same Session observe each other's state.
type Session struct {
	engine *Engine
	stack  []int64
	vars   *Variables
}

func (e *Engine) NewSession() *Session {
	return &Session{engine: e, stack: make([]int64, 0, 16), vars: newVariables()}
}

func (s *Session) Run(ctx context.Context, source string) error {
	return s.RunTokens(ctx, Tokenize(source))
}

func (s *Session) RunTokens(ctx context.Context, tokens []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := &Execution{
		session:      s,
		ctx:          ctx,
		out:          s.engine.config.Stdout,
		logger:       s.engine.logger,
		quota:        s.engine.config.StepQuota,
		recursionCap: s.engine.config.RecursionLimit,
		stackCap:     s.engine.config.StackLimit,
		frames:       make([]regionFrame, 0, 8),
	}
	return exec.run(regionScript, tokens)
}

// Stack returns a copy of the evaluation stack, bottom first.
func (s *Session) Stack() []int64 {
	return slices.Clone(s.stack)
}

func (s *Session) Variables() *Variables {
	return s.vars
}

// Reset empties the stack and forgets every declaration.
func (s *Session) Reset() {
	s.stack = s.stack[:0]
	s.vars.Reset()
}
