package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/dumb/dumb"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

const sourceExtension = ".dumb"

var cliErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := runCLI(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cliErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args[1:])
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "dumb",
		Short:         "Interpreter for the dumb stack language",
		Version:       version + " (commit=" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("dumb version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML file with interpreter limits")
	flags.IntVar(&opts.stepQuota, "step-quota", 0, "maximum number of dispatched tokens (negative disables)")
	flags.IntVar(&opts.recursionLimit, "recursion-limit", 0, "maximum region nesting depth")
	flags.IntVar(&opts.stackLimit, "stack-limit", 0, "maximum number of stack values (negative disables)")
	flags.BoolVar(&opts.trace, "trace", false, "log every dispatched token to stderr")

	root.AddCommand(
		newRunCmd(opts),
		newCheckCmd(),
		newFmtCmd(),
		newTokensCmd(),
		newREPLCmd(opts),
	)
	return root
}

func newRunCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.dumb>",
		Short: "Execute a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readScript(args[0])
			if err != nil {
				return err
			}
			cfg, err := opts.engineConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Stdout = cmd.OutOrStdout()
			engine, err := dumb.NewEngine(cfg)
			if err != nil {
				return err
			}
			if err := engine.Execute(cmd.Context(), input); err != nil {
				if dumb.IsInterrupted(err) {
					return fmt.Errorf("execution interrupted: %w", err)
				}
				return fmt.Errorf("execution failed: %w", err)
			}
			return nil
		},
	}
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <script.dumb>",
		Short: "Print the tokens of a script, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readScript(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range dumb.Tokenize(input) {
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}
}

func readScript(path string) (string, error) {
	if filepath.Ext(path) != sourceExtension {
		return "", errors.New("invalid file format, please insert an '.dumb' file")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}
