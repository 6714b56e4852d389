package main

import (
	"fmt"

	"github.com/mgomes/dumb/dumb"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <script.dumb>",
		Short: "Report regions and tokens that are ignored or always fail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readScript(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warnings := dumb.Analyze(input)
			if len(warnings) == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			for _, warning := range warnings {
				fmt.Fprintf(out, "%s:%s\n", args[0], warning)
			}
			return fmt.Errorf("analysis found %d issue(s)", len(warnings))
		},
	}
}
