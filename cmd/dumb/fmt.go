package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgomes/dumb/dumb"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var write, check bool
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format .dumb sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmtFiles(cmd, args, write, check)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to source files instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "fail if any source file needs formatting")
	return cmd
}

func fmtFiles(cmd *cobra.Command, targets []string, write, check bool) error {
	if len(targets) == 0 {
		return errors.New("dumb fmt: path required")
	}

	files, err := collectDumbFiles(targets)
	if err != nil {
		return err
	}

	changedCount := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted := dumb.Format(original)
		changed := formatted != original
		if changed {
			changedCount++
		}
		if (write || check) && dumb.TrailingTokenDropped(original) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: formatting adds a final newline, so the trailing token now runs\n", path)
		}

		switch {
		case write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case check && changed:
			fmt.Fprintln(cmd.OutOrStdout(), path)
		case !write && !check:
			fmt.Fprint(cmd.OutOrStdout(), formatted)
		}
	}

	if check && changedCount > 0 {
		return fmt.Errorf("dumb fmt: %d file(s) need formatting", changedCount)
	}
	return nil
}

func collectDumbFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		if filepath.Ext(path) != sourceExtension {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
