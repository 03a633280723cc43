package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/fitchkit/fitch/internal/logging"
	"github.com/fitchkit/fitch/internal/script"
	"github.com/fitchkit/fitch/internal/watch"
)

func checkCmd(opts *rootOptions) *cobra.Command {
	var watchMode bool
	cmd := &cobra.Command{
		Use:   "check <file|glob>...",
		Short: "Check proof scripts",
		Long: `Run proof scripts and report a verdict per file: complete, incomplete,
or invalid. Patterns support ** for recursive matching. The exit status
is non-zero unless every proof is complete.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolvePatterns(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %s", strings.Join(args, " "))
			}
			out := cmd.OutOrStdout()

			if !watchMode {
				if failed := checkFiles(out, files); failed > 0 {
					return fmt.Errorf("%d of %d proofs not complete", failed, len(files))
				}
				return nil
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := opts.logger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := watch.New(files, cfg.Watch.Debounce, logging.Component(logger, "watch"))
			if err != nil {
				return err
			}
			defer w.Stop()
			if err := w.Start(ctx); err != nil {
				return err
			}

			checkFiles(out, files)
			fmt.Fprintln(out, "watching for changes...")
			for {
				select {
				case <-ctx.Done():
					return nil
				case batch := <-w.Changes():
					checkFiles(out, batch)
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-check files whenever they change")
	return cmd
}

// resolvePatterns expands ** globs and deduplicates the matches. A literal
// path is itself a pattern, so plain file arguments pass through unchanged.
func resolvePatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// checkFiles prints one verdict line per script and reports how many
// proofs failed to come out complete.
func checkFiles(out io.Writer, files []string) int {
	failed := 0
	for _, f := range files {
		res := script.RunFile(f)
		if res.Err != nil {
			fmt.Fprintf(out, "%-10s %v\n", res.Verdict(), res.Err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%-10s %s (%d lines)\n", res.Verdict(), f, res.Lines)
		if !res.Complete {
			failed++
		}
	}
	return failed
}
