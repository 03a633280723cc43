package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitchkit/fitch/internal/parser"
	"github.com/fitchkit/fitch/internal/render"
	"github.com/fitchkit/fitch/internal/truthtab"
)

func tableCmd() *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "table <formula>",
		Short: "Print the truth table of a formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parser.Parse(args[0])
			if err != nil {
				return err
			}
			t, err := truthtab.Build(p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if markdown {
				fmt.Fprint(out, render.TableMarkdown(t))
			} else {
				fmt.Fprint(out, render.TableText(t))
			}
			fmt.Fprintf(out, "tautology: %v\n", t.Valid())
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "emit a Markdown table")
	return cmd
}
