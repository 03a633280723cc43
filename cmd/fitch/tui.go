package main

import (
	"github.com/spf13/cobra"

	"github.com/fitchkit/fitch/internal/script"
	"github.com/fitchkit/fitch/internal/tui"
)

func tuiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Full-screen interactive proof builder",
		Long: `Open the full-screen proof builder. With a file argument the script is
executed first and the session continues from its final state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.load(); err != nil {
				return err
			}
			session := script.NewSession()
			if len(args) == 1 {
				if err := seedFromFile(cmd.ErrOrStderr(), session, args[0]); err != nil {
					return err
				}
			}
			return tui.Run(session)
		},
	}
}
