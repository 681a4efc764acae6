package main

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/audiotag"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE...",
		Short: "Print tags and audio info",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := audiotag.OpenMany(cmd.Context(), args, a.openOptions()...)
			if err != nil {
				return err
			}
			defer func() {
				for _, f := range files {
					f.Close()
				}
			}()

			return render(cmd.OutOrStdout(), a.cfg.Output, files...)
		},
	}
}
