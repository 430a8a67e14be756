package main

import (
	"github.com/spf13/cobra"
)

func serveCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP views and the favorites refresher until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.app.Serve(cmd.Context(), s.container)
		},
	}
}
