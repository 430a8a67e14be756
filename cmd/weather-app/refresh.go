package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navein97/weather-app/internal/errs"
)

func refreshCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch fresh weather for every saved city once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			unit := s.unit(cmd)
			out := cmd.OutOrStdout()

			for _, r := range s.container.Refresher.RunOnce(cmd.Context()) {
				if r.Err != nil {
					fmt.Fprintf(out, "%-20s %s\n", r.City, errs.Classify(r.Err).Message)
					continue
				}
				fmt.Fprintf(out, "%-20s %s %s\n", r.City,
					unit.Format(r.Detail.Current.Temperature.Current),
					conditions(r.Detail.Current.Conditions))
			}
			return nil
		},
	}
}
