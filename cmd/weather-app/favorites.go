package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navein97/weather-app/internal/services/favorites"
)

func favoritesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved cities",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved cities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sig := s.container.Favorites.Err(); sig != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", sig.Severity, sig.Message)
			}
			printFavorites(cmd.OutOrStdout(), s.container.Favorites.List())
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <city>",
		Short: "Save a city after checking that it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.container.Favorites.Add(cmd.Context(), args[0]); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", favorites.Normalize(args[0]))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <city>",
		Aliases: []string{"rm"},
		Short:   "Forget a saved city",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.container.Favorites.Remove(cmd.Context(), args[0]); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", favorites.Normalize(args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
