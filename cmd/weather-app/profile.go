package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navein97/weather-app/internal/models"
)

func profileCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change user preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := s.container.Preferences.Get(cmd.Context())
			if err != nil {
				return userError(err)
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var next models.Preferences
	var unit string

	set := &cobra.Command{
		Use:   "set",
		Short: "Replace saved preferences; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := s.container.Preferences.Get(cmd.Context())
			if err != nil {
				// A corrupt record is replaced by what the flags describe.
				current = models.DefaultPreferences()
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				current.UserName = next.UserName
			}
			if flags.Changed("email") {
				current.Email = next.Email
			}
			if flags.Changed("phone") {
				current.Phone = next.Phone
			}
			if flags.Changed("unit") {
				current.TemperatureUnit = models.TemperatureUnit(unit)
			}

			if err := s.container.Preferences.Save(cmd.Context(), current); err != nil {
				return fmt.Errorf("preferences not saved: %w", err)
			}
			printProfile(cmd.OutOrStdout(), current)
			return nil
		},
	}

	set.Flags().StringVar(&next.UserName, "name", "", "User name")
	set.Flags().StringVar(&next.Email, "email", "", "Email address")
	set.Flags().StringVar(&next.Phone, "phone", "", "Phone number")
	set.Flags().StringVar(&unit, "unit", "", "Temperature unit: celsius or fahrenheit")

	cmd.AddCommand(show, set)
	return cmd
}
