package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

func searchCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find cities matching the query (at least 3 characters)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := s.container.Weather.SearchCities(cmd.Context(), args[0])
			printSearch(cmd.OutOrStdout(), found, s.unit(cmd))
			return nil
		},
	}
}

func currentCommand(s *session) *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "current [city]",
		Short: "Show current conditions for a city or for coordinates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byCoords := cmd.Flags().Changed("lat")
			if byCoords == (len(args) == 1) {
				return errors.New("pass either a city or both --lat and --lon")
			}

			var (
				data models.WeatherSnapshot
				err  error
			)
			if byCoords {
				data, err = s.container.Weather.GetCurrentByCoordinates(cmd.Context(), lat, lon)
			} else {
				data, err = s.container.Weather.GetCurrentByCity(cmd.Context(), args[0])
			}
			if err != nil {
				return userError(err)
			}

			printCurrent(cmd.OutOrStdout(), data, s.unit(cmd))
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.MarkFlagsRequiredTogether("lat", "lon")

	return cmd
}

func detailCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <city>",
		Short: "Show current conditions, the next 24 hours and a daily outlook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := args[0]
			detail, err := s.container.Weather.GetDetailedWeather(cmd.Context(), city)
			if err != nil {
				return userError(err)
			}

			printDetail(cmd.OutOrStdout(), detail, s.unit(cmd), s.container.Favorites.IsSaved(city))
			return nil
		},
	}
}

// userError turns a failure into the message a user should see.
func userError(err error) error {
	sig, ok := errs.AsSignal(err)
	if !ok {
		return nil
	}
	if sig.Severity == errs.SeverityWarning {
		return fmt.Errorf("warning: %s", sig.Message)
	}
	return errors.New(sig.Message)
}
