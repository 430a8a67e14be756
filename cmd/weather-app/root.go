package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/navein97/weather-app/internal/app"
	"github.com/navein97/weather-app/internal/config"
	"github.com/navein97/weather-app/internal/models"
	"github.com/navein97/weather-app/pkg/logger"
)

const serviceName = "weather-app"

// session is the per-invocation state shared by all subcommands.
type session struct {
	logLevel string

	log       zerolog.Logger
	app       *app.App
	container *app.ServiceContainer
}

// run executes the CLI with args and always releases what the command opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	s := &session{}

	cmd := RootCommand(s)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, s.close())
}

// RootCommand creates and returns the root command.
func RootCommand(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "weather-app",
		Short:        "Look up current weather and forecasts, keep a list of favorite cities",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return s.open(cmd)
	}

	rootCmd.AddCommand(
		searchCommand(s),
		currentCommand(s),
		detailCommand(s),
		favoritesCommand(s),
		profileCommand(s),
		refreshCommand(s),
		serveCommand(s),
	)

	return rootCmd
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if s.logLevel != "" {
		level = s.logLevel
	}

	s.log, err = logger.NewLogger(cfg.LogsPath, serviceName, level)
	if err != nil {
		return err
	}

	s.app = app.New(*cfg, s.log)
	s.container, err = s.app.Init(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}

func (s *session) close() error {
	if s.container == nil {
		return nil
	}
	err := s.app.Close(s.container)
	s.container = nil
	return err
}

// unit is the preferred display unit, Celsius when preferences are unreadable.
func (s *session) unit(cmd *cobra.Command) models.TemperatureUnit {
	p, err := s.container.Preferences.Get(cmd.Context())
	if err != nil {
		s.log.Warn().Err(err).Msg("preferences unavailable, showing Celsius")
		return models.Celsius
	}
	return p.TemperatureUnit
}
