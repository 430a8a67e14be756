package weather

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

const (
	minSearchQueryLen = 3
	hourlySteps       = 8
)

type provider interface {
	CurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error)
	CurrentByCoordinates(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
	Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error)
	Find(ctx context.Context, query string) ([]models.SearchCandidate, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service answers weather lookups on top of a single provider.
type Service struct {
	logger   zerolog.Logger
	provider provider
	location *time.Location
}

// NewService builds a Service. location decides where calendar days start
// when the forecast is bucketed per day; nil means the local zone.
func NewService(logger zerolog.Logger, p provider, location *time.Location) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		logger:   logger.With().Str("component", "WeatherService").Logger(),
		provider: p,
		location: location,
	}
}

func (s *Service) GetCurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	data, err := s.provider.CurrentByCity(ctx, city)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Str("city", city).Msg("current weather lookup failed")
		return models.WeatherSnapshot{}, err
	}
	return data, nil
}

func (s *Service) GetCurrentByCoordinates(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	data, err := s.provider.CurrentByCoordinates(ctx, lat, lon)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("current weather lookup failed")
		return models.WeatherSnapshot{}, err
	}
	return data, nil
}

// SearchCities backs incremental search and never fails: short queries,
// provider errors and transport failures all come back as an empty slice.
func (s *Service) SearchCities(ctx context.Context, query string) []models.SearchCandidate {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryLen {
		return []models.SearchCandidate{}
	}

	found, err := s.provider.Find(ctx, query)
	if err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Str("query", query).Msg("city search failed, returning no results")
		return []models.SearchCandidate{}
	}
	if found == nil {
		return []models.SearchCandidate{}
	}
	return found
}

// GetDetailedWeather fetches current conditions and then the forecast. A
// failed current lookup is reported as such and the forecast is not requested.
func (s *Service) GetDetailedWeather(ctx context.Context, city string) (models.DetailedWeather, error) {
	current, err := s.provider.CurrentByCity(ctx, city)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Str("city", city).Msg("detailed weather: current lookup failed")
		return models.DetailedWeather{}, rebrand(err, errs.ErrCityNotFound)
	}

	points, err := s.provider.Forecast(ctx, city)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Str("city", city).Msg("detailed weather: forecast lookup failed")
		return models.DetailedWeather{}, rebrand(err, errs.ErrForecastUnavailable)
	}

	return models.DetailedWeather{
		Current: current,
		Hourly:  slices.Clone(points[:min(hourlySteps, len(points))]),
		Daily:   AggregateDaily(points, s.location),
	}, nil
}

// rebrand swaps the sentinel of a provider status error, keeping the HTTP
// code. Transport and payload failures are returned unchanged.
func rebrand(err, sentinel error) error {
	var statusErr *errs.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	return &errs.StatusError{Op: statusErr.Op, Code: statusErr.Code, Err: sentinel}
}
