package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

const (
	opCurrentByCity   = "current_by_city"
	opCurrentByCoords = "current_by_coordinates"
	opForecast        = "forecast"
	opFind            = "find"
)

// ClientOpenWeatherMap talks to the OpenWeatherMap 2.5 API.
type ClientOpenWeatherMap struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenWeatherMap constructs a new OpenWeatherMap client. apiURL is the
// API base, e.g. https://api.openweathermap.org/data/2.5.
func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{
		APIKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		client: httpClient,
		logger: logger.With().Str("component", "OpenWeatherMap").Logger(),
	}
}

func (s *ClientOpenWeatherMap) CurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("q", city)

	var raw currentResponse
	if err := s.get(ctx, opCurrentByCity, "weather", params, &raw); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return raw.snapshot()
}

func (s *ClientOpenWeatherMap) CurrentByCoordinates(
	ctx context.Context,
	lat, lon float64,
) (models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var raw currentResponse
	if err := s.get(ctx, opCurrentByCoords, "weather", params, &raw); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return raw.snapshot()
}

// Forecast returns the provider's 3-hour step forecast, oldest first.
func (s *ClientOpenWeatherMap) Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	params := url.Values{}
	params.Set("q", city)

	var raw forecastResponse
	if err := s.get(ctx, opForecast, "forecast", params, &raw); err != nil {
		return nil, err
	}
	return raw.points()
}

// Find runs a "like" search. A soft no-results code in the body yields an empty slice.
func (s *ClientOpenWeatherMap) Find(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "like")

	var raw findResponse
	if err := s.get(ctx, opFind, "find", params, &raw); err != nil {
		return nil, err
	}

	if raw.Cod.noResults() {
		s.logger.Debug().
			Ctx(ctx).
			Str("query", query).
			Str("cod", string(raw.Cod)).
			Msg("find returned no results")
		return []models.SearchCandidate{}, nil
	}
	return raw.candidates(), nil
}

func (s *ClientOpenWeatherMap) get(
	ctx context.Context,
	op, endpoint string,
	params url.Values,
	out any,
) error {
	start := time.Now()

	params.Set("units", "metric")
	params.Set("appid", s.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", s.apiURL, endpoint, params.Encode())

	s.logger.Debug().
		Ctx(ctx).
		Str("op", op).
		Str("q", params.Get("q")).
		Msg("starting OpenWeatherMap request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("op", op).
			Msg("failed to create HTTP request")
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("op", op).
			Msg("error sending HTTP request to OpenWeatherMap")
		return fmt.Errorf("%s: %w: %w", op, errs.ErrNetwork, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Ctx(ctx).
				Err(cerr).
				Str("op", op).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Error().
			Ctx(ctx).
			Str("op", op).
			Str("status", resp.Status).
			Msg("OpenWeatherMap API returned non-success status")
		return &errs.StatusError{Op: op, Code: resp.StatusCode, Err: statusSentinel(op)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("op", op).
			Msg("failed to decode OpenWeatherMap response")
		return fmt.Errorf("%s: %w: %w", op, errs.ErrMalformedPayload, err)
	}

	s.logger.Info().
		Ctx(ctx).
		Str("op", op).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched weather data")
	return nil
}

func statusSentinel(op string) error {
	if op == opForecast {
		return errs.ErrForecastUnavailable
	}
	return errs.ErrNotFound
}
