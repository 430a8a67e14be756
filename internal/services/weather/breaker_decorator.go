package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient guards a provider with a circuit breaker. Client errors
// (4xx) are answers, not outages, and do not count towards tripping.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped provider
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped provider) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: isBreakerSuccess,
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) CurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	return execute(b, func() (models.WeatherSnapshot, error) {
		return b.wrapped.CurrentByCity(ctx, city)
	})
}

func (b *BreakerClient) CurrentByCoordinates(
	ctx context.Context,
	lat, lon float64,
) (models.WeatherSnapshot, error) {
	return execute(b, func() (models.WeatherSnapshot, error) {
		return b.wrapped.CurrentByCoordinates(ctx, lat, lon)
	})
}

func (b *BreakerClient) Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	return execute(b, func() ([]models.ForecastPoint, error) {
		return b.wrapped.Forecast(ctx, city)
	})
}

func (b *BreakerClient) Find(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	return execute(b, func() ([]models.SearchCandidate, error) {
		return b.wrapped.Find(ctx, query)
	})
}

// State exposes the breaker state for diagnostics.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func execute[T any](b *BreakerClient, call func() (T, error)) (T, error) {
	var zero T

	result, err := b.cb.Execute(func() (interface{}, error) {
		v, err := call()
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s unavailable: %w: %w", b.name, errs.ErrNetwork, err)
		}
		return zero, err
	}

	res, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}

func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}

	var statusErr *errs.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusBadRequest && statusErr.Code < http.StatusInternalServerError &&
			statusErr.Code != http.StatusTooManyRequests
	}
	return false
}
