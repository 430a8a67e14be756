package decorators

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/models"
	"github.com/navein97/weather-app/internal/services/cache"
)

type weatherProvider interface {
	CurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error)
	CurrentByCoordinates(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
	Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error)
	Find(ctx context.Context, query string) ([]models.SearchCandidate, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedProvider serves forecasts and search results from a cache. Current
// conditions always go to the wrapped provider.
type CachedProvider struct {
	inner     weatherProvider
	forecasts cacheClient[[]models.ForecastPoint]
	searches  cacheClient[[]models.SearchCandidate]
	logger    zerolog.Logger
}

func NewCachedProvider(
	inner weatherProvider,
	forecasts cacheClient[[]models.ForecastPoint],
	searches cacheClient[[]models.SearchCandidate],
	logger zerolog.Logger,
) *CachedProvider {
	return &CachedProvider{
		inner:     inner,
		forecasts: forecasts,
		searches:  searches,
		logger:    logger.With().Str("component", "CachedProvider").Logger(),
	}
}

func (p *CachedProvider) CurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	return p.inner.CurrentByCity(ctx, city)
}

func (p *CachedProvider) CurrentByCoordinates(
	ctx context.Context,
	lat, lon float64,
) (models.WeatherSnapshot, error) {
	return p.inner.CurrentByCoordinates(ctx, lat, lon)
}

func (p *CachedProvider) Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	return cached(ctx, p.logger, p.forecasts, "forecast:"+normalize(city), func() ([]models.ForecastPoint, error) {
		return p.inner.Forecast(ctx, city)
	})
}

func (p *CachedProvider) Find(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	return cached(ctx, p.logger, p.searches, "search:"+normalize(query), func() ([]models.SearchCandidate, error) {
		return p.inner.Find(ctx, query)
	})
}

// cached returns the stored value for key or loads and stores it. Cache
// failures are logged and never surface to the caller.
func cached[T any](
	ctx context.Context,
	logger zerolog.Logger,
	store cacheClient[T],
	key string,
	load func() (T, error),
) (T, error) {
	value, err := store.Get(ctx, key)
	if err == nil {
		logger.Debug().Ctx(ctx).Str("key", key).Msg("cache hit")
		return value, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Ctx(ctx).Err(err).Str("key", key).Msg("cache read failed")
	}

	value, err = load()
	if err != nil {
		return value, err
	}

	if err := store.Set(ctx, key, value); err != nil {
		logger.Warn().Ctx(ctx).Err(err).Str("key", key).Msg("cache write failed")
	}
	return value, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
