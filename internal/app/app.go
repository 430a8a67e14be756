package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/navein97/weather-app/internal/config"
	httpHandlers "github.com/navein97/weather-app/internal/handlers/http"
	"github.com/navein97/weather-app/internal/models"
	"github.com/navein97/weather-app/internal/notifier"
	"github.com/navein97/weather-app/internal/repository/sqlite"
	"github.com/navein97/weather-app/internal/routes"
	"github.com/navein97/weather-app/internal/services/cache"
	"github.com/navein97/weather-app/internal/services/favorites"
	loggerT "github.com/navein97/weather-app/internal/services/logger"
	metricsSvc "github.com/navein97/weather-app/internal/services/metrics"
	"github.com/navein97/weather-app/internal/services/preferences"
	serviceWeather "github.com/navein97/weather-app/internal/services/weather"
	"github.com/navein97/weather-app/internal/services/weather/decorators"
	fLogger "github.com/navein97/weather-app/pkg/logger"
)

const (
	serviceName     = "weather_app"
	shutdownTimeout = 5 * time.Second
)

// ServiceContainer holds initialized dependencies for the CLI and the server.
type ServiceContainer struct {
	Weather     *serviceWeather.Service
	Favorites   *favorites.Store
	Preferences *preferences.Store
	Refresher   *notifier.Refresher
	Metrics     *metricsSvc.Metrics

	Router *gin.Engine
	Srv    *http.Server
	DB     *sql.DB

	redis      *redis.Client
	fileLogger *zap.Logger
}

// App ties together config and logger for startup and shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
}

func New(cfg config.Config, logger zerolog.Logger) *App {
	return &App{cfg: cfg, l: logger}
}

// Init builds every dependency without starting anything. Saved favorites
// are loaded before it returns.
func (a *App) Init(ctx context.Context) (*ServiceContainer, error) {
	a.l.Debug().
		Str("storage", a.cfg.StoragePath).
		Str("api_url", a.cfg.OpenWeatherMapURL).
		Bool("redis", a.cfg.Cache.RedisAddr != "").
		Msg("initializing weather app")

	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, outbound requests will not be logged")
		fileLogger = zap.NewNop()
	}

	db, err := sqlite.Open(a.cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	c := &ServiceContainer{
		Metrics:    metricsSvc.NewMetrics(serviceName),
		DB:         db,
		fileLogger: fileLogger,
	}

	// HTTP client logging
	httpLogClient := &http.Client{
		Timeout:   a.cfg.HTTPTimeout,
		Transport: loggerT.NewRoundTripper(fileLogger, nil),
	}

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	openWeather := serviceWeather.NewBreakerClient("OpenWeatherMap", breakerCfg,
		serviceWeather.NewClientOpenWeatherMap(a.cfg.OpenWeatherMapAPIKey, a.cfg.OpenWeatherMapURL, httpLogClient, a.l),
	)

	collector := metricsSvc.NewPromCollector(c.Metrics.Registry())
	var (
		forecasts cacheBackend[[]models.ForecastPoint]
		searches  cacheBackend[[]models.SearchCandidate]
	)
	if a.cfg.Cache.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{Addr: a.cfg.Cache.RedisAddr, DB: a.cfg.Cache.RedisDB})
		forecasts = cache.NewRedisClient[[]models.ForecastPoint](c.redis, a.l, a.cfg.Cache.LiveTime)
		searches = cache.NewRedisClient[[]models.SearchCandidate](c.redis, a.l, a.cfg.Cache.LiveTime)
	} else {
		forecasts = cache.NewMemoryClient[[]models.ForecastPoint](a.cfg.Cache.LiveTime, 2*a.cfg.Cache.LiveTime)
		searches = cache.NewMemoryClient[[]models.SearchCandidate](a.cfg.Cache.LiveTime, 2*a.cfg.Cache.LiveTime)
	}

	cached := decorators.NewCachedProvider(
		openWeather,
		cache.NewMetricsDecorator[[]models.ForecastPoint](forecasts, collector),
		cache.NewMetricsDecorator[[]models.SearchCandidate](searches, collector),
		a.l,
	)

	c.Weather = serviceWeather.NewService(a.l, cached, loc)

	kv := sqlite.NewKVStore(db, a.l)
	c.Preferences = preferences.NewStore(kv, a.l)
	c.Favorites = favorites.NewStore(kv, c.Weather, a.l)
	c.Favorites.Load(ctx)
	if sig := c.Favorites.Err(); sig != nil {
		a.l.Warn().Err(sig.Unwrap()).Msg("saved favorites could not be loaded")
	}

	c.Refresher = notifier.New(c.Favorites, c.Weather, a.l, a.cfg.RefreshSchedule, c.Metrics)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	detailRoute, _ := routes.Lookup(routes.WeatherDetail)
	router.Use(c.Metrics.HTTPMiddleware(detailRoute.Path))
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))
	httpHandlers.NewHandler(c.Weather, c.Favorites, c.Preferences, a.l).Register(router)

	c.Router = router
	c.Srv = &http.Server{
		Addr:        a.cfg.Server.Addr,
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return c, nil
}

type cacheBackend[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// Serve runs the HTTP server and the favorites refresher until ctx is done.
func (a *App) Serve(ctx context.Context, c *ServiceContainer) error {
	if err := c.Refresher.Start(ctx); err != nil {
		return err
	}
	defer c.Refresher.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", c.Srv.Addr).Msg("HTTP server running")
		if err := c.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server failed")
			return err
		}
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather app")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := c.Srv.Shutdown(shutdownCtx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
		return err
	}
	a.l.Info().Msg("HTTP server stopped")
	return nil
}

// Close releases storage, cache connections and flushes the file logger.
func (a *App) Close(c *ServiceContainer) error {
	var errs []error

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := c.DB.Close(); err != nil {
		a.l.Error().Err(err).Msg("DB close error")
		errs = append(errs, err)
	}

	if err := c.fileLogger.Sync(); err != nil {
		a.l.Debug().Err(err).Msg("failed to sync file logger")
	}

	return errors.Join(errs...)
}
