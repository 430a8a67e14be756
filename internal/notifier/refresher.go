package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/models"
	"github.com/navein97/weather-app/internal/services/metrics"
)

const timeoutDuration = 30 * time.Second

type favoritesLister interface {
	List() []string
}

type detailGetter interface {
	GetDetailedWeather(ctx context.Context, city string) (models.DetailedWeather, error)
}

// Result is the outcome of refreshing one saved city.
type Result struct {
	City   string
	Detail models.DetailedWeather
	Err    error
}

// Refresher periodically re-fetches detailed weather for every saved city so
// the forecast cache stays warm.
type Refresher struct {
	favorites favoritesLister
	weather   detailGetter
	logger    zerolog.Logger
	cron      *cron.Cron
	cancel    context.CancelFunc
	m         *metrics.Metrics
	schedule  string
}

// New constructs a Refresher. schedule is a cron expression with a seconds field.
func New(
	favorites favoritesLister,
	weather detailGetter,
	logger zerolog.Logger,
	schedule string,
	m *metrics.Metrics,
) *Refresher {
	logger = logger.With().Str("component", "Refresher").Logger()
	return &Refresher{
		favorites: favorites,
		weather:   weather,
		logger:    logger,
		cron:      cron.New(cron.WithSeconds()),
		schedule:  schedule,
		m:         m,
	}
}

// Start schedules the refresh job. It fails when the schedule does not parse.
func (r *Refresher) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	if _, err := r.cron.AddFunc(r.schedule, func() { r.RunOnce(ctx) }); err != nil {
		cancel()
		r.logger.Error().Err(err).Str("schedule", r.schedule).Msg("failed to schedule refresh job")
		return err
	}

	r.cancel = cancel
	r.cron.Start()
	r.logger.Info().Str("schedule", r.schedule).Msg("favorites refresher started")
	return nil
}

// Stop cancels running refreshes and waits for them to return.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info().Msg("favorites refresher stopped")
}

// RunOnce refreshes every saved city concurrently. Results keep the order of
// the favorites list.
func (r *Refresher) RunOnce(ctx context.Context) []Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	cities := r.favorites.List()
	results := make([]Result, len(cities))

	var wg sync.WaitGroup
	wg.Add(len(cities))

	for i, city := range cities {
		i, city := i, city
		go func() {
			defer wg.Done()
			results[i] = r.refreshOne(ctx, city)
		}()
	}

	wg.Wait()

	dur := time.Since(start)
	r.m.RefreshDuration.Observe(dur.Seconds())
	r.logger.Info().Int("count", len(cities)).Dur("duration", dur).Msg("refresh completed")
	return results
}

func (r *Refresher) refreshOne(ctx context.Context, city string) Result {
	detail, err := r.weather.GetDetailedWeather(ctx, city)
	if err != nil {
		r.logger.Error().Ctx(ctx).Err(err).Str("city", city).Msg("refresh failed")
		r.m.RefreshRuns.WithLabelValues("error").Inc()
		return Result{City: city, Err: err}
	}

	event := r.logger.Info().Ctx(ctx).
		Str("city", city).
		Float64("temp", detail.Current.Temperature.Current)
	if len(detail.Current.Conditions) > 0 {
		event = event.Str("conditions", detail.Current.Conditions[0].Description)
	}
	event.Msg("refreshed")

	r.m.RefreshRuns.WithLabelValues("success").Inc()
	return Result{City: city, Detail: detail}
}
