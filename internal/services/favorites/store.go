package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

// StorageKey is the key the favorites list is persisted under.
const StorageKey = "savedLocations"

type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type cityChecker interface {
	GetCurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error)
}

// Store keeps the ordered list of saved city names. A city is only added
// after the provider confirmed it exists.
type Store struct {
	mu      sync.Mutex
	kv      kvStore
	weather cityChecker
	logger  zerolog.Logger

	cities  []string
	lastErr *errs.Signal
}

// Normalize returns the form a city name is stored and compared in.
func Normalize(city string) string {
	return strings.TrimSpace(city)
}

func NewStore(kv kvStore, weather cityChecker, logger zerolog.Logger) *Store {
	return &Store{
		kv:      kv,
		weather: weather,
		logger:  logger.With().Str("component", "FavoritesStore").Logger(),
		cities:  []string{},
	}
}

// Load replaces the in-memory list with the persisted one. Failures are not
// returned; they are kept for Err and the list is left as it was.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to read favorites")
		s.lastErr = errs.Classify(fmt.Errorf("read favorites: %w", err))
		return
	}
	if !ok {
		return
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("stored favorites are corrupt")
		s.lastErr = errs.Classify(fmt.Errorf("decode favorites: %w", err))
		return
	}
	if cities == nil {
		cities = []string{}
	}
	s.cities = cities
}

// Add checks that city resolves to current weather and appends it when it
// is not saved yet.
func (s *Store) Add(ctx context.Context, city string) error {
	city = Normalize(city)
	if city == "" {
		return s.fail(errs.New(errs.KindNotFound, errs.ErrCityNotFound))
	}

	if _, err := s.weather.GetCurrentByCity(ctx, city); err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Str("city", city).Msg("not adding favorite")
		return s.fail(errs.Classify(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.cities, city) {
		s.lastErr = nil
		return nil
	}

	previous := s.cities
	s.cities = append(slices.Clone(previous), city)
	if err := s.persist(ctx); err != nil {
		s.cities = previous
		s.lastErr = errs.Classify(err)
		return s.lastErr
	}

	s.lastErr = nil
	s.logger.Info().Ctx(ctx).Str("city", city).Msg("favorite added")
	return nil
}

// Remove drops city from the list. Removing a city that is not saved
// succeeds without touching storage.
func (s *Store) Remove(ctx context.Context, city string) error {
	city = Normalize(city)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.cities, city) {
		s.lastErr = nil
		return nil
	}

	previous := s.cities
	s.cities = slices.DeleteFunc(slices.Clone(previous), func(c string) bool { return c == city })
	if err := s.persist(ctx); err != nil {
		s.cities = previous
		s.lastErr = errs.Classify(err)
		return s.lastErr
	}

	s.lastErr = nil
	s.logger.Info().Ctx(ctx).Str("city", city).Msg("favorite removed")
	return nil
}

func (s *Store) IsSaved(city string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Contains(s.cities, Normalize(city))
}

// List returns a copy of the saved cities in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.cities)
}

// Err returns the failure of the last operation, or nil if it succeeded.
func (s *Store) Err() *errs.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

func (s *Store) fail(sig *errs.Signal) error {
	s.mu.Lock()
	s.lastErr = sig
	s.mu.Unlock()
	return sig
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.cities)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to persist favorites")
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
