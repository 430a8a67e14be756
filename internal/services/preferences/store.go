package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

// StorageKey is the key the preference record is persisted under.
const StorageKey = "userPreferences"

type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store holds the single user's display preferences.
type Store struct {
	mu       sync.Mutex
	kv       kvStore
	validate *validator.Validate
	logger   zerolog.Logger

	current models.Preferences
	loaded  bool
}

func NewStore(kv kvStore, logger zerolog.Logger) *Store {
	return &Store{
		kv:       kv,
		validate: validator.New(),
		logger:   logger.With().Str("component", "PreferenceStore").Logger(),
		current:  models.DefaultPreferences(),
	}
}

// Load reads the persisted record. A missing record yields the defaults; a
// record that cannot be decoded is reported and the in-memory state is kept.
func (s *Store) Load(ctx context.Context) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Get returns the preferences, loading them on first use.
func (s *Store) Get(ctx context.Context) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.current, nil
	}
	return s.load(ctx)
}

// Save validates p and replaces the whole stored record with it.
func (s *Store) Save(ctx context.Context, p models.Preferences) error {
	if err := s.validate.Struct(p); err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Msg("rejecting invalid preferences")
		return errs.New(errs.KindUnexpected, fmt.Errorf("%w: %w", errs.ErrInvalidPreferences, err))
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return errs.Classify(fmt.Errorf("encode preferences: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to persist preferences")
		return errs.Classify(fmt.Errorf("persist preferences: %w", err))
	}

	s.current = p
	s.loaded = true
	s.logger.Info().Ctx(ctx).Str("unit", string(p.TemperatureUnit)).Msg("preferences saved")
	return nil
}

func (s *Store) load(ctx context.Context) (models.Preferences, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to read preferences")
		return s.current, errs.Classify(fmt.Errorf("read preferences: %w", err))
	}
	if !ok {
		s.current = models.DefaultPreferences()
		s.loaded = true
		return s.current, nil
	}

	var p models.Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("stored preferences are corrupt")
		return s.current, errs.New(errs.KindUnexpected, fmt.Errorf("%w: %w", errs.ErrCorruptPreferences, err))
	}

	s.current = p
	s.loaded = true
	return s.current, nil
}
