package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navein97/weather-app/internal/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.OpenWeatherMapAPIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeatherMapURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "0 */30 * * * *", cfg.RefreshSchedule)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, uint32(5), cfg.Breaker.RepeatNumber)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.Cache.LiveTime)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("OPENWEATHER_URL", "http://localhost:9999")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BREAKER_REPEAT_NUM", "2")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.OpenWeatherMapURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, uint32(2), cfg.Breaker.RepeatNumber)
}

func TestNewConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	require.NoError(t, os.Unsetenv("OPENWEATHER_API_KEY"))

	_, err := config.NewConfig()
	assert.Error(t, err)
}

func TestConfig_Location(t *testing.T) {
	loc, err := config.Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = config.Config{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = config.Config{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.Error(t, err)
}
