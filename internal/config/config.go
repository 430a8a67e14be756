package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Addr        string `envconfig:"WEATHER_SERVER_ADDR" default:":8080"`
	ReadTimeout int    `envconfig:"WEATHER_SERVER_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

// Cache selects the cache backend. An empty RedisAddr keeps the cache in process.
type Cache struct {
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	LiveTime  time.Duration `envconfig:"CACHE_LIVE_TIME" default:"10m"`
}

type Config struct {
	OpenWeatherMapAPIKey string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	OpenWeatherMapURL    string `envconfig:"OPENWEATHER_URL" default:"https://api.openweathermap.org/data/2.5"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	Timezone    string        `envconfig:"WEATHER_TIMEZONE"`

	StoragePath     string `envconfig:"STORAGE_PATH" default:"./data/weather-app.db"`
	RefreshSchedule string `envconfig:"REFRESH_SCHEDULE" default:"0 */30 * * * *"`

	Server  Server
	Breaker Breaker
	Cache   Cache

	LogsPath     string `envconfig:"LOGS_PATH"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location is the zone calendar days are counted in. An empty Timezone
// means the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
