package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOpenWeather(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query().Get("q")
		switch r.URL.Path {
		case "/weather":
			if q == "Atlantis" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"cod":"404"}`))
				return
			}
			_, _ = w.Write([]byte(`{"name":"` + q + `","coord":{"lat":48.85,"lon":2.35},
				"main":{"temp":20,"temp_min":18,"temp_max":22},
				"weather":[{"main":"Clear","description":"clear sky"}]}`))
		case "/forecast":
			_, _ = w.Write([]byte(`{"cod":"200","list":[
				{"dt":1714554000,"main":{"temp":20,"temp_min":18,"temp_max":22},"weather":[{"main":"Clear","description":"clear sky"}]},
				{"dt":1714564800,"main":{"temp":24,"temp_min":21,"temp_max":25},"weather":[{"main":"Clear","description":"clear sky"}]}
			]}`))
		case "/find":
			_, _ = w.Write([]byte(`{"cod":"200","list":[{"id":2988507,"name":"Paris",
				"sys":{"country":"FR"},"main":{"temp":20},"weather":[{"main":"Clear","description":"clear sky"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T) {
	t.Helper()

	srv := fakeOpenWeather(t)
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("OPENWEATHER_URL", srv.URL)
	t.Setenv("STORAGE_PATH", filepath.Join(t.TempDir(), "weather.db"))
	t.Setenv("WEATHER_TIMEZONE", "UTC")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOGS_PATH", "")
	t.Setenv("HTTP_LOGS_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestCLI_Search(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "search", "Par")
	require.NoError(t, err)
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "FR")
	assert.Contains(t, out, "20.0°C")

	out, err = execute(t, "search", "Pa")
	require.NoError(t, err)
	assert.Contains(t, out, "No cities found")
}

func TestCLI_Current(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "current", "Paris")
	require.NoError(t, err)
	assert.Contains(t, out, "Paris (48.85, 2.35)")
	assert.Contains(t, out, "clear sky")

	_, err = execute(t, "current", "Atlantis")
	require.EqualError(t, err, "City not found")

	_, err = execute(t, "current")
	assert.Error(t, err)
}

func TestCLI_FavoritesAndProfile(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "favorites", "add", " Paris ")
	require.NoError(t, err)
	assert.Equal(t, "Saved Paris\n", out)

	_, err = execute(t, "favorites", "add", "Atlantis")
	require.Error(t, err)

	out, err = execute(t, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "Paris\n", out)

	_, err = execute(t, "profile", "set", "--name", "A", "--unit", "fahrenheit")
	require.NoError(t, err)

	out, err = execute(t, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "fahrenheit")

	_, err = execute(t, "profile", "set", "--unit", "kelvin")
	require.Error(t, err)

	out, err = execute(t, "detail", "Paris")
	require.NoError(t, err)
	assert.Contains(t, out, "68.0°F")
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "Daily outlook")

	out, err = execute(t, "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "68.0°F")

	out, err = execute(t, "favorites", "remove", " Paris ")
	require.NoError(t, err)
	assert.Equal(t, "Removed Paris\n", out)

	out, err = execute(t, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved cities\n", out)
}

func TestCLI_MissingAPIKey(t *testing.T) {
	setupEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "")

	_, err := execute(t, "favorites", "list")
	assert.Error(t, err)
}
