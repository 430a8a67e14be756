package weather_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/navein97/weather-app/internal/models"
)

const testBaseURL = "https://api.test/data/2.5"

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	args := m.Called(ctx, city)
	data, ok := args.Get(0).(models.WeatherSnapshot)
	if !ok {
		return models.WeatherSnapshot{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockProvider) CurrentByCoordinates(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	args := m.Called(ctx, lat, lon)
	data, ok := args.Get(0).(models.WeatherSnapshot)
	if !ok {
		return models.WeatherSnapshot{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockProvider) Forecast(ctx context.Context, city string) ([]models.ForecastPoint, error) {
	args := m.Called(ctx, city)
	data, _ := args.Get(0).([]models.ForecastPoint)
	return data, args.Error(1)
}

func (m *mockProvider) Find(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	args := m.Called(ctx, query)
	data, _ := args.Get(0).([]models.SearchCandidate)
	return data, args.Error(1)
}

func currentBody(city string, temp float64) string {
	return fmt.Sprintf(`{
	  "name": %q,
	  "coord": {"lat": 49.84, "lon": 24.03},
	  "main": {"temp": %v, "temp_min": %v, "temp_max": %v},
	  "weather": [{"main": "Clouds", "description": "broken clouds"}]
	}`, city, temp, temp-2, temp+2)
}

// forecastBody renders n forecast entries three hours apart starting at start.
func forecastBody(start time.Time, n int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dt := start.Add(time.Duration(3*i) * time.Hour).Unix()
		items = append(items, fmt.Sprintf(
			`{"dt": %d, "main": {"temp": %d, "temp_min": %d, "temp_max": %d},
			  "weather": [{"main": "Rain", "description": "light rain"}]}`,
			dt, 10+i, 8+i, 12+i))
	}
	return `{"cod": "200", "list": [` + strings.Join(items, ",") + `]}`
}

func forecastPoint(at time.Time, temp, tempMin, tempMax float64) models.ForecastPoint {
	return models.ForecastPoint{
		DT:          at.Unix(),
		Temperature: models.Temperature{Current: temp, Min: tempMin, Max: tempMax},
		Conditions:  []models.Condition{{Main: "Clear", Description: "clear sky"}},
	}
}
