package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navein97/weather-app/internal/models"
)

func TestDetailedWeather_InUnit(t *testing.T) {
	d := models.DetailedWeather{
		Current: models.WeatherSnapshot{City: "Lviv", Temperature: models.Temperature{Current: 0, Min: -10, Max: 10}},
		Hourly:  []models.ForecastPoint{{DT: 1, Temperature: models.Temperature{Current: 100}}},
		Daily:   []models.DailyAggregate{{Date: "2024-05-01", Temperature: models.DayTemperature{Day: 20, Min: 10, Max: 30}}},
	}

	f := d.InUnit(models.Fahrenheit)

	assert.InDelta(t, 32, f.Current.Temperature.Current, 0.0001)
	assert.InDelta(t, 14, f.Current.Temperature.Min, 0.0001)
	assert.InDelta(t, 50, f.Current.Temperature.Max, 0.0001)
	require.Len(t, f.Hourly, 1)
	assert.InDelta(t, 212, f.Hourly[0].Temperature.Current, 0.0001)
	require.Len(t, f.Daily, 1)
	assert.Equal(t, models.DayTemperature{Day: 68, Min: 50, Max: 86}, f.Daily[0].Temperature)

	// The original is not modified.
	assert.InDelta(t, 100, d.Hourly[0].Temperature.Current, 0.0001)
	assert.InDelta(t, 20, d.Daily[0].Temperature.Day, 0.0001)
}

func TestSearchCandidate_InUnit(t *testing.T) {
	c := models.SearchCandidate{Name: "Oslo", Temperature: -40}

	assert.InDelta(t, -40, c.InUnit(models.Fahrenheit).Temperature, 0.0001)
	assert.Equal(t, c, c.InUnit(models.Celsius))
}
