package weather

import (
	"bytes"
	"fmt"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
)

type conditionPayload struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type mainPayload struct {
	Temp    float64 `json:"temp"`
	TempMax float64 `json:"temp_max"`
	TempMin float64 `json:"temp_min"`
}

type currentResponse struct {
	Name    string             `json:"name"`
	Main    *mainPayload       `json:"main"`
	Weather []conditionPayload `json:"weather"`
	Coord   *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

type forecastItem struct {
	Dt      int64              `json:"dt"`
	Main    *mainPayload       `json:"main"`
	Weather []conditionPayload `json:"weather"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type findItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main    *mainPayload       `json:"main"`
	Weather []conditionPayload `json:"weather"`
}

type findResponse struct {
	Cod   providerCode `json:"cod"`
	Count int          `json:"count"`
	List  []findItem   `json:"list"`
}

// providerCode accepts the body status code both as a JSON string and as a number.
type providerCode string

func (c *providerCode) UnmarshalJSON(data []byte) error {
	*c = providerCode(bytes.Trim(data, `"`))
	return nil
}

// noResults reports the soft "nothing found" codes the find endpoint embeds in its body.
func (c providerCode) noResults() bool {
	return c == "400" || c == "404"
}

func toConditions(in []conditionPayload) []models.Condition {
	out := make([]models.Condition, 0, len(in))
	for _, w := range in {
		out = append(out, models.Condition{Main: w.Main, Description: w.Description})
	}
	return out
}

func (m mainPayload) temperature() models.Temperature {
	return models.Temperature{Current: m.Temp, Min: m.TempMin, Max: m.TempMax}
}

func (r currentResponse) snapshot() (models.WeatherSnapshot, error) {
	if r.Main == nil || r.Coord == nil || len(r.Weather) == 0 {
		return models.WeatherSnapshot{},
			fmt.Errorf("%w: current weather needs main, coord and at least one condition", errs.ErrMalformedPayload)
	}

	return models.WeatherSnapshot{
		City:        r.Name,
		Temperature: r.Main.temperature(),
		Conditions:  toConditions(r.Weather),
		Coord:       models.Coordinates{Lat: r.Coord.Lat, Lon: r.Coord.Lon},
	}, nil
}

func (r forecastResponse) points() ([]models.ForecastPoint, error) {
	if r.List == nil {
		return nil, fmt.Errorf("%w: forecast without list", errs.ErrMalformedPayload)
	}

	points := make([]models.ForecastPoint, 0, len(r.List))
	for i, item := range r.List {
		if item.Main == nil || len(item.Weather) == 0 {
			return nil, fmt.Errorf("%w: forecast entry %d needs main and at least one condition",
				errs.ErrMalformedPayload, i)
		}
		points = append(points, models.ForecastPoint{
			DT:          item.Dt,
			Temperature: item.Main.temperature(),
			Conditions:  toConditions(item.Weather),
		})
	}
	return points, nil
}

// candidates drops entries that miss the fields a search result needs.
func (r findResponse) candidates() []models.SearchCandidate {
	out := make([]models.SearchCandidate, 0, len(r.List))
	for _, item := range r.List {
		if item.Main == nil || item.Name == "" {
			continue
		}
		out = append(out, models.SearchCandidate{
			ID:          item.ID,
			Name:        item.Name,
			Country:     item.Sys.Country,
			Temperature: item.Main.Temp,
			Conditions:  toConditions(item.Weather),
		})
	}
	return out
}
