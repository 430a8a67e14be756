package models

import "time"

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Temperature holds provider readings in degrees Celsius.
type Temperature struct {
	Current float64 `json:"temp"`
	Min     float64 `json:"tempMin"`
	Max     float64 `json:"tempMax"`
}

// WeatherSnapshot is a single point-in-time reading for a place.
type WeatherSnapshot struct {
	City        string      `json:"city"`
	Temperature Temperature `json:"temperature"`
	Conditions  []Condition `json:"conditions"`
	Coord       Coordinates `json:"coord"`
}

// ForecastPoint is one step of the provider's forecast feed.
type ForecastPoint struct {
	DT          int64       `json:"dt"`
	Temperature Temperature `json:"temperature"`
	Conditions  []Condition `json:"conditions"`
}

func (p ForecastPoint) Time() time.Time {
	return time.Unix(p.DT, 0)
}

type DayTemperature struct {
	Day float64 `json:"day"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyAggregate summarizes the forecast points of one calendar day.
// Day and Conditions come from the first point of the date, Min and Max
// span every point of the date, so Min <= Day <= Max is not guaranteed.
type DailyAggregate struct {
	Date        string         `json:"date"`
	DT          int64          `json:"dt"`
	Temperature DayTemperature `json:"temperature"`
	Conditions  []Condition    `json:"conditions"`
}

type SearchCandidate struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Temperature float64     `json:"temperature"`
	Conditions  []Condition `json:"conditions"`
}

type DetailedWeather struct {
	Current WeatherSnapshot  `json:"current"`
	Hourly  []ForecastPoint  `json:"hourly"`
	Daily   []DailyAggregate `json:"daily"`
}
