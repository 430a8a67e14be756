package models

import "fmt"

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

type Preferences struct {
	UserName        string          `json:"userName"`
	Email           string          `json:"email" binding:"omitempty,email" validate:"omitempty,email"`
	Phone           string          `json:"phone"`
	TemperatureUnit TemperatureUnit `json:"temperatureUnit" binding:"required,oneof=celsius fahrenheit" validate:"required,oneof=celsius fahrenheit"` //nolint:lll
}

func DefaultPreferences() Preferences {
	return Preferences{TemperatureUnit: Celsius}
}

// Convert turns a Celsius reading into the unit. Unknown units are treated as Celsius.
func (u TemperatureUnit) Convert(celsius float64) float64 {
	if u == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

func (u TemperatureUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (u TemperatureUnit) Format(celsius float64) string {
	return fmt.Sprintf("%.1f%s", u.Convert(celsius), u.Symbol())
}
