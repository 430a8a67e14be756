// Package routes is the table of navigable views and their URL patterns.
package routes

import (
	"net/url"
	"strings"
)

type Name string

const (
	Home          Name = "home"
	Profile       Name = "profile"
	WeatherDetail Name = "weatherDetail"
)

// CityParam is the path parameter carrying the city name of WeatherDetail.
const CityParam = "cityName"

type Route struct {
	Name Name
	Path string
}

var table = []Route{
	{Name: Home, Path: "/"},
	{Name: Profile, Path: "/profile"},
	{Name: WeatherDetail, Path: "/weather/:" + CityParam},
}

// All returns the routes in declaration order.
func All() []Route {
	return append([]Route(nil), table...)
}

func Lookup(name Name) (Route, bool) {
	for _, r := range table {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// WeatherDetailPath builds the concrete detail path for city.
func WeatherDetailPath(city string) string {
	r, _ := Lookup(WeatherDetail)
	return strings.Replace(r.Path, ":"+CityParam, url.PathEscape(city), 1)
}
