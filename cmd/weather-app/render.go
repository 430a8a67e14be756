package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/navein97/weather-app/internal/models"
)

const (
	hourLayout = "15:04"
	dayLayout  = "Mon Jan 2"
)

func conditions(cs []models.Condition) string {
	if len(cs) == 0 {
		return "-"
	}
	return cs[0].Description
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printSearch(w io.Writer, found []models.SearchCandidate, unit models.TemperatureUnit) {
	if len(found) == 0 {
		fmt.Fprintln(w, "No cities found")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "CITY\tCOUNTRY\tTEMP\tCONDITIONS")
	for _, c := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Country, unit.Format(c.Temperature), conditions(c.Conditions))
	}
	_ = tw.Flush()
}

func printCurrent(w io.Writer, data models.WeatherSnapshot, unit models.TemperatureUnit) {
	fmt.Fprintf(w, "%s (%.2f, %.2f)\n", data.City, data.Coord.Lat, data.Coord.Lon)
	fmt.Fprintf(w, "  %s, %s (min %s, max %s)\n",
		unit.Format(data.Temperature.Current),
		conditions(data.Conditions),
		unit.Format(data.Temperature.Min),
		unit.Format(data.Temperature.Max),
	)
}

func printDetail(w io.Writer, d models.DetailedWeather, unit models.TemperatureUnit, saved bool) {
	printCurrent(w, d.Current, unit)
	if saved {
		fmt.Fprintln(w, "  ★ saved")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next hours")
	tw := newTable(w)
	for _, p := range d.Hourly {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Time().Format(hourLayout), unit.Format(p.Temperature.Current), conditions(p.Conditions))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Daily outlook")
	tw = newTable(w)
	for _, day := range d.Daily {
		label := day.Date
		if t, err := time.Parse(time.DateOnly, day.Date); err == nil {
			label = t.Format(dayLayout)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s / %s\t%s\n",
			label,
			unit.Format(day.Temperature.Day),
			unit.Format(day.Temperature.Min),
			unit.Format(day.Temperature.Max),
			conditions(day.Conditions),
		)
	}
	_ = tw.Flush()
}

func printFavorites(w io.Writer, cities []string) {
	if len(cities) == 0 {
		fmt.Fprintln(w, "No saved cities")
		return
	}
	fmt.Fprintln(w, strings.Join(cities, "\n"))
}

func printProfile(w io.Writer, p models.Preferences) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s\n", p.UserName)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", p.Phone)
	fmt.Fprintf(tw, "Unit:\t%s\n", p.TemperatureUnit)
	_ = tw.Flush()
}
