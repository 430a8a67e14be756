package models

// The InUnit methods return a copy with every temperature converted from
// Celsius to u. The receiver is left untouched.

func (t Temperature) InUnit(u TemperatureUnit) Temperature {
	return Temperature{Current: u.Convert(t.Current), Min: u.Convert(t.Min), Max: u.Convert(t.Max)}
}

func (t DayTemperature) InUnit(u TemperatureUnit) DayTemperature {
	return DayTemperature{Day: u.Convert(t.Day), Min: u.Convert(t.Min), Max: u.Convert(t.Max)}
}

func (w WeatherSnapshot) InUnit(u TemperatureUnit) WeatherSnapshot {
	w.Temperature = w.Temperature.InUnit(u)
	return w
}

func (c SearchCandidate) InUnit(u TemperatureUnit) SearchCandidate {
	c.Temperature = u.Convert(c.Temperature)
	return c
}

func (d DetailedWeather) InUnit(u TemperatureUnit) DetailedWeather {
	out := DetailedWeather{
		Current: d.Current.InUnit(u),
		Hourly:  make([]ForecastPoint, len(d.Hourly)),
		Daily:   make([]DailyAggregate, len(d.Daily)),
	}
	for i, p := range d.Hourly {
		p.Temperature = p.Temperature.InUnit(u)
		out.Hourly[i] = p
	}
	for i, day := range d.Daily {
		day.Temperature = day.Temperature.InUnit(u)
		out.Daily[i] = day
	}
	return out
}
