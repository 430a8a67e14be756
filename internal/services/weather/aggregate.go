package weather

import (
	"time"

	"github.com/navein97/weather-app/internal/models"
)

const dateLayout = "2006-01-02"

// AggregateDaily buckets forecast points by calendar date in loc, keeping
// first-seen order. The first point of a date seeds the aggregate; later
// points of that date only widen Min and Max.
func AggregateDaily(points []models.ForecastPoint, loc *time.Location) []models.DailyAggregate {
	if loc == nil {
		loc = time.Local
	}

	daily := make([]models.DailyAggregate, 0)
	index := make(map[string]int)

	for _, p := range points {
		key := time.Unix(p.DT, 0).In(loc).Format(dateLayout)

		i, seen := index[key]
		if !seen {
			index[key] = len(daily)
			daily = append(daily, models.DailyAggregate{
				Date: key,
				DT:   p.DT,
				Temperature: models.DayTemperature{
					Day: p.Temperature.Current,
					Min: p.Temperature.Min,
					Max: p.Temperature.Max,
				},
				Conditions: p.Conditions,
			})
			continue
		}

		day := &daily[i]
		day.Temperature.Min = min(day.Temperature.Min, p.Temperature.Min)
		day.Temperature.Max = max(day.Temperature.Max, p.Temperature.Max)
	}

	return daily
}
