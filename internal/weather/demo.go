package weather

import (
	"fmt"
	"time"
)

// Demo payloads stand in for live data when upstream is unreachable or the
// local limiter refuses the call. They are static except for the day/night
// flag, which tracks the actual local clock so a fallback scene still
// lights correctly.

const demoCondition = "Partly cloudy"

// demoIsDay treats 06:00 through 18:00 inclusive as daytime.
func demoIsDay(now time.Time) bool {
	h := now.Hour()
	return h >= 6 && h <= 18
}

// DemoRecord returns the static fallback observation for a location.
func DemoRecord(locationKey string, now time.Time) *Record {
	return &Record{
		LocationKey:   locationKey,
		LocalTime:     now.Format("2006-01-02 15:04"),
		ConditionText: demoCondition,
		TemperatureF:  72,
		IsDay:         demoIsDay(now),
		Humidity:      55,
		WindMph:       8,
		FetchedAt:     now,
	}
}

// DemoForecast returns a static three-day fallback forecast.
func DemoForecast(locationKey string, now time.Time) *ForecastSet {
	conditions := []string{demoCondition, "Sunny", "Light rain"}
	set := &ForecastSet{LocationKey: locationKey}
	for i := 0; i < ForecastLength; i++ {
		day := now.AddDate(0, 0, i)
		set.Days = append(set.Days, ForecastDay{
			Date: day.Format("2006-01-02"),
			MinF: 58,
			MaxF: 76,
			Record: Record{
				LocationKey:   locationKey,
				LocalTime:     fmt.Sprintf("%s 12:00", day.Format("2006-01-02")),
				ConditionText: conditions[i],
				TemperatureF:  70,
				IsDay:         demoIsDay(now),
				Humidity:      55,
				WindMph:       8,
				FetchedAt:     now,
			},
		})
	}
	return set
}
