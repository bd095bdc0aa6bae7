package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrUpstreamThrottled   = errors.New("weather provider throttled the request")
	ErrNoLocation          = errors.New("no location supplied")
)

// Record represents the observed weather at a location at a point in time.
// It is immutable once fetched; one Record exists per query or forecast day.
type Record struct {
	// LocationKey is the case-normalized location this record describes.
	LocationKey string `json:"location"`

	// LocalTime is the location's wall-clock time as reported upstream,
	// formatted "2006-01-02 15:04". No timezone offset is carried; phase
	// resolution only ever reads the hour.
	LocalTime string `json:"local_time"`

	// ConditionText is the upstream free-text condition ("Patchy light
	// drizzle", "Thundery outbreaks possible", ...).
	ConditionText string `json:"condition"`

	// TemperatureF in degrees Fahrenheit.
	TemperatureF float64 `json:"temp_f"`

	// IsDay reports whether the upstream considers it daytime.
	IsDay bool `json:"is_day"`

	// Humidity percentage (0-100).
	Humidity float64 `json:"humidity"`

	// WindMph is sustained wind speed in miles per hour.
	WindMph float64 `json:"wind_mph"`

	FetchedAt time.Time `json:"fetched_at"`
}

// Hour returns the local hour of day (0-23) parsed from LocalTime.
// Malformed timestamps degrade to a safe daytime hour rather than failing;
// a broken scene is worse than an approximate one.
func (r Record) Hour() int {
	t, err := time.Parse("2006-01-02 15:04", r.LocalTime)
	if err != nil {
		return 12
	}
	return t.Hour()
}

// ForecastDay is one day of a forecast: a representative Record plus the
// day's temperature extremes.
type ForecastDay struct {
	Record Record  `json:"record"`
	Date   string  `json:"date"` // "2006-01-02"
	MinF   float64 `json:"min_f"`
	MaxF   float64 `json:"max_f"`
}

// ForecastSet is an ordered three-day forecast. Index order is
// chronological and significant: index 0 is today.
type ForecastSet struct {
	LocationKey string        `json:"location"`
	Days        []ForecastDay `json:"days"`
}

// ForecastLength is the number of days a ForecastSet carries.
const ForecastLength = 3

// Envelope wraps a service response with the flags the caller needs to
// present it honestly: whether it came from cache, whether the local
// limiter refused the upstream call, and whether upstream failure forced
// demo data.
type Envelope struct {
	Current     *Record      `json:"current,omitempty"`
	Forecast    *ForecastSet `json:"forecast,omitempty"`
	Cached      bool         `json:"cached"`
	RateLimited bool         `json:"rate_limited"`
	Fallback    bool         `json:"fallback"`
}
