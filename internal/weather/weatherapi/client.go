// Package weatherapi is a WeatherAPI.com client implementing the weather
// provider interface.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/weatherscene/weatherscene/internal/provider/resilience"
	"github.com/weatherscene/weatherscene/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "weatherapi"

	// DefaultBaseURL is the WeatherAPI.com v1 base URL.
	DefaultBaseURL = "https://api.weatherapi.com/v1"
)

// ClientConfig holds configuration for the WeatherAPI.com client.
type ClientConfig struct {
	// APIKey is the WeatherAPI.com API key (required).
	APIKey string

	// BaseURL overrides the API base URL, for tests.
	BaseURL string

	// HTTPClient is the HTTP client to use (optional). If nil, a resilient
	// client with defaults is used.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a WeatherAPI.com API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new WeatherAPI.com client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{Name: ProviderName})
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// currentResponse is the subset of the /current.json payload we consume.
type currentResponse struct {
	Location struct {
		Name      string `json:"name"`
		Localtime string `json:"localtime"`
	} `json:"location"`
	Current currentBlock `json:"current"`
}

type currentBlock struct {
	TempF     float64 `json:"temp_f"`
	IsDay     int     `json:"is_day"`
	Humidity  float64 `json:"humidity"`
	WindMph   float64 `json:"wind_mph"`
	Condition struct {
		Text string `json:"text"`
	} `json:"condition"`
}

// forecastResponse is the subset of the /forecast.json payload we consume.
type forecastResponse struct {
	Location struct {
		Name      string `json:"name"`
		Localtime string `json:"localtime"`
	} `json:"location"`
	Current  currentBlock `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempF  float64 `json:"maxtemp_f"`
				MinTempF  float64 `json:"mintemp_f"`
				AvgTempF  float64 `json:"avgtemp_f"`
				Humidity  float64 `json:"avghumidity"`
				WindMph   float64 `json:"maxwind_mph"`
				Condition struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// GetCurrent fetches the current observation for a location.
func (c *Client) GetCurrent(ctx context.Context, location string) (*weather.Record, error) {
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s",
		c.baseURL, c.apiKey, url.QueryEscape(location))

	var payload currentResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	rec := recordFromCurrent(location, payload.Location.Localtime, payload.Current)
	return &rec, nil
}

// GetForecast fetches the three-day forecast for a location.
func (c *Client) GetForecast(ctx context.Context, location string) (*weather.ForecastSet, error) {
	endpoint := fmt.Sprintf("%s/forecast.json?key=%s&q=%s&days=%d",
		c.baseURL, c.apiKey, url.QueryEscape(location), weather.ForecastLength)

	var payload forecastResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	set := &weather.ForecastSet{LocationKey: weather.NormalizeLocation(location)}
	for _, day := range payload.Forecast.Forecastday {
		rec := weather.Record{
			LocationKey:   set.LocationKey,
			LocalTime:     day.Date + " 12:00",
			ConditionText: day.Day.Condition.Text,
			TemperatureF:  day.Day.AvgTempF,
			IsDay:         true,
			Humidity:      day.Day.Humidity,
			WindMph:       day.Day.WindMph,
			FetchedAt:     time.Now(),
		}
		set.Days = append(set.Days, weather.ForecastDay{
			Record: rec,
			Date:   day.Date,
			MinF:   day.Day.MinTempF,
			MaxF:   day.Day.MaxTempF,
		})
	}
	return set, nil
}

// getJSON performs a GET and decodes the JSON body. Upstream throttling
// (429) is surfaced distinctly from other failures so callers can tell our
// limiter's refusals apart from the provider's.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return weather.ErrUpstreamThrottled
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("weatherapi: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding weatherapi response: %w", err)
	}
	return nil
}

func recordFromCurrent(location, localtime string, cur currentBlock) weather.Record {
	return weather.Record{
		LocationKey:   weather.NormalizeLocation(location),
		LocalTime:     localtime,
		ConditionText: cur.Condition.Text,
		TemperatureF:  cur.TempF,
		IsDay:         cur.IsDay == 1,
		Humidity:      cur.Humidity,
		WindMph:       cur.WindMph,
		FetchedAt:     time.Now(),
	}
}
