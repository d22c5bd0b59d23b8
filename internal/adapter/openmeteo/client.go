// Package openmeteo implements domain.ForecastFetcher against the Open-Meteo
// forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/campsight/camp-weather-service/internal/domain"
)

// Requested field lists. Current, hourly, and daily are fetched together so a
// slot refresh is a single round trip.
const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m"
	hourlyFields  = "temperature_2m,precipitation_probability,weather_code,wind_speed_10m"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max,sunrise,sunset"
)

// Client fetches forecasts from the Open-Meteo API. Repeated upstream failures
// open a circuit breaker so slot refreshes fail fast instead of piling onto a
// struggling upstream; an open circuit surfaces as a normal slot error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo forecast client. The API requires no key.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.open-meteo.com/v1/forecast",
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "open-meteo",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger,
	}
}

// Fetch retrieves current, hourly, and daily forecast fields for the given
// coordinates. Non-2xx responses are failures.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.Forecast, error) {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current":   {currentFields},
		"hourly":    {hourlyFields},
		"daily":     {dailyFields},
		"timezone":  {"auto"},
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	})
	if err != nil {
		return domain.Forecast{}, err
	}

	resp, ok := result.(response)
	if !ok {
		return domain.Forecast{}, fmt.Errorf("unexpected breaker result type %T", result)
	}
	return resp.toDomain(), nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return response{}, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// Open-Meteo API response types.

type response struct {
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Current          current `json:"current"`
	Hourly           hourly  `json:"hourly"`
	Daily            daily   `json:"daily"`
}

type current struct {
	Time                string  `json:"time"`
	Temperature2m       float64 `json:"temperature_2m"`
	RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed10m        float64 `json:"wind_speed_10m"`
}

type hourly struct {
	Time                     []string  `json:"time"`
	Temperature2m            []float64 `json:"temperature_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	WeatherCode              []int     `json:"weather_code"`
	WindSpeed10m             []float64 `json:"wind_speed_10m"`
}

type daily struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weather_code"`
	Temperature2mMax            []float64 `json:"temperature_2m_max"`
	Temperature2mMin            []float64 `json:"temperature_2m_min"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
}

func (r response) toDomain() domain.Forecast {
	return domain.Forecast{
		Timezone:         r.Timezone,
		UTCOffsetSeconds: r.UTCOffsetSeconds,
		Current: domain.CurrentConditions{
			Time:                r.Current.Time,
			Temperature:         r.Current.Temperature2m,
			ApparentTemperature: r.Current.ApparentTemperature,
			RelativeHumidity:    r.Current.RelativeHumidity2m,
			Precipitation:       r.Current.Precipitation,
			WeatherCode:         r.Current.WeatherCode,
			WindSpeed:           r.Current.WindSpeed10m,
		},
		Hourly: domain.HourlySeries{
			Time:                     r.Hourly.Time,
			Temperature:              r.Hourly.Temperature2m,
			WeatherCode:              r.Hourly.WeatherCode,
			PrecipitationProbability: r.Hourly.PrecipitationProbability,
			WindSpeed:                r.Hourly.WindSpeed10m,
		},
		Daily: domain.DailySeries{
			Time:                        r.Daily.Time,
			WeatherCode:                 r.Daily.WeatherCode,
			TemperatureMax:              r.Daily.Temperature2mMax,
			TemperatureMin:              r.Daily.Temperature2mMin,
			PrecipitationProbabilityMax: r.Daily.PrecipitationProbabilityMax,
			Sunrise:                     r.Daily.Sunrise,
			Sunset:                      r.Daily.Sunset,
		},
	}
}
