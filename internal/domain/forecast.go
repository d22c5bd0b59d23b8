package domain

import (
	"context"
	"time"
)

// ForecastFetcher retrieves a raw forecast for a coordinate pair.
type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (Forecast, error)
}

// Forecast is the raw forecast payload as returned by the provider, with
// hourly and daily values kept as parallel arrays indexed by timestamp.
type Forecast struct {
	Timezone         string            `json:"timezone"`
	UTCOffsetSeconds int               `json:"utcOffsetSeconds"`
	Current          CurrentConditions `json:"current"`
	Hourly           HourlySeries      `json:"hourly"`
	Daily            DailySeries       `json:"daily"`
}

// CurrentConditions holds the provider's current-weather fields.
type CurrentConditions struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	RelativeHumidity    float64 `json:"relativeHumidity"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weatherCode"`
	WindSpeed           float64 `json:"windSpeed"`
}

// HourlySeries holds parallel per-hour arrays. Timestamps are local ISO 8601
// without a zone suffix, e.g. "2026-08-28T07:00".
type HourlySeries struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature"`
	WeatherCode              []int     `json:"weatherCode"`
	PrecipitationProbability []float64 `json:"precipitationProbability"`
	WindSpeed                []float64 `json:"windSpeed"`
}

// Head returns the series truncated to at most n leading hours.
func (h HourlySeries) Head(n int) HourlySeries {
	clip := func(m int) int {
		if m < n {
			return m
		}
		return n
	}
	return HourlySeries{
		Time:                     h.Time[:clip(len(h.Time))],
		Temperature:              h.Temperature[:clip(len(h.Temperature))],
		WeatherCode:              h.WeatherCode[:clip(len(h.WeatherCode))],
		PrecipitationProbability: h.PrecipitationProbability[:clip(len(h.PrecipitationProbability))],
		WindSpeed:                h.WindSpeed[:clip(len(h.WindSpeed))],
	}
}

// DailySeries holds parallel per-day arrays.
type DailySeries struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weatherCode"`
	TemperatureMax              []float64 `json:"temperatureMax"`
	TemperatureMin              []float64 `json:"temperatureMin"`
	PrecipitationProbabilityMax []float64 `json:"precipitationProbabilityMax"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
}

// WeatherSnapshot is the post-processed forecast a slot serves: the raw fields
// plus the derived six-hour summary. Created once per successful fetch and
// replaced wholesale on the next; never partially mutated.
type WeatherSnapshot struct {
	Location        WeatherLocation   `json:"location"`
	Current         CurrentConditions `json:"current"`
	Hourly          HourlySeries      `json:"hourly"`
	Daily           DailySeries       `json:"daily"`
	SixHourForecast []SixHourChunk    `json:"sixHourForecast"`
	FetchedAt       time.Time         `json:"fetchedAt"`
}

// NewSnapshot builds a WeatherSnapshot from a raw forecast, deriving the
// six-hour summary. The summary covers the first day of hourly data; a longer
// horizon would blend unrelated days into the same bucket.
func NewSnapshot(loc WeatherLocation, f Forecast, fetchedAt time.Time) WeatherSnapshot {
	return WeatherSnapshot{
		Location:        loc,
		Current:         f.Current,
		Hourly:          f.Hourly,
		Daily:           f.Daily,
		SixHourForecast: SixHourForecast(f.Hourly.Head(24)),
		FetchedAt:       fetchedAt,
	}
}
