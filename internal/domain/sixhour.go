package domain

import (
	"math"
	"strconv"
	"time"
)

// DayPart names one of the four fixed six-hour buckets of a local day.
type DayPart string

const (
	Morning   DayPart = "Morning"   // [06:00, 12:00)
	Afternoon DayPart = "Afternoon" // [12:00, 18:00)
	Evening   DayPart = "Evening"   // [18:00, 24:00)
	Overnight DayPart = "Overnight" // [00:00, 06:00)
)

// dayPartOrder fixes the output ordering of six-hour chunks.
var dayPartOrder = []DayPart{Morning, Afternoon, Evening, Overnight}

// SixHourChunk summarizes one day part. Derived, stateless, recomputed from
// the hourly arrays on every snapshot creation.
type SixHourChunk struct {
	Name          DayPart `json:"name"`
	Temperature   int     `json:"temperature"`   // rounded mean
	Precipitation float64 `json:"precipitation"` // bucket maximum probability
	WeatherCode   int     `json:"weatherCode"`   // bucket mode, ties -> first seen
	WindSpeed     int     `json:"windSpeed"`     // rounded mean
}

// bucket accumulates one day part's hours.
type bucket struct {
	tempSum    float64
	windSum    float64
	precipMax  float64
	count      int
	codeCounts map[int]int
	codeFirst  map[int]int // code -> index of first appearance, for tie-breaks
}

// SixHourForecast partitions the hourly series into the four local-time day
// parts and reduces each. Buckets with zero contributing hours are omitted.
// Pure and deterministic.
func SixHourForecast(h HourlySeries) []SixHourChunk {
	n := len(h.Time)
	if len(h.Temperature) < n {
		n = len(h.Temperature)
	}
	if len(h.WeatherCode) < n {
		n = len(h.WeatherCode)
	}
	if len(h.PrecipitationProbability) < n {
		n = len(h.PrecipitationProbability)
	}
	if len(h.WindSpeed) < n {
		n = len(h.WindSpeed)
	}

	buckets := make(map[DayPart]*bucket, 4)

	for i := 0; i < n; i++ {
		hour, ok := localHour(h.Time[i])
		if !ok {
			continue
		}

		part := dayPartForHour(hour)
		b, exists := buckets[part]
		if !exists {
			b = &bucket{codeCounts: make(map[int]int), codeFirst: make(map[int]int)}
			buckets[part] = b
		}

		b.tempSum += h.Temperature[i]
		b.windSum += h.WindSpeed[i]
		if h.PrecipitationProbability[i] > b.precipMax {
			b.precipMax = h.PrecipitationProbability[i]
		}
		code := h.WeatherCode[i]
		if _, seen := b.codeFirst[code]; !seen {
			b.codeFirst[code] = i
		}
		b.codeCounts[code]++
		b.count++
	}

	chunks := make([]SixHourChunk, 0, 4)
	for _, part := range dayPartOrder {
		b, ok := buckets[part]
		if !ok {
			continue
		}
		chunks = append(chunks, SixHourChunk{
			Name:          part,
			Temperature:   int(math.Round(b.tempSum / float64(b.count))),
			Precipitation: b.precipMax,
			WeatherCode:   b.modeCode(),
			WindSpeed:     int(math.Round(b.windSum / float64(b.count))),
		})
	}
	return chunks
}

// modeCode returns the most frequent weather code in the bucket; ties are
// broken by the code encountered first in iteration order.
func (b *bucket) modeCode() int {
	best := 0
	bestCount := -1
	bestFirst := math.MaxInt
	for code, count := range b.codeCounts {
		first := b.codeFirst[code]
		if count > bestCount || (count == bestCount && first < bestFirst) {
			best = code
			bestCount = count
			bestFirst = first
		}
	}
	return best
}

func dayPartForHour(hour int) DayPart {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18:
		return Evening
	default:
		return Overnight
	}
}

// localHour extracts the local hour of day from an ISO 8601 timestamp. The
// provider sends zone-less local timestamps ("2026-08-28T07:00"); RFC 3339 is
// accepted as well.
func localHour(ts string) (int, bool) {
	if t, err := time.Parse("2006-01-02T15:04", ts); err == nil {
		return t.Hour(), true
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Hour(), true
	}
	// Last resort: positional "THH" slice for padded ISO strings.
	if len(ts) >= 13 && ts[10] == 'T' {
		if hour, err := strconv.Atoi(ts[11:13]); err == nil && hour >= 0 && hour <= 23 {
			return hour, true
		}
	}
	return 0, false
}
