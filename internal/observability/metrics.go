package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather service.
type Metrics struct {
	// Slot cache metrics.
	SlotLookups   *prometheus.CounterVec   // labels: slot, result={fresh,stale,forced,cleared,invalid,dropped}
	Fetches       *prometheus.CounterVec   // labels: slot, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: slot
	SlotLoading   *prometheus.GaugeVec     // labels: slot
	LateDiscards  prometheus.Counter

	// Resolution and sync metrics.
	Resolutions *prometheus.CounterVec // labels: status
	SyncErrors  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SlotLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "camp_weather",
			Name:      "slot_lookups_total",
			Help:      "Slot cache lookups by slot role and result.",
		}, []string{"slot", "result"}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "camp_weather",
			Name:      "forecast_fetches_total",
			Help:      "Forecast API fetches by slot role and outcome.",
		}, []string{"slot", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "camp_weather",
			Name:      "forecast_fetch_duration_seconds",
			Help:      "Forecast API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"slot"}),
		SlotLoading: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "camp_weather",
			Name:      "slot_loading",
			Help:      "1 while a fetch is in flight for the slot, 0 otherwise.",
		}, []string{"slot"}),
		LateDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "camp_weather",
			Name:      "late_responses_discarded_total",
			Help:      "Fetch responses discarded because the slot's desired location changed in flight.",
		}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "camp_weather",
			Name:      "location_resolutions_total",
			Help:      "Location resolutions by resulting status.",
		}, []string{"status"}),
		SyncErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "camp_weather",
			Name:      "sync_errors_total",
			Help:      "Failed record-store syncs.",
		}),
	}

	prometheus.MustRegister(
		m.SlotLookups,
		m.Fetches,
		m.FetchDuration,
		m.SlotLoading,
		m.LateDiscards,
		m.Resolutions,
		m.SyncErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SlotLookups:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "camp_weather", Name: "slot_lookups_total"}, []string{"slot", "result"}),
		Fetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "camp_weather", Name: "forecast_fetches_total"}, []string{"slot", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "camp_weather", Name: "forecast_fetch_duration_seconds"}, []string{"slot"}),
		SlotLoading:   prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "camp_weather", Name: "slot_loading"}, []string{"slot"}),
		LateDiscards:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "camp_weather", Name: "late_responses_discarded_total"}),
		Resolutions:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "camp_weather", Name: "location_resolutions_total"}, []string{"status"}),
		SyncErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "camp_weather", Name: "sync_errors_total"}),
	}
}
