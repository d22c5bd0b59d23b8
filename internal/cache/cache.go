// Package cache owns the per-role forecast slots and decides, per access,
// whether to serve cached data or fetch.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/campsight/camp-weather-service/internal/domain"
	"github.com/campsight/camp-weather-service/internal/observability"
)

// StaleAfter is the age past which cached forecast data triggers a refetch on
// the next access.
const StaleAfter = 3 * time.Hour

// Role names one of the three independent forecast slots.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleTemporary Role = "temporary"
)

var roles = []Role{RolePrimary, RoleSecondary, RoleTemporary}

// Slot is the externally visible state of one cached-forecast slot.
// Invariant: Data != nil implies LastFetched != nil; the timestamp is
// recorded when data arrives, never at request start.
type Slot struct {
	Location    *domain.WeatherLocation `json:"location"`
	Data        *domain.WeatherSnapshot `json:"data"`
	Loading     bool                    `json:"loading"`
	Error       string                  `json:"error,omitempty"`
	LastFetched *time.Time              `json:"lastFetched"`
	Status      domain.Status           `json:"status"`
}

// slotState is the cache's internal slot record. generation tags in-flight
// fetches: a completion whose generation no longer matches is a response for
// a superseded location and is discarded.
type slotState struct {
	Slot
	resolved   domain.Status // last resolution status, restored on fetch success
	inFlight   bool
	generation uint64
}

// SlotCache owns one slot per role and guarantees at most one in-flight fetch
// per slot. All slot state is mutated only here, under one mutex; the mutex is
// released across network calls.
type SlotCache struct {
	mu      sync.Mutex
	slots   map[Role]*slotState
	fetcher domain.ForecastFetcher
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a SlotCache. Slots start in the loading state until their first
// resolution arrives.
func New(fetcher domain.ForecastFetcher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *SlotCache {
	slots := make(map[Role]*slotState, len(roles))
	for _, role := range roles {
		slots[role] = &slotState{
			Slot:     Slot{Loading: true, Status: domain.StatusLoading},
			resolved: domain.StatusLoading,
		}
	}
	return &SlotCache{
		slots:   slots,
		fetcher: fetcher,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// EnsureFresh brings the slot in line with its desired location: it clears the
// slot when loc is nil, rejects invalid coordinates without network I/O, serves
// cached data while fresh, and otherwise fetches. Fetch failures are recorded
// in slot state and never returned to the caller.
func (c *SlotCache) EnsureFresh(ctx context.Context, role Role, loc *domain.WeatherLocation, resolved domain.Status) {
	c.ensure(ctx, role, loc, resolved, false)
}

// FetchTemporary performs a one-off coordinate lookup into the temporary slot.
// It always forces a fetch regardless of staleness.
func (c *SlotCache) FetchTemporary(ctx context.Context, lat, lon float64) {
	loc := &domain.WeatherLocation{
		Name:      fmt.Sprintf("%.4f, %.4f", lat, lon),
		Latitude:  lat,
		Longitude: lon,
	}
	c.ensure(ctx, RoleTemporary, loc, domain.StatusOK, true)
}

// ClearTemporary resets the temporary slot without a network call.
func (c *SlotCache) ClearTemporary() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.slots[RoleTemporary]
	clearSlot(s)
	s.Status = domain.StatusOK
	s.resolved = domain.StatusOK
	s.generation++ // discard any in-flight temporary fetch
	c.metrics.SlotLookups.WithLabelValues(string(RoleTemporary), "cleared").Inc()
}

// Refresh forces a refetch for the primary and secondary slots that currently
// have a location bound. Explicit refresh always forces, even before the
// staleness threshold and after an error.
func (c *SlotCache) Refresh(ctx context.Context) {
	for _, role := range []Role{RolePrimary, RoleSecondary} {
		c.mu.Lock()
		s := c.slots[role]
		loc := s.Location
		resolved := s.resolved
		c.mu.Unlock()

		if loc == nil {
			continue
		}
		target := *loc
		c.ensure(ctx, role, &target, resolved, true)
	}
}

// Snapshot returns a copy of the slot's visible state.
func (c *SlotCache) Snapshot(role Role) Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[role].Slot
}

func (c *SlotCache) ensure(ctx context.Context, role Role, loc *domain.WeatherLocation, resolved domain.Status, forced bool) {
	c.mu.Lock()
	s := c.slots[role]

	if loc == nil {
		clearSlot(s)
		s.Status = resolved
		s.resolved = resolved
		s.generation++
		c.metrics.SlotLookups.WithLabelValues(string(role), "cleared").Inc()
		c.mu.Unlock()
		return
	}

	if !loc.ValidCoordinates() {
		now := c.clock.Now()
		s.Location = loc
		s.Loading = false
		s.Error = "invalid location"
		// Marking the failure as "checked" prevents an immediate retry loop.
		s.LastFetched = &now
		s.Status = domain.StatusError
		s.resolved = resolved
		s.generation++ // discard any in-flight fetch for the previous location
		c.metrics.SlotLookups.WithLabelValues(string(role), "invalid").Inc()
		c.mu.Unlock()
		return
	}

	if s.inFlight {
		// Triggers arriving during a fetch are dropped, not queued. A changed
		// desired location still invalidates the in-flight response.
		if s.Location == nil || !s.Location.SameCoordinates(*loc) {
			s.Location = loc
			s.resolved = resolved
			s.generation++
		}
		c.metrics.SlotLookups.WithLabelValues(string(role), "dropped").Inc()
		c.mu.Unlock()
		return
	}

	locationChanged := s.Location == nil || !s.Location.SameCoordinates(*loc)
	stale := s.LastFetched == nil || c.clock.Now().Sub(*s.LastFetched) > StaleAfter
	unfetchedDefault := resolved == domain.StatusUsingDefaultLocation && s.Data == nil

	if !forced && !stale && !locationChanged && !unfetchedDefault {
		s.Location = loc
		s.resolved = resolved
		// A fetch failure inside the staleness window stays visible as an
		// error; only a slot that actually holds data takes the new status.
		if s.Data != nil {
			s.Status = resolved
		}
		c.metrics.SlotLookups.WithLabelValues(string(role), "fresh").Inc()
		c.mu.Unlock()
		return
	}

	// Begin fetch: existing data stays visible while refreshing.
	s.inFlight = true
	s.Loading = true
	s.Error = ""
	s.Location = loc
	s.Status = resolved
	s.resolved = resolved
	s.generation++
	gen := s.generation
	target := *loc

	result := "stale"
	if forced {
		result = "forced"
	}
	c.metrics.SlotLookups.WithLabelValues(string(role), result).Inc()
	c.metrics.SlotLoading.WithLabelValues(string(role)).Set(1)
	c.mu.Unlock()

	start := c.clock.Now()
	forecast, err := c.fetcher.Fetch(ctx, target.Latitude, target.Longitude)
	c.metrics.FetchDuration.WithLabelValues(string(role)).Observe(c.clock.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	s.inFlight = false
	c.metrics.SlotLoading.WithLabelValues(string(role)).Set(0)

	if s.generation != gen {
		// The slot's desired location changed (or it was cleared) while this
		// fetch was in flight; applying the response would bind mismatched
		// data to the slot.
		s.Loading = false
		c.metrics.LateDiscards.Inc()
		c.logger.Debug("discarded late forecast response",
			"slot", role,
			"location", target.Name,
		)
		return
	}

	now := c.clock.Now()
	s.Loading = false
	s.LastFetched = &now

	if err != nil {
		s.Data = nil
		s.Error = err.Error()
		s.Status = domain.StatusError
		c.metrics.Fetches.WithLabelValues(string(role), "error").Inc()
		c.logger.Warn("forecast fetch failed",
			"slot", role,
			"location", target.Name,
			"error", err,
		)
		return
	}

	snap := domain.NewSnapshot(target, forecast, now)
	s.Data = &snap
	s.Error = ""
	s.Status = s.resolved
	c.metrics.Fetches.WithLabelValues(string(role), "success").Inc()
}

func clearSlot(s *slotState) {
	s.Location = nil
	s.Data = nil
	s.Loading = false
	s.Error = ""
	s.LastFetched = nil
}
