// Package weather orchestrates record reads, location resolution, and the
// slot cache into the service's weather view.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/campsight/camp-weather-service/internal/cache"
	"github.com/campsight/camp-weather-service/internal/domain"
	"github.com/campsight/camp-weather-service/internal/observability"
)

// Provider is the explicitly constructed service object holding the three
// weather slots. Consumers receive it by reference; no ambient or global
// state is involved.
type Provider struct {
	store   domain.RecordStore
	cache   *cache.SlotCache
	logger  *slog.Logger
	metrics *observability.Metrics
	userID  string

	mu    sync.RWMutex
	res   domain.Resolution
	prefs domain.Preferences

	synced atomic.Bool
}

// NewProvider creates a Provider for the given user identity. An empty userID
// resolves to the no_user steady state.
func NewProvider(store domain.RecordStore, slots *cache.SlotCache, logger *slog.Logger, metrics *observability.Metrics, userID string) *Provider {
	return &Provider{
		store:   store,
		cache:   slots,
		logger:  logger,
		metrics: metrics,
		userID:  userID,
		prefs:   domain.DefaultPreferences(),
	}
}

// Sync re-reads camp and user records, re-derives the tracked locations from
// scratch, and brings the primary and secondary slots in line. Slot fetch
// failures stay inside slot state; Sync only fails when the record store is
// unreachable.
func (p *Provider) Sync(ctx context.Context) error {
	res, prefs, err := p.resolve(ctx)
	if err != nil {
		p.metrics.SyncErrors.Inc()
		return fmt.Errorf("sync weather records: %w", err)
	}

	p.mu.Lock()
	p.res = res
	p.prefs = prefs
	p.mu.Unlock()

	p.metrics.Resolutions.WithLabelValues(string(res.Status)).Inc()
	p.logger.Debug("locations resolved",
		"status", res.Status,
		"primary", locationName(res.Primary),
		"secondary", locationName(res.Secondary),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.cache.EnsureFresh(gctx, cache.RolePrimary, res.Primary, res.Status)
		return nil
	})
	g.Go(func() error {
		p.cache.EnsureFresh(gctx, cache.RoleSecondary, res.Secondary, res.Status)
		return nil
	})
	_ = g.Wait() // EnsureFresh never returns errors

	p.synced.Store(true)
	return nil
}

// CampChanged is the observer hook invoked by whichever component changes the
// active-camp selection. It re-derives everything from scratch so no state
// from the previous camp leaks through.
func (p *Provider) CampChanged(ctx context.Context) {
	p.logger.Info("camp selection changed, re-resolving locations")
	if err := p.Sync(ctx); err != nil {
		p.logger.Error("re-resolve after camp change failed", "error", err)
	}
}

// Primary returns the primary slot, checking staleness on access.
func (p *Provider) Primary(ctx context.Context) cache.Slot {
	p.syncIfNeeded(ctx)
	res := p.resolution()
	p.cache.EnsureFresh(ctx, cache.RolePrimary, res.Primary, res.Status)
	return p.cache.Snapshot(cache.RolePrimary)
}

// Secondary returns the secondary slot, checking staleness on access.
func (p *Provider) Secondary(ctx context.Context) cache.Slot {
	p.syncIfNeeded(ctx)
	res := p.resolution()
	p.cache.EnsureFresh(ctx, cache.RoleSecondary, res.Secondary, res.Status)
	return p.cache.Snapshot(cache.RoleSecondary)
}

// Temporary returns the temporary slot as-is; it only changes through
// FetchTemporary and ClearTemporary.
func (p *Provider) Temporary() cache.Slot {
	return p.cache.Snapshot(cache.RoleTemporary)
}

// Refresh forces a refetch for the bound primary/secondary locations.
func (p *Provider) Refresh(ctx context.Context) {
	p.cache.Refresh(ctx)
}

// FetchTemporary performs an ad-hoc coordinate lookup into the temporary slot.
func (p *Provider) FetchTemporary(ctx context.Context, lat, lon float64) {
	p.cache.FetchTemporary(ctx, lat, lon)
}

// ClearTemporary empties the temporary slot.
func (p *Provider) ClearTemporary() {
	p.cache.ClearTemporary()
}

// Preferences returns the effective merged preferences from the last sync.
func (p *Provider) Preferences() domain.Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prefs
}

// CheckReadiness returns nil once records have been synced at least once.
func (p *Provider) CheckReadiness(_ context.Context) error {
	if !p.synced.Load() {
		return errors.New("weather records have not been synced yet")
	}
	return nil
}

func (p *Provider) syncIfNeeded(ctx context.Context) {
	if p.synced.Load() {
		return
	}
	if err := p.Sync(ctx); err != nil {
		p.logger.Warn("initial sync failed", "error", err)
	}
}

func (p *Provider) resolution() domain.Resolution {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.res
}

// resolve gathers the resolver's inputs from the record store. Missing
// selector, profile, and preference records are expected steady states, not
// failures.
func (p *Provider) resolve(ctx context.Context) (domain.Resolution, domain.Preferences, error) {
	prefs := domain.DefaultPreferences()

	if p.userID == "" {
		return domain.ResolveLocations(domain.ResolveInput{}), prefs, nil
	}

	profile, err := p.store.UserProfile(ctx, p.userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ResolveLocations(domain.ResolveInput{}), prefs, nil
	}
	if err != nil {
		return domain.Resolution{}, prefs, err
	}

	activeCampID, err := p.store.ActiveCampID(ctx, p.userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Resolution{}, prefs, err
	}

	camps, err := p.store.Camps(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Resolution{}, prefs, err
	}

	locations, err := p.store.CampLocations(ctx, domain.CurrentYear())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Resolution{}, prefs, err
	}

	stored, err := p.store.Preferences(ctx, p.userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Resolution{}, prefs, err
	}
	prefs = stored.Merge(prefs)

	res := domain.ResolveLocations(domain.ResolveInput{
		User:         &profile,
		ActiveCampID: activeCampID,
		Camps:        camps,
		Locations:    locations,
		Preferences:  prefs,
	})
	return res, prefs, nil
}

func locationName(loc *domain.WeatherLocation) string {
	if loc == nil {
		return ""
	}
	return loc.Name
}
