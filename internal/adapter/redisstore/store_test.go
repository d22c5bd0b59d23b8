package redisstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campsight/camp-weather-service/internal/adapter/redisstore"
	"github.com/campsight/camp-weather-service/internal/domain"
)

func newStore(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.New(rdb, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestStorePing(t *testing.T) {
	store, _ := newStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestStoreUserProfile(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("users/user-1", `{"uid":"user-1","assignedCampIds":["camp-a","camp-b"]}`))

	profile, err := store.UserProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UID)
	assert.Equal(t, []string{"camp-a", "camp-b"}, profile.AssignedCampIDs)

	_, err = store.UserProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreActiveCampID(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("activeCamp/user-1", "camp-a"))

	id, err := store.ActiveCampID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "camp-a", id)

	_, err = store.ActiveCampID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreCamps(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("camps", `{"camp-a":{"id":"camp-a","name":"Camp Alder","activeLocationId":"loc-1"}}`))

	camps, err := store.Camps(context.Background())
	require.NoError(t, err)
	require.Contains(t, camps, "camp-a")
	assert.Equal(t, "loc-1", camps["camp-a"].ActiveLocationID)
}

func TestStoreCampLocations(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("campLocations/2026", `{
		"loc-1": {
			"name": "Alder Flats",
			"latitude": 54.1,
			"longitude": -122.5,
			"secondaryLocations": {
				"trailhead": {"name": "Alder Trailhead", "latitude": 54.3, "longitude": -122.7}
			}
		}
	}`))

	locations, err := store.CampLocations(context.Background(), 2026)
	require.NoError(t, err)
	require.Contains(t, locations, "loc-1")
	assert.Equal(t, 54.1, locations["loc-1"].Latitude)
	assert.Contains(t, locations["loc-1"].SecondaryLocations, "trailhead")

	_, err = store.CampLocations(context.Background(), 1999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStorePreferences(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("userPrefs/user-1", `{"secondaryLocationKey":"trailhead","temperatureUnit":"fahrenheit"}`))

	prefs, err := store.Preferences(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, prefs.SecondaryLocationKey)
	assert.Equal(t, "trailhead", *prefs.SecondaryLocationKey)
	require.NotNil(t, prefs.TemperatureUnit)
	assert.Equal(t, "fahrenheit", *prefs.TemperatureUnit)
	assert.Nil(t, prefs.WindSpeedUnit)

	_, err = store.Preferences(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreMalformedRecord(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("camps", "not json"))

	_, err := store.Camps(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode camps")
}
