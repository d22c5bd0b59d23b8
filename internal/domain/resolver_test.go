package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() ResolveInput {
	return ResolveInput{
		User: &UserProfile{
			UID:             "user-1",
			AssignedCampIDs: []string{"camp-a", "camp-b"},
		},
		ActiveCampID: "camp-a",
		Camps: map[string]Camp{
			"camp-a": {ID: "camp-a", Name: "Tamarack", ActiveLocationID: "loc-1"},
			"camp-b": {ID: "camp-b", Name: "Ridgeline", ActiveLocationID: "loc-2"},
		},
		Locations: map[string]CampLocation{
			"loc-1": {
				Name:      "Tamarack Basecamp",
				Latitude:  54.1,
				Longitude: -122.5,
				SecondaryLocations: map[string]SecondaryLocation{
					"trailhead": {Name: "North Trailhead", Latitude: 54.3, Longitude: -122.7},
				},
			},
			"loc-2": {Name: "Ridgeline Basecamp", Latitude: 49.2, Longitude: -123.1},
		},
		Preferences: DefaultPreferences(),
	}
}

func TestResolveLocations(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		res := ResolveLocations(ResolveInput{})

		assert.Nil(t, res.Primary)
		assert.Nil(t, res.Secondary)
		assert.Equal(t, StatusNoUser, res.Status)
	})

	t.Run("happy path", func(t *testing.T) {
		res := ResolveLocations(testInput())

		require.NotNil(t, res.Primary)
		assert.Equal(t, "Tamarack Basecamp", res.Primary.Name)
		assert.Equal(t, 54.1, res.Primary.Latitude)
		assert.Equal(t, StatusOK, res.Status)
		assert.Nil(t, res.Secondary, "no secondary without a preference key")
	})

	t.Run("empty selector", func(t *testing.T) {
		in := testInput()
		in.ActiveCampID = ""

		res := ResolveLocations(in)

		assert.Nil(t, res.Primary)
		assert.Equal(t, StatusNoCampSelected, res.Status)
	})

	t.Run("selector names an unassigned camp", func(t *testing.T) {
		in := testInput()
		in.ActiveCampID = "camp-z"

		res := ResolveLocations(in)

		assert.Equal(t, StatusNoCampSelected, res.Status)
	})

	t.Run("selector names a camp deleted from the directory", func(t *testing.T) {
		in := testInput()
		delete(in.Camps, "camp-a")

		res := ResolveLocations(in)

		assert.Equal(t, StatusNoCampSelected, res.Status)
	})

	t.Run("no assigned camps", func(t *testing.T) {
		in := testInput()
		in.User.AssignedCampIDs = nil

		res := ResolveLocations(in)

		assert.Nil(t, res.Primary)
		assert.Equal(t, StatusNoCampSelected, res.Status)
	})

	t.Run("missing activeLocationId falls back to the default", func(t *testing.T) {
		in := testInput()
		camp := in.Camps["camp-a"]
		camp.ActiveLocationID = ""
		in.Camps["camp-a"] = camp

		res := ResolveLocations(in)

		require.NotNil(t, res.Primary)
		assert.Equal(t, "Prince George, BC", res.Primary.Name)
		assert.Equal(t, 53.916943, res.Primary.Latitude)
		assert.Equal(t, -122.749443, res.Primary.Longitude)
		assert.Equal(t, StatusUsingDefaultLocation, res.Status)
	})

	t.Run("dangling activeLocationId falls back to the default", func(t *testing.T) {
		in := testInput()
		delete(in.Locations, "loc-1")

		res := ResolveLocations(in)

		require.NotNil(t, res.Primary)
		assert.Equal(t, StatusUsingDefaultLocation, res.Status)
	})

	t.Run("fallback never contributes a secondary location", func(t *testing.T) {
		in := testInput()
		delete(in.Locations, "loc-1")
		in.Preferences.SecondaryLocationKey = "trailhead"

		res := ResolveLocations(in)

		assert.Nil(t, res.Secondary)
	})

	t.Run("secondary resolved from preference key", func(t *testing.T) {
		in := testInput()
		in.Preferences.SecondaryLocationKey = "trailhead"

		res := ResolveLocations(in)

		require.NotNil(t, res.Secondary)
		assert.Equal(t, "North Trailhead", res.Secondary.Name)
		assert.Equal(t, 54.3, res.Secondary.Latitude)
	})

	t.Run("unknown preference key yields no secondary", func(t *testing.T) {
		in := testInput()
		in.Preferences.SecondaryLocationKey = "dock"

		res := ResolveLocations(in)

		assert.Nil(t, res.Secondary)
	})

	t.Run("camp switch re-derives with no leakage", func(t *testing.T) {
		in := testInput()
		in.Preferences.SecondaryLocationKey = "trailhead"
		first := ResolveLocations(in)
		require.NotNil(t, first.Secondary)

		// Switch to a camp whose location has no secondary map; the previous
		// camp's secondary must not survive.
		in.ActiveCampID = "camp-b"
		second := ResolveLocations(in)

		require.NotNil(t, second.Primary)
		assert.Equal(t, "Ridgeline Basecamp", second.Primary.Name)
		assert.Nil(t, second.Secondary)
	})
}

func TestStoredPreferencesMerge(t *testing.T) {
	key := "trailhead"
	unit := "fahrenheit"

	merged := StoredPreferences{
		SecondaryLocationKey: &key,
		TemperatureUnit:      &unit,
	}.Merge(DefaultPreferences())

	assert.Equal(t, "trailhead", merged.SecondaryLocationKey)
	assert.Equal(t, "fahrenheit", merged.TemperatureUnit)
	assert.Equal(t, "kmh", merged.WindSpeedUnit, "absent fields keep defaults")
}

func TestWeatherLocationValidCoordinates(t *testing.T) {
	valid := WeatherLocation{Latitude: 53.9, Longitude: -122.7}
	assert.True(t, valid.ValidCoordinates())

	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"latitude out of range", 91, 0},
		{"longitude out of range", 0, 181},
		{"NaN latitude", math.NaN(), 0},
		{"infinite longitude", 0, math.Inf(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loc := WeatherLocation{Latitude: tc.lat, Longitude: tc.lon}
			assert.False(t, loc.ValidCoordinates())
		})
	}
}
