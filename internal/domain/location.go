package domain

import "math"

// WeatherLocation identifies a place to forecast. Immutable value; recomputed
// whenever its inputs change.
type WeatherLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SameCoordinates reports whether two locations name the same point. Used by
// the fetch cache as the location identity for invalidation and for the
// late-response guard.
func (l WeatherLocation) SameCoordinates(o WeatherLocation) bool {
	return l.Latitude == o.Latitude && l.Longitude == o.Longitude
}

// ValidCoordinates reports whether the location's coordinates are numeric and
// within WGS-84 bounds.
func (l WeatherLocation) ValidCoordinates() bool {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) ||
		math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// UserProfile is the slice of a camp user's profile the resolver needs.
type UserProfile struct {
	UID             string   `json:"uid"`
	AssignedCampIDs []string `json:"assignedCampIds"`
}

// Camp is a camp directory record.
type Camp struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ActiveLocationID string `json:"activeLocationId"`
}

// CampLocation is one entry in a per-year camp location set.
type CampLocation struct {
	Name               string                       `json:"name"`
	Latitude           float64                      `json:"latitude"`
	Longitude          float64                      `json:"longitude"`
	SecondaryLocations map[string]SecondaryLocation `json:"secondaryLocations,omitempty"`
}

// SecondaryLocation is an alternate place a camper may track alongside the
// camp's main location, keyed in CampLocation.SecondaryLocations by a short
// label the user picks via preferences.
type SecondaryLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
