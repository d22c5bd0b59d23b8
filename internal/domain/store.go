package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by RecordStore implementations when a record does
// not exist. Callers treat missing selectors and preferences as empty rather
// than failures.
var ErrNotFound = errors.New("record not found")

// RecordStore reads camp and user records from the platform's document store.
// The weather service only reads; it never writes weather data back.
type RecordStore interface {
	// UserProfile returns the profile record for a user.
	UserProfile(ctx context.Context, uid string) (UserProfile, error)

	// ActiveCampID returns the user's persisted camp selector.
	ActiveCampID(ctx context.Context, uid string) (string, error)

	// Camps returns the camp directory keyed by camp id.
	Camps(ctx context.Context) (map[string]Camp, error)

	// CampLocations returns the location set for a calendar year, keyed by
	// location id.
	CampLocations(ctx context.Context, year int) (map[string]CampLocation, error)

	// Preferences returns the user's stored weather preference overrides.
	Preferences(ctx context.Context, uid string) (StoredPreferences, error)
}
