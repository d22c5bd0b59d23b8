package domain

// Status describes the steady state of a weather slot or resolution outcome.
type Status string

const (
	StatusLoading              Status = "loading"
	StatusOK                   Status = "ok"
	StatusNoUser               Status = "no_user"
	StatusNoCampSelected       Status = "no_camp_selected"
	StatusUsingDefaultLocation Status = "using_default_location"
	StatusError                Status = "error"
)

// DefaultLocation is the fallback shown when a camp has no resolvable active
// location for the current year.
var DefaultLocation = WeatherLocation{
	Name:      "Prince George, BC",
	Latitude:  53.916943,
	Longitude: -122.749443,
}

// ResolveInput carries everything location resolution depends on. Locations
// must be the camp location set for the current calendar year.
type ResolveInput struct {
	User         *UserProfile
	ActiveCampID string // persisted selector; may be stale or empty
	Camps        map[string]Camp
	Locations    map[string]CampLocation
	Preferences  Preferences
}

// Resolution is the resolver's output: the locations to track and the
// resolution status for the primary slot.
type Resolution struct {
	Primary   *WeatherLocation
	Secondary *WeatherLocation
	Status    Status
}

// ResolveLocations derives the primary and secondary weather locations from
// the given records. It is a pure derivation: it holds no state between
// calls, so a camp switch mid-flight re-derives from scratch and no stale
// secondary location from a previous camp can leak through.
func ResolveLocations(in ResolveInput) Resolution {
	if in.User == nil || in.User.UID == "" {
		return Resolution{Status: StatusNoUser}
	}

	camp, ok := activeCamp(in)
	if !ok {
		return Resolution{Status: StatusNoCampSelected}
	}

	campLoc, ok := in.Locations[camp.ActiveLocationID]
	if !ok || camp.ActiveLocationID == "" {
		fallback := DefaultLocation
		return Resolution{Primary: &fallback, Status: StatusUsingDefaultLocation}
	}

	primary := WeatherLocation{
		Name:      campLoc.Name,
		Latitude:  campLoc.Latitude,
		Longitude: campLoc.Longitude,
	}

	return Resolution{
		Primary:   &primary,
		Secondary: secondaryLocation(campLoc, in.Preferences),
		Status:    StatusOK,
	}
}

// activeCamp validates the persisted selector: it must name a camp the user is
// still assigned to and that still exists in the directory.
func activeCamp(in ResolveInput) (Camp, bool) {
	if in.ActiveCampID == "" {
		return Camp{}, false
	}

	assigned := false
	for _, id := range in.User.AssignedCampIDs {
		if id == in.ActiveCampID {
			assigned = true
			break
		}
	}
	if !assigned {
		return Camp{}, false
	}

	camp, ok := in.Camps[in.ActiveCampID]
	return camp, ok
}

// secondaryLocation resolves the user's secondary-location preference against
// the real resolved camp location. The fallback default never contributes a
// secondary location.
func secondaryLocation(campLoc CampLocation, prefs Preferences) *WeatherLocation {
	if prefs.SecondaryLocationKey == "" || len(campLoc.SecondaryLocations) == 0 {
		return nil
	}
	sec, ok := campLoc.SecondaryLocations[prefs.SecondaryLocationKey]
	if !ok {
		return nil
	}
	return &WeatherLocation{
		Name:      sec.Name,
		Latitude:  sec.Latitude,
		Longitude: sec.Longitude,
	}
}
