package domain

// Preferences are the effective weather preferences after merging stored
// overrides into the defaults.
type Preferences struct {
	// SecondaryLocationKey names an entry in the active camp location's
	// SecondaryLocations map. Empty means no secondary location.
	SecondaryLocationKey string `json:"secondaryLocationKey"`

	// TemperatureUnit is "celsius" or "fahrenheit".
	TemperatureUnit string `json:"temperatureUnit"`

	// WindSpeedUnit is "kmh", "ms", or "mph".
	WindSpeedUnit string `json:"windSpeedUnit"`
}

// DefaultPreferences returns the preferences applied when a user has no stored
// overrides.
func DefaultPreferences() Preferences {
	return Preferences{
		SecondaryLocationKey: "",
		TemperatureUnit:      "celsius",
		WindSpeedUnit:        "kmh",
	}
}

// StoredPreferences is the raw stored preference record. Fields are pointers
// so an absent field is distinguishable from an explicit zero value and merges
// never silently drop defaults.
type StoredPreferences struct {
	SecondaryLocationKey *string `json:"secondaryLocationKey,omitempty"`
	TemperatureUnit      *string `json:"temperatureUnit,omitempty"`
	WindSpeedUnit        *string `json:"windSpeedUnit,omitempty"`
}

// Merge applies the stored overrides field-by-field on top of base.
func (s StoredPreferences) Merge(base Preferences) Preferences {
	out := base
	if s.SecondaryLocationKey != nil {
		out.SecondaryLocationKey = *s.SecondaryLocationKey
	}
	if s.TemperatureUnit != nil {
		out.TemperatureUnit = *s.TemperatureUnit
	}
	if s.WindSpeedUnit != nil {
		out.WindSpeedUnit = *s.WindSpeedUnit
	}
	return out
}
