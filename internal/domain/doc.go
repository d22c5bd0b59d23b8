// Package domain models camp weather locations and forecast data.
//
// # Location resolution
//
// Each camp user is assigned to one or more camps. A durable selector (stored
// out-of-band, alongside the user's profile) names the camp the user last
// picked. The selector is honored only while it names a camp the user is still
// assigned to AND that still exists in the camp directory; otherwise the user
// counts as having no camp selected.
//
// Camps track weather through per-year location sets: the record set at
// campLocations/{year} carries, per location id, the place name, WGS-84
// coordinates, and an optional map of secondary locations keyed by a short
// label (e.g. "trailhead", "lake"). A camp's activeLocationId points into the
// current year's set. When the pointer is missing or dangling the resolver
// falls back to a fixed default location (Prince George, BC) so the weather
// view is never empty for a signed-in camper.
//
// # Forecast data
//
// Forecasts come from the Open-Meteo forecast API. Hourly timestamps are local
// ISO 8601 without a zone suffix ("2026-08-28T07:00") because requests use
// timezone=auto. Weather codes follow the WMO 4677 table (0 clear, 1-3 cloud
// cover, 51-67 drizzle/rain, 71-77 snow, 95+ thunderstorm).
//
// # Six-hour day parts
//
// Hourly data is summarized into four fixed day parts by local hour of day:
// Morning [6,12), Afternoon [12,18), Evening [18,24), Overnight [0,6).
// Temperature and wind speed are averaged and rounded, precipitation
// probability takes the bucket maximum (a spike must not be smoothed away),
// and the weather code is the bucket mode with ties broken by first
// appearance. Day parts with no contributing hours are omitted.
package domain
