package location

import (
	"strings"

	"github.com/jonathan/permit-engine/internal/floodmap"
	"github.com/jonathan/permit-engine/internal/types"
)

// provisionalBaseFloodElevationFt is a placeholder for zones that carry a
// defined base flood elevation. It is NOT an authoritative FEMA value; the
// real elevation must come from the FIRM panel during document generation.
const provisionalBaseFloodElevationFt = 9.0

// interpretZone classifies a raw hazard-layer record:
//   - zones prefixed A or V are the 1%-annual-chance high-risk zones and
//     require an elevation certificate
//   - V-prefixed zones additionally indicate coastal wave action
//   - AE, VE, AH and AO zones have a defined base flood elevation, recorded
//     here as a provisional placeholder
//   - shaded X / X500 / B zones are moderate risk: flagged but no certificate
//   - anything else is minimal-risk Zone X
//
// The returned info always satisfies: RequiresElevationCertificate implies
// IsFloodZone.
func interpretZone(record *floodmap.ZoneRecord) types.FloodZoneInfo {
	zone := strings.ToUpper(strings.TrimSpace(record.Zone))
	if zone == "" {
		zone = "X"
	}

	info := types.FloodZoneInfo{
		Zone:      zone,
		FIRMPanel: record.FIRMPanel,
	}

	highRisk := strings.HasPrefix(zone, "A") || strings.HasPrefix(zone, "V")
	if highRisk {
		info.IsFloodZone = true
		info.RequiresElevationCertificate = true
		if hasDefinedBFE(zone) {
			bfe := provisionalBaseFloodElevationFt
			info.BaseFloodElevationFt = &bfe
		}
		return info
	}

	if isModerateRisk(zone, record.Subtype) {
		// Moderate (0.2%-annual-chance) zones are flagged but need no
		// elevation certificate. Shaded X is only distinguishable from
		// plain X by the record subtype, so the flag carries that signal.
		info.IsModerateRisk = true
		return info
	}

	info.Zone = "X"
	return info
}

// hasDefinedBFE reports whether the zone code carries a base flood elevation
func hasDefinedBFE(zone string) bool {
	switch {
	case strings.HasPrefix(zone, "AE"), strings.HasPrefix(zone, "VE"),
		strings.HasPrefix(zone, "AH"), strings.HasPrefix(zone, "AO"):
		return true
	}
	return false
}

// isModerateRisk identifies shaded-X style moderate zones
func isModerateRisk(zone, subtype string) bool {
	if zone == "X500" || zone == "B" {
		return true
	}
	return zone == "X" && strings.Contains(strings.ToUpper(subtype), "0.2 PCT")
}

// waterfrontBox is a bounding region used by the offline heuristic
type waterfrontBox struct {
	name           string
	minLat, maxLat float64
	minLng, maxLng float64
}

// waterfrontBoxes are the shoreline regions the heuristic treats as flood
// zone AE when the hazard API is unavailable. Deliberately conservative:
// everything outside these boxes defaults to Zone X so inland properties are
// not falsely flagged.
var waterfrontBoxes = []waterfrontBox{
	{name: "Pinellas gulf beaches", minLat: 27.60, maxLat: 28.25, minLng: -82.92, maxLng: -82.73},
	{name: "Interbay peninsula", minLat: 27.85, maxLat: 27.95, minLng: -82.54, maxLng: -82.44},
	{name: "South Hillsborough bay shore", minLat: 27.68, maxLat: 27.80, minLng: -82.48, maxLng: -82.38},
	{name: "Manatee river mouth", minLat: 27.45, maxLat: 27.56, minLng: -82.70, maxLng: -82.55},
}

// heuristicZone is the API-failure fallback. Coordinates inside a defined
// waterfront box are flagged AE; everything else is Zone X.
func heuristicZone(coords types.Coordinates) types.FloodZoneInfo {
	for _, box := range waterfrontBoxes {
		if coords.Latitude >= box.minLat && coords.Latitude <= box.maxLat &&
			coords.Longitude >= box.minLng && coords.Longitude <= box.maxLng {
			bfe := provisionalBaseFloodElevationFt
			return types.FloodZoneInfo{
				Zone:                         "AE",
				IsFloodZone:                  true,
				RequiresElevationCertificate: true,
				BaseFloodElevationFt:         &bfe,
			}
		}
	}
	return types.FloodZoneInfo{Zone: "X"}
}
