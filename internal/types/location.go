// Package types provides type definitions for structured data used throughout the permit engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ConfidenceLevel expresses how much trust downstream consumers should place in a result
type ConfidenceLevel string

// Confidence levels, ordered from most to least trustworthy
const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Coordinates is a WGS84 latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SiteAddress identifies the property a permit package is being assembled for.
// County is always one of the serviced-region counties; Coordinates is never
// nil on an analysis result (geocoding failures fall back to a county
// centroid).
type SiteAddress struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	County      string       `json:"county"`
	State       string       `json:"state"`
	Zip         string       `json:"zip"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// FullAddress renders the address as a single geocodable line
func (a *SiteAddress) FullAddress() string {
	s := a.Street
	if a.City != "" {
		s += ", " + a.City
	}
	if a.State != "" {
		s += ", " + a.State
	}
	if a.Zip != "" {
		s += " " + a.Zip
	}
	return s
}

// JurisdictionType distinguishes incorporated municipalities from unincorporated county land
type JurisdictionType string

// Jurisdiction types
const (
	JurisdictionIncorporated   JurisdictionType = "incorporated"
	JurisdictionUnincorporated JurisdictionType = "unincorporated"
)

// JurisdictionInfo names the authorities responsible for issuing the permit.
// Derived per request, never persisted. PermitOffice is never empty.
type JurisdictionInfo struct {
	Type               JurisdictionType `json:"type"`
	PrimaryAuthority   string           `json:"primary_authority"`
	SecondaryAuthority string           `json:"secondary_authority,omitempty"`
	PermitOffice       string           `json:"permit_office"`
}

// FloodZoneInfo describes the FEMA flood designation for the site.
// Invariant: RequiresElevationCertificate implies IsFloodZone.
type FloodZoneInfo struct {
	Zone                         string   `json:"zone"`
	IsFloodZone                  bool     `json:"is_flood_zone"`
	IsModerateRisk               bool     `json:"is_moderate_risk"`
	RequiresElevationCertificate bool     `json:"requires_elevation_certificate"`
	BaseFloodElevationFt         *float64 `json:"base_flood_elevation_ft,omitempty"`
	FIRMPanel                    string   `json:"firm_panel,omitempty"`
}

// CoastalInfo describes wind-design requirements for the site
type CoastalInfo struct {
	IsCoastal               bool   `json:"is_coastal"`
	DesignWindSpeedMph      int    `json:"design_wind_speed_mph"`
	RequiresWindCalculation bool   `json:"requires_wind_calculation"`
	WindZone                string `json:"wind_zone"`
}

// HeightRestrictionReason explains why a height restriction applies
type HeightRestrictionReason string

// Height restriction reasons
const (
	HeightReasonAirport  HeightRestrictionReason = "airport"
	HeightReasonHistoric HeightRestrictionReason = "historic"
	HeightReasonZoning   HeightRestrictionReason = "zoning"
	HeightReasonCoastal  HeightRestrictionReason = "coastal"
)

// HeightRestrictionInfo flags equipment-height limits near protected airspace or districts
type HeightRestrictionInfo struct {
	HasRestriction bool                    `json:"has_restriction"`
	MaxHeightFt    float64                 `json:"max_height_ft,omitempty"`
	Reason         HeightRestrictionReason `json:"reason,omitempty"`
	NearbyLandmark string                  `json:"nearby_landmark,omitempty"`
	DistanceMiles  float64                 `json:"distance_miles,omitempty"`
}

// SpecialDistrictInfo flags review obligations beyond the base permit
type SpecialDistrictInfo struct {
	Historic            bool     `json:"historic"`
	HasHOA              bool     `json:"has_hoa"`
	EnvironmentalReview bool     `json:"environmental_review"`
	Reasons             []string `json:"reasons"`
}

// LocationAnalysis is the complete location-intelligence result for one site.
// Constructed fresh per request and immutable once returned; the engine holds
// no reference to it after the response is built.
type LocationAnalysis struct {
	Address           SiteAddress           `json:"address"`
	Jurisdiction      JurisdictionInfo      `json:"jurisdiction"`
	FloodZone         FloodZoneInfo         `json:"flood_zone"`
	Coastal           CoastalInfo           `json:"coastal"`
	HeightRestriction HeightRestrictionInfo `json:"height_restriction"`
	SpecialDistricts  SpecialDistrictInfo   `json:"special_districts"`
	RequiredForms     []string              `json:"required_forms"`
	Confidence        ConfidenceLevel       `json:"confidence"`
	Warnings          []string              `json:"warnings"`
}
