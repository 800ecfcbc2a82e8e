// Package location resolves a site address into the governing jurisdiction,
// flood zone, wind zone, height restrictions and special-district obligations.
// Every external dependency is individually fault-tolerant: a geocoder or
// hazard-API failure degrades confidence and falls back to static heuristics,
// but analysis always completes.
package location

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/floodmap"
	"github.com/jonathan/permit-engine/internal/geocode"
	"github.com/jonathan/permit-engine/internal/geodata"
	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/types"
)

// Wind-design constants. The coastal split is a single longitude threshold, a
// documented simplification of the FBC wind-borne debris region boundary; do
// not sharpen it without new authoritative data.
const (
	coastalLongitudeThreshold = -82.55

	coastalWindSpeedMph = 150
	inlandWindSpeedMph  = 130

	coastalWindZoneLabel = "wind-borne debris region"
	inlandWindZoneLabel  = "inland wind zone"
)

// Airport height-restriction constants
const (
	airportRestrictionRadiusMiles = 10.0
	airportMaxHeightFt            = 35.0
)

// Analyzer is the location-intelligence component. Stateless between calls;
// safe for concurrent use.
type Analyzer struct {
	tables   *geodata.Tables
	geocoder geocode.Geocoder
	floods   floodmap.Service
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewAnalyzer wires an analyzer from its collaborators. A nil tables argument
// selects the built-in service-area tables; geocoder and floods may be nil,
// in which case the corresponding heuristic fallback is used unconditionally.
func NewAnalyzer(tables *geodata.Tables, geocoder geocode.Geocoder, floods floodmap.Service, logger *zap.Logger, metrics *observability.Metrics) *Analyzer {
	if tables == nil {
		tables = geodata.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &Analyzer{
		tables:   tables,
		geocoder: geocoder,
		floods:   floods,
		logger:   logger,
		metrics:  metrics,
	}
}

// Analyze resolves an address into a complete LocationAnalysis. It never
// fails for malformed geographic input: unknown cities and provider outages
// produce a best-effort result with downgraded confidence and warnings.
func (a *Analyzer) Analyze(ctx context.Context, street, city, state, zip string) *types.LocationAnalysis {
	analysis := &types.LocationAnalysis{
		Confidence: types.ConfidenceHigh,
		Warnings:   []string{},
	}

	county := a.tables.County(city)
	knownCity := a.tables.KnownCity(city)

	address := types.SiteAddress{
		Street: street,
		City:   city,
		County: county,
		State:  state,
		Zip:    zip,
	}

	// Step 1: geocode, with centroid fallback
	coords, geocoded := a.resolveCoordinates(ctx, &address, analysis)
	address.Coordinates = &coords
	analysis.Address = address

	if !knownCity {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
			"City %q is not in the service-area tables; defaulting to %s County", city, county))
		if !geocoded {
			analysis.Confidence = types.ConfidenceLow
		} else if analysis.Confidence == types.ConfidenceHigh {
			analysis.Confidence = types.ConfidenceMedium
		}
	}

	// Steps 2-7 are pure given the resolved coordinate
	analysis.Jurisdiction = a.detectJurisdiction(city, county)
	analysis.FloodZone = a.detectFloodZone(ctx, coords, analysis)
	analysis.Coastal = detectCoastal(coords)
	analysis.HeightRestriction = a.detectHeightRestriction(coords)
	analysis.SpecialDistricts = a.detectSpecialDistricts(city, coords)

	// Step 8: forms and warnings derived from the detection results
	analysis.RequiredForms = deriveRequiredForms(analysis)
	deriveWarnings(analysis)

	a.logger.Info("location analysis complete",
		zap.String("city", city),
		zap.String("county", county),
		zap.String("flood_zone", analysis.FloodZone.Zone),
		zap.Bool("coastal", analysis.Coastal.IsCoastal),
		zap.String("confidence", string(analysis.Confidence)),
	)
	return analysis
}

// resolveCoordinates attempts precision geocoding and falls back to the
// centroid tables. The boolean reports whether the precise geocode succeeded.
func (a *Analyzer) resolveCoordinates(ctx context.Context, address *types.SiteAddress, analysis *types.LocationAnalysis) (types.Coordinates, bool) {
	if a.geocoder != nil {
		coords, err := a.geocoder.Geocode(ctx, address.FullAddress())
		if err == nil && coords != nil {
			return *coords, true
		}
		if err != nil {
			a.logger.Warn("geocoding failed, using centroid fallback", zap.Error(err))
			a.metrics.ProviderFallbacks.WithLabelValues("geocoder").Inc()
		}
	}

	analysis.Warnings = append(analysis.Warnings,
		"Address could not be precisely geocoded; using approximate city coordinates")
	if analysis.Confidence == types.ConfidenceHigh {
		analysis.Confidence = types.ConfidenceMedium
	}
	return a.tables.Centroid(address.City), false
}

// detectJurisdiction determines the permitting authority. Incorporated
// municipalities carry both a city and county authority; unincorporated land
// is county-only. The permit office string is never empty.
func (a *Analyzer) detectJurisdiction(city, county string) types.JurisdictionInfo {
	office := a.tables.PermitOffice(city, county)
	if a.tables.IsIncorporated(city) {
		return types.JurisdictionInfo{
			Type:               types.JurisdictionIncorporated,
			PrimaryAuthority:   fmt.Sprintf("City of %s", titleCase(city)),
			SecondaryAuthority: fmt.Sprintf("%s County", county),
			PermitOffice:       office,
		}
	}
	return types.JurisdictionInfo{
		Type:             types.JurisdictionUnincorporated,
		PrimaryAuthority: fmt.Sprintf("%s County", county),
		PermitOffice:     office,
	}
}

// detectFloodZone queries the hazard layer, falling back to the waterfront
// bounding-box heuristic on any failure
func (a *Analyzer) detectFloodZone(ctx context.Context, coords types.Coordinates, analysis *types.LocationAnalysis) types.FloodZoneInfo {
	if a.floods != nil {
		record, err := a.floods.LookupZone(ctx, coords.Latitude, coords.Longitude)
		if err == nil && record != nil {
			return interpretZone(record)
		}
		if err != nil {
			a.logger.Warn("flood zone lookup failed, using coordinate heuristic", zap.Error(err))
			a.metrics.ProviderFallbacks.WithLabelValues("floodmap").Inc()
		}
	}

	analysis.Warnings = append(analysis.Warnings,
		"Flood zone service unavailable; zone estimated from coordinates and should be verified against the FIRM panel")
	if analysis.Confidence == types.ConfidenceHigh {
		analysis.Confidence = types.ConfidenceMedium
	}
	return heuristicZone(coords)
}

// detectCoastal splits coastal from inland sites on the longitude threshold
func detectCoastal(coords types.Coordinates) types.CoastalInfo {
	if coords.Longitude < coastalLongitudeThreshold {
		return types.CoastalInfo{
			IsCoastal:               true,
			DesignWindSpeedMph:      coastalWindSpeedMph,
			RequiresWindCalculation: true,
			WindZone:                coastalWindZoneLabel,
		}
	}
	return types.CoastalInfo{
		IsCoastal:          false,
		DesignWindSpeedMph: inlandWindSpeedMph,
		WindZone:           inlandWindZoneLabel,
	}
}

// detectHeightRestriction flags sites within the restriction radius of a
// known airport. When several airports are in range the nearest wins.
func (a *Analyzer) detectHeightRestriction(coords types.Coordinates) types.HeightRestrictionInfo {
	var nearest *geodata.Airport
	nearestDist := airportRestrictionRadiusMiles

	for i := range a.tables.Airports {
		airport := &a.tables.Airports[i]
		dist := haversineMiles(coords.Latitude, coords.Longitude,
			airport.Coordinates.Latitude, airport.Coordinates.Longitude)
		if dist <= nearestDist {
			nearest = airport
			nearestDist = dist
		}
	}

	if nearest == nil {
		return types.HeightRestrictionInfo{}
	}
	return types.HeightRestrictionInfo{
		HasRestriction: true,
		MaxHeightFt:    airportMaxHeightFt,
		Reason:         types.HeightReasonAirport,
		NearbyLandmark: nearest.Name,
		DistanceMiles:  roundTenth(nearestDist),
	}
}

// detectSpecialDistricts checks the static district tables. Sites west of the
// coastal threshold additionally carry environmental review.
func (a *Analyzer) detectSpecialDistricts(city string, coords types.Coordinates) types.SpecialDistrictInfo {
	key := geodata.NormalizeCity(city)
	info := types.SpecialDistrictInfo{Reasons: []string{}}

	if a.tables.HistoricCities[key] {
		info.Historic = true
		info.Reasons = append(info.Reasons, fmt.Sprintf("%s has designated historic districts requiring exterior equipment review", titleCase(city)))
	}
	if a.tables.HOACities[key] {
		info.HasHOA = true
		info.Reasons = append(info.Reasons, "Area has a high density of HOA communities; association approval is commonly required")
	}
	if a.tables.EnvReviewCities[key] {
		info.EnvironmentalReview = true
		info.Reasons = append(info.Reasons, fmt.Sprintf("%s enforces coastal environmental review for exterior work", titleCase(city)))
	} else if coords.Longitude < coastalLongitudeThreshold {
		info.EnvironmentalReview = true
		info.Reasons = append(info.Reasons, "Coastal location may trigger environmental review for exterior equipment placement")
	}
	return info
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
