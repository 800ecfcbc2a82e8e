package location

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/permit-engine/internal/floodmap"
	"github.com/jonathan/permit-engine/internal/types"
)

// fakeGeocoder returns a fixed coordinate or a fixed error
type fakeGeocoder struct {
	coords *types.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*types.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

// fakeFloodService returns a fixed zone record or a fixed error
type fakeFloodService struct {
	record *floodmap.ZoneRecord
	err    error
}

func (f *fakeFloodService) LookupZone(_ context.Context, _, _ float64) (*floodmap.ZoneRecord, error) {
	return f.record, f.err
}

func TestAnalyze_IncorporatedCity(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &types.Coordinates{Latitude: 27.9420, Longitude: -82.4620}}
	floods := &fakeFloodService{record: &floodmap.ZoneRecord{Zone: "X"}}
	analyzer := NewAnalyzer(nil, geocoder, floods, nil, nil)

	analysis := analyzer.Analyze(context.Background(), "123 Main St", "Tampa", "FL", "33602")
	require.NotNil(t, analysis)

	assert.Equal(t, "Hillsborough", analysis.Address.County)
	assert.Equal(t, types.JurisdictionIncorporated, analysis.Jurisdiction.Type)
	assert.Equal(t, "City of Tampa", analysis.Jurisdiction.PrimaryAuthority)
	assert.Equal(t, "Hillsborough County", analysis.Jurisdiction.SecondaryAuthority)
	assert.Equal(t, "City of Tampa Construction Services Center", analysis.Jurisdiction.PermitOffice)
	assert.Equal(t, "X", analysis.FloodZone.Zone)
	assert.Equal(t, types.ConfidenceHigh, analysis.Confidence)
	assert.Equal(t, 1, geocoder.calls)
}

func TestAnalyze_UnincorporatedArea(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &types.Coordinates{Latitude: 27.9378, Longitude: -82.2859}}
	floods := &fakeFloodService{record: &floodmap.ZoneRecord{Zone: "X"}}
	analyzer := NewAnalyzer(nil, geocoder, floods, nil, nil)

	analysis := analyzer.Analyze(context.Background(), "500 Oak Ave", "Brandon", "FL", "33511")

	assert.Equal(t, types.JurisdictionUnincorporated, analysis.Jurisdiction.Type)
	assert.Equal(t, "Hillsborough County", analysis.Jurisdiction.PrimaryAuthority)
	assert.Empty(t, analysis.Jurisdiction.SecondaryAuthority)
	assert.Equal(t, "Hillsborough County Development Services", analysis.Jurisdiction.PermitOffice)
	assert.Contains(t, analysis.RequiredForms, FormCountyApplication)
	assert.NotContains(t, analysis.RequiredForms, FormMunicipalApplication)
}

// Provider outages never fail the analysis; they degrade confidence and
// leave warnings behind.
func TestAnalyze_GeocoderFailure(t *testing.T) {
	geocoder := &fakeGeocoder{err: fmt.Errorf("service unavailable")}
	floods := &fakeFloodService{err: fmt.Errorf("timeout")}
	analyzer := NewAnalyzer(nil, geocoder, floods, nil, nil)

	analysis := analyzer.Analyze(context.Background(), "123 Main St", "Tampa", "FL", "33602")
	require.NotNil(t, analysis)

	// Centroid fallback puts downtown Tampa outside the waterfront boxes
	assert.Equal(t, "X", analysis.FloodZone.Zone)
	assert.NotEqual(t, types.ConfidenceHigh, analysis.Confidence)
	assert.NotEmpty(t, analysis.Warnings)
	require.NotNil(t, analysis.Address.Coordinates)
	assert.InDelta(t, 27.9506, analysis.Address.Coordinates.Latitude, 1e-4)

	// The rest of the analysis is still complete
	assert.NotEmpty(t, analysis.Jurisdiction.PermitOffice)
	assert.NotEmpty(t, analysis.RequiredForms)
	assert.NotZero(t, analysis.Coastal.DesignWindSpeedMph)
}

func TestAnalyze_UnknownCityEverythingDown(t *testing.T) {
	geocoder := &fakeGeocoder{err: fmt.Errorf("service unavailable")}
	floods := &fakeFloodService{err: fmt.Errorf("timeout")}
	analyzer := NewAnalyzer(nil, geocoder, floods, nil, nil)

	analysis := analyzer.Analyze(context.Background(), "1 Somewhere Rd", "Frostproof", "FL", "")
	require.NotNil(t, analysis)

	assert.Equal(t, "Hillsborough", analysis.Address.County)
	assert.Equal(t, types.ConfidenceLow, analysis.Confidence)
	assert.Equal(t, "X", analysis.FloodZone.Zone)
	assert.NotEmpty(t, analysis.Jurisdiction.PermitOffice)
}

func TestAnalyze_NilProviders(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil, nil, nil, nil)

	analysis := analyzer.Analyze(context.Background(), "123 Main St", "St Petersburg", "FL", "33701")
	require.NotNil(t, analysis)

	assert.Equal(t, "Pinellas", analysis.Address.County)
	assert.Equal(t, types.ConfidenceMedium, analysis.Confidence)
	require.NotNil(t, analysis.Address.Coordinates)
}

func TestAnalyze_CoastalSplit(t *testing.T) {
	floods := &fakeFloodService{record: &floodmap.ZoneRecord{Zone: "X"}}

	// St Petersburg sits west of the coastal threshold
	coastal := NewAnalyzer(nil,
		&fakeGeocoder{coords: &types.Coordinates{Latitude: 27.7676, Longitude: -82.6403}},
		floods, nil, nil).
		Analyze(context.Background(), "1 Beach Dr", "St Petersburg", "FL", "")
	assert.True(t, coastal.Coastal.IsCoastal)
	assert.Equal(t, 150, coastal.Coastal.DesignWindSpeedMph)
	assert.True(t, coastal.Coastal.RequiresWindCalculation)
	assert.Contains(t, coastal.RequiredForms, FormWindLoadWorksheet)

	// Brandon is inland
	inland := NewAnalyzer(nil,
		&fakeGeocoder{coords: &types.Coordinates{Latitude: 27.9378, Longitude: -82.2859}},
		floods, nil, nil).
		Analyze(context.Background(), "500 Oak Ave", "Brandon", "FL", "")
	assert.False(t, inland.Coastal.IsCoastal)
	assert.Equal(t, 130, inland.Coastal.DesignWindSpeedMph)
	assert.False(t, inland.Coastal.RequiresWindCalculation)
	assert.NotContains(t, inland.RequiredForms, FormWindLoadWorksheet)
}

func TestAnalyze_FloodZoneForms(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &types.Coordinates{Latitude: 27.7253, Longitude: -82.7412}}
	floods := &fakeFloodService{record: &floodmap.ZoneRecord{Zone: "AE", FIRMPanel: "12103C0193H"}}
	analyzer := NewAnalyzer(nil, geocoder, floods, nil, nil)

	analysis := analyzer.Analyze(context.Background(), "100 Gulf Blvd", "St Pete Beach", "FL", "33706")

	assert.True(t, analysis.FloodZone.IsFloodZone)
	assert.True(t, analysis.FloodZone.RequiresElevationCertificate)
	assert.Contains(t, analysis.RequiredForms, FormElevationCertificate)
	require.NotNil(t, analysis.FloodZone.BaseFloodElevationFt)
	assert.Equal(t, "12103C0193H", analysis.FloodZone.FIRMPanel)

	// Barrier island location also carries environmental review
	assert.True(t, analysis.SpecialDistricts.EnvironmentalReview)
	assert.Contains(t, analysis.RequiredForms, FormEnvironmentalReview)
}

func TestAnalyze_AirportHeightRestriction(t *testing.T) {
	floods := &fakeFloodService{record: &floodmap.ZoneRecord{Zone: "X"}}

	// Downtown Tampa is within ten miles of several airports; the nearest
	// (Peter O. Knight) wins
	near := NewAnalyzer(nil,
		&fakeGeocoder{coords: &types.Coordinates{Latitude: 27.9506, Longitude: -82.4572}},
		floods, nil, nil).
		Analyze(context.Background(), "123 Main St", "Tampa", "FL", "")
	require.True(t, near.HeightRestriction.HasRestriction)
	assert.Equal(t, types.HeightReasonAirport, near.HeightRestriction.Reason)
	assert.Equal(t, "Peter O. Knight Airport", near.HeightRestriction.NearbyLandmark)
	assert.InDelta(t, 2.5, near.HeightRestriction.DistanceMiles, 0.1)
	assert.Equal(t, 35.0, near.HeightRestriction.MaxHeightFt)
	assert.Contains(t, near.RequiredForms, FormAirspaceHeightReview)

	// Zephyrhills is outside every restriction radius
	far := NewAnalyzer(nil,
		&fakeGeocoder{coords: &types.Coordinates{Latitude: 28.2336, Longitude: -82.1812}},
		floods, nil, nil).
		Analyze(context.Background(), "1 Airport Rd", "Zephyrhills", "FL", "")
	assert.False(t, far.HeightRestriction.HasRestriction)
	assert.NotContains(t, far.RequiredForms, FormAirspaceHeightReview)
}

func TestAnalyze_SpecialDistricts(t *testing.T) {
	floods := &fakeFloodService{record: &floodmap.ZoneRecord{Zone: "X"}}

	historic := NewAnalyzer(nil,
		&fakeGeocoder{coords: &types.Coordinates{Latitude: 27.9506, Longitude: -82.4572}},
		floods, nil, nil).
		Analyze(context.Background(), "1905 Columbus Dr", "Tampa", "FL", "")
	assert.True(t, historic.SpecialDistricts.Historic)
	assert.Contains(t, historic.RequiredForms, FormHistoricReview)

	hoa := NewAnalyzer(nil,
		&fakeGeocoder{coords: &types.Coordinates{Latitude: 28.2397, Longitude: -82.3279}},
		floods, nil, nil).
		Analyze(context.Background(), "2 Estancia Blvd", "Wesley Chapel", "FL", "")
	assert.True(t, hoa.SpecialDistricts.HasHOA)
	assert.Contains(t, hoa.RequiredForms, FormHOAApprovalLetter)
	assert.False(t, hoa.SpecialDistricts.Historic)
}

// Form derivation is a pure function of the detection results.
func TestDeriveRequiredForms(t *testing.T) {
	analysis := &types.LocationAnalysis{
		Jurisdiction: types.JurisdictionInfo{Type: types.JurisdictionIncorporated},
		FloodZone:    types.FloodZoneInfo{RequiresElevationCertificate: true, IsFloodZone: true},
		Coastal:      types.CoastalInfo{RequiresWindCalculation: true},
		SpecialDistricts: types.SpecialDistrictInfo{
			Historic: true, HasHOA: true, EnvironmentalReview: true,
		},
		HeightRestriction: types.HeightRestrictionInfo{HasRestriction: true},
	}

	forms := deriveRequiredForms(analysis)
	assert.Equal(t, []string{
		FormMunicipalApplication,
		FormElevationCertificate,
		FormWindLoadWorksheet,
		FormHistoricReview,
		FormHOAApprovalLetter,
		FormEnvironmentalReview,
		FormAirspaceHeightReview,
	}, forms)

	minimal := deriveRequiredForms(&types.LocationAnalysis{})
	assert.Equal(t, []string{FormCountyApplication}, minimal)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Tampa", titleCase("tampa"))
	assert.Equal(t, "St Pete Beach", titleCase("ST PETE BEACH"))
	assert.Equal(t, "", titleCase(""))
}
