// Package floodmap looks up FEMA flood-zone designations by coordinate via
// the National Flood Hazard Layer. The client is time-bounded and never
// retries: callers fall back to a coordinate heuristic on any failure.
package floodmap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production FEMA NFHL map service
const DefaultBaseURL = "https://hazards.fema.gov"

// DefaultTimeout bounds every hazard-layer call
const DefaultTimeout = 5 * time.Second

// floodZoneLayerPath is the NFHL flood hazard zones query layer
const floodZoneLayerPath = "/arcgis/rest/services/public/NFHL/MapServer/28/query"

// ZoneRecord is the raw designation returned by the hazard layer
type ZoneRecord struct {
	Zone      string
	Subtype   string
	FIRMPanel string
}

// Service looks up the flood designation for a point
type Service interface {
	LookupZone(ctx context.Context, lat, lng float64) (*ZoneRecord, error)
}

// Error represents a hazard-layer lookup failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("flood zone lookup failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("flood zone lookup failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NFHLClient implements Service against the FEMA National Flood Hazard Layer
type NFHLClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewNFHLClient creates a hazard-layer client. An empty baseURL selects the
// production endpoint.
func NewNFHLClient(baseURL string, logger *zap.Logger) *NFHLClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")

	return &NFHLClient{httpClient: client, logger: logger}
}

// nfhlResponse mirrors the subset of the identify response we read
type nfhlResponse struct {
	Features []struct {
		Attributes struct {
			FloodZone   string `json:"FLD_ZONE"`
			ZoneSubtype string `json:"ZONE_SUBTY"`
			FIRMPanel   string `json:"FIRM_PAN"`
		} `json:"attributes"`
	} `json:"features"`
}

// LookupZone queries the flood hazard layer for a point. A point outside all
// mapped hazard polygons returns Zone X rather than an error; transport and
// service problems return an error for the caller to recover from.
func (c *NFHLClient) LookupZone(ctx context.Context, lat, lng float64) (*ZoneRecord, error) {
	var parsed nfhlResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"geometry":       fmt.Sprintf("%f,%f", lng, lat),
			"geometryType":   "esriGeometryPoint",
			"inSR":           "4326",
			"spatialRel":     "esriSpatialRelIntersects",
			"outFields":      "FLD_ZONE,ZONE_SUBTY,FIRM_PAN",
			"returnGeometry": "false",
			"f":              "json",
		}).
		SetResult(&parsed).
		Get(floodZoneLayerPath)
	if err != nil {
		return nil, &Error{Message: "request failed", Cause: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &Error{Message: fmt.Sprintf("HTTP status %d", resp.StatusCode())}
	}

	if len(parsed.Features) == 0 {
		// Outside all mapped hazard polygons
		return &ZoneRecord{Zone: "X"}, nil
	}

	attrs := parsed.Features[0].Attributes
	record := &ZoneRecord{
		Zone:      strings.TrimSpace(attrs.FloodZone),
		Subtype:   strings.TrimSpace(attrs.ZoneSubtype),
		FIRMPanel: strings.TrimSpace(attrs.FIRMPanel),
	}
	if record.Zone == "" {
		record.Zone = "X"
	}
	c.logger.Debug("flood zone lookup",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.String("zone", record.Zone),
		zap.String("panel", record.FIRMPanel),
	)
	return record, nil
}
