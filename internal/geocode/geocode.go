// Package geocode resolves street addresses to coordinates via the US Census
// Bureau geocoder. The client is time-bounded and never retries: callers fall
// back to static centroid tables on any failure.
package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/types"
)

// DefaultBaseURL is the production Census Bureau geocoding endpoint
const DefaultBaseURL = "https://geocoding.geo.census.gov"

// DefaultTimeout bounds every geocoding call. A timeout is treated as an
// ordinary failure by callers, not a fatal error.
const DefaultTimeout = 5 * time.Second

// Geocoder resolves a one-line address into coordinates
type Geocoder interface {
	Geocode(ctx context.Context, fullAddress string) (*types.Coordinates, error)
}

// Error represents a geocoding failure
type Error struct {
	Address string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("geocode error for %q: %s: %v", e.Address, e.Message, e.Cause)
	}
	return fmt.Sprintf("geocode error for %q: %s", e.Address, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CensusClient implements Geocoder against the Census Bureau one-line
// address endpoint
type CensusClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewCensusClient creates a geocoding client. An empty baseURL selects the
// production endpoint.
func NewCensusClient(baseURL string, logger *zap.Logger) *CensusClient {
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

	return &CensusClient{httpClient: client, logger: logger}
}

// censusResponse mirrors the subset of the geocoder response we read
type censusResponse struct {
	Result struct {
		AddressMatches []struct {
			Coordinates struct {
				X float64 `json:"x"` // longitude
				Y float64 `json:"y"` // latitude
			} `json:"coordinates"`
		} `json:"addressMatches"`
	} `json:"result"`
}

// Geocode resolves an address to coordinates. An address the service cannot
// match is an error; callers substitute a centroid.
func (c *CensusClient) Geocode(ctx context.Context, fullAddress string) (*types.Coordinates, error) {
	var parsed censusResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address":   fullAddress,
			"benchmark": "Public_AR_Current",
			"format":    "json",
		}).
		SetResult(&parsed).
		Get("/geocoder/locations/onelineaddress")
	if err != nil {
		return nil, &Error{Address: fullAddress, Message: "request failed", Cause: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &Error{Address: fullAddress, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode())}
	}
	if len(parsed.Result.AddressMatches) == 0 {
		return nil, &Error{Address: fullAddress, Message: "no address match"}
	}

	match := parsed.Result.AddressMatches[0]
	coords := &types.Coordinates{
		Latitude:  match.Coordinates.Y,
		Longitude: match.Coordinates.X,
	}
	c.logger.Debug("geocoded address",
		zap.String("address", fullAddress),
		zap.Float64("lat", coords.Latitude),
		zap.Float64("lng", coords.Longitude),
	)
	return coords, nil
}
