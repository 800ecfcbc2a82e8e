package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/permit-engine/internal/classifier"
	"github.com/jonathan/permit-engine/internal/engine"
	"github.com/jonathan/permit-engine/internal/location"
)

// newTestServer spins up the full handler chain over an offline engine:
// nil providers make the analyzer fall back to its static tables
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	analyzer := location.NewAnalyzer(nil, nil, nil, nil, nil)
	eng := engine.New(analyzer, classifier.New(nil, nil, nil), nil, nil)
	s := New(Config{Port: 0}, eng, nil)
	srv := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(func() {
		srv.Close()
		s.rateLimiter.Stop()
	})
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "response body: %s", raw)
	}
	return resp, parsed
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleAnalyzeLocation(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/location/analyze",
		`{"street": "100 N Franklin St", "city": "Tampa", "state": "FL"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	address := body["address"].(map[string]any)
	assert.Equal(t, "Hillsborough", address["county"])
	assert.NotEmpty(t, body["flood_zone"])
}

func TestHandleAnalyzeLocation_MissingStreet(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/location/analyze", `{"city": "Tampa"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "street")
}

func TestHandleAnalyzeLocation_MalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv, "/v1/location/analyze", `{"street":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleAnalyzeLocation_UnknownField(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/location/analyze",
		`{"street": "100 N Franklin St", "streetname": "oops"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "unknown field")
}

func TestHandleClassifyPermit(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/permits/classify",
		`{"equipment_type": "central-ac", "job_type": "replacement", "tonnage": 3}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hvac-residential-replacement", body["category"])
	assert.Equal(t, "BLD-HVAC-RES-REPL", body["jurisdiction_code"])
	assert.Equal(t, "rules", body["decision_method"])
}

func TestHandleClassifyPermit_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv, "/v1/permits/classify", `{"tonnage": 3}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCalculateLoad_DefaultVariant(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/loads/calculate",
		`{"building": {"square_feet": 1500}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2.5, body["recommended_tonnage"])
}

func TestHandleCalculateLoad_ManualJ(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/loads/calculate",
		`{"building": {"square_feet": 2000, "year_built": 1990, "city": "Tampa"}, "variant": "manual-j"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "high", body["confidence"])
	assert.Greater(t, body["sensible_btu"].(float64), 0.0)
}

func TestHandleCalculateLoad_UnknownVariant(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/loads/calculate",
		`{"building": {"square_feet": 1500}, "variant": "manual-s"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "variant")
}

func TestHandleCalculateLoad_InvalidBuilding(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv, "/v1/loads/calculate", `{"building": {"square_feet": 0}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleDetermine(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/determinations", `{
		"job": {
			"equipment_type": "heat-pump",
			"job_type": "replacement",
			"tonnage": 3,
			"address": {"street": "100 N Franklin St", "city": "Tampa", "state": "FL"}
		},
		"building": {"square_feet": 2000, "year_built": 1990}
	}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["id"])
	assert.NotNil(t, body["location"])
	assert.NotNil(t, body["classification"])
	assert.NotNil(t, body["load"])
}

func TestHandleDetermine_NoBuilding(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/v1/determinations", `{
		"job": {
			"equipment_type": "furnace",
			"job_type": "replacement",
			"tonnage": 2.5,
			"address": {"street": "100 N Franklin St", "city": "Brandon"}
		}
	}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Nil(t, body["load"])
}

func TestHandleDetermine_InvalidJob(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv, "/v1/determinations", `{"job": {"tonnage": 3}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/determinations")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRateLimitHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv, "/v1/loads/calculate", `{"building": {"square_feet": 1200}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))
}
