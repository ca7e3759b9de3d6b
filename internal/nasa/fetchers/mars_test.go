package fetchers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

func newMarsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/insight_weather/", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("feedtype"))
		assert.Equal(t, "1.0", r.URL.Query().Get("ver"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestMarsFetchLatestSol(t *testing.T) {
	srv := newMarsServer(t, `{
		"sol_keys": ["1218", "1219"],
		"1218": {"AT": {"av": -80.1}, "HWS": {"av": 9.9}, "PRE": {"av": 700.0}, "Season": "winter"},
		"1219": {"AT": {"av": -60.5}, "HWS": {"av": 4.2}, "PRE": {"av": 750.5}, "Season": "summer"}
	}`)
	defer srv.Close()

	f := NewMars(srv.Client(), "test-key")
	f.baseURL = srv.URL

	result := f.Fetch(context.Background())
	require.True(t, result.OK())

	payload, ok := result.Payload().(nasa.MarsPayload)
	require.True(t, ok)
	require.NotNil(t, payload.Weather)

	assert.Equal(t, "1219", payload.Weather.Sol)
	require.NotNil(t, payload.Weather.AverageTemperature)
	assert.InDelta(t, -60.5, *payload.Weather.AverageTemperature, 0.001)
	require.NotNil(t, payload.Weather.WindSpeed)
	assert.InDelta(t, 4.2, *payload.Weather.WindSpeed, 0.001)
	require.NotNil(t, payload.Weather.Pressure)
	assert.InDelta(t, 750.5, *payload.Weather.Pressure, 0.001)
	require.NotNil(t, payload.Weather.Season)
	assert.Equal(t, "summer", *payload.Weather.Season)
}

func TestMarsFetchNoSols(t *testing.T) {
	srv := newMarsServer(t, `{"sol_keys": [], "validity_checks": {}}`)
	defer srv.Close()

	f := NewMars(srv.Client(), "test-key")
	f.baseURL = srv.URL

	result := f.Fetch(context.Background())
	require.True(t, result.OK())

	payload, ok := result.Payload().(nasa.MarsPayload)
	require.True(t, ok)
	assert.Nil(t, payload.Weather)

	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"weather":{}}`, string(b))
}

func TestMarsFetchPartialReadings(t *testing.T) {
	srv := newMarsServer(t, `{
		"sol_keys": ["990"],
		"990": {"PRE": {"av": 722.0}, "Season": "fall"}
	}`)
	defer srv.Close()

	f := NewMars(srv.Client(), "test-key")
	f.baseURL = srv.URL

	result := f.Fetch(context.Background())
	require.True(t, result.OK())

	payload := result.Payload().(nasa.MarsPayload)
	require.NotNil(t, payload.Weather)
	assert.Equal(t, "990", payload.Weather.Sol)
	assert.Nil(t, payload.Weather.AverageTemperature)
	assert.Nil(t, payload.Weather.WindSpeed)
	require.NotNil(t, payload.Weather.Pressure)
	assert.InDelta(t, 722.0, *payload.Weather.Pressure, 0.001)
}

func TestMarsFetchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewMars(srv.Client(), "test-key")
	f.baseURL = srv.URL

	result := f.Fetch(context.Background())
	assert.False(t, result.OK())
	assert.Equal(t, "Could not load Mars weather right now.", result.ErrMessage())
}
