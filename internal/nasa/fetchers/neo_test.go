package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

func TestNEOFetchWindowAndTruncation(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neo/rest/v1/feed", r.URL.Path)
		assert.Equal(t, "2026-03-14", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-03-15", r.URL.Query().Get("end_date"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		// Five objects today plus a bucket for the end date that must be
		// ignored.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"near_earth_objects": {
				"2026-03-14": [
					{"name": "2026 AA", "estimated_diameter": {"meters": {"estimated_diameter_min": 10.5, "estimated_diameter_max": 23.456}}, "close_approach_data": [{"miss_distance": {"kilometers": "54321.123"}}]},
					{"name": "2026 AB", "estimated_diameter": {"meters": {"estimated_diameter_min": 0.1234, "estimated_diameter_max": 5}}, "close_approach_data": [{"miss_distance": {"kilometers": "1000000"}}]},
					{"name": "2026 AC", "estimated_diameter": {"meters": {"estimated_diameter_min": 0.1, "estimated_diameter_max": 0.9}}, "close_approach_data": []},
					{"name": "2026 AD", "estimated_diameter": {"meters": {"estimated_diameter_min": 5, "estimated_diameter_max": 6}}, "close_approach_data": [{"miss_distance": {"kilometers": "2"}}]},
					{"name": "2026 AE", "estimated_diameter": {"meters": {"estimated_diameter_min": 7, "estimated_diameter_max": 8}}, "close_approach_data": [{"miss_distance": {"kilometers": "3"}}]}
				],
				"2026-03-15": [
					{"name": "Intruder", "estimated_diameter": {"meters": {"estimated_diameter_min": 1, "estimated_diameter_max": 1}}, "close_approach_data": []}
				]
			}
		}`))
	}))
	defer srv.Close()

	f := NewNEO(srv.Client(), "test-key")
	f.baseURL = srv.URL
	f.now = func() time.Time { return fixed }

	result := f.Fetch(context.Background())
	require.True(t, result.OK())

	payload, ok := result.Payload().(nasa.NEOPayload)
	require.True(t, ok)
	require.Len(t, payload.Asteroids, 3)

	assert.Equal(t, nasa.Asteroid{
		Name:         "2026 AA",
		Diameter:     "10.50m - 23.46m",
		MissDistance: "54321.123 km",
	}, payload.Asteroids[0])
	assert.Equal(t, "2026 AB", payload.Asteroids[1].Name)
	assert.Equal(t, "0.12m - 5.00m", payload.Asteroids[1].Diameter)

	// No close approach data yields the Unknown placeholder.
	assert.Equal(t, "Unknown km", payload.Asteroids[2].MissDistance)
}

func TestNEOFetchEmptyDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"near_earth_objects": {}}`))
	}))
	defer srv.Close()

	f := NewNEO(srv.Client(), "test-key")
	f.baseURL = srv.URL

	result := f.Fetch(context.Background())
	require.True(t, result.OK())

	payload := result.Payload().(nasa.NEOPayload)
	assert.NotNil(t, payload.Asteroids)
	assert.Empty(t, payload.Asteroids)
}

func TestNEOFetchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewNEO(srv.Client(), "test-key")
	f.baseURL = srv.URL

	result := f.Fetch(context.Background())
	assert.False(t, result.OK())
	assert.Equal(t, "Could not load Near Earth Object data right now.", result.ErrMessage())
}
