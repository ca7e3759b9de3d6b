package fetchers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

const marsUnavailable = "Could not load Mars weather right now."

// MarsFetcher loads the latest sol's readings from the InSight feed.
type MarsFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewMars(client *http.Client, apiKey string) *MarsFetcher {
	return &MarsFetcher{
		apiKey:  apiKey,
		baseURL: nasaBaseURL,
		client:  client,
	}
}

func (f *MarsFetcher) Code() string {
	return nasa.CodeMars
}

func (f *MarsFetcher) Fetch(ctx context.Context) nasa.SectorResult {
	fetchesTotal.WithLabelValues(f.Code()).Inc()

	params := url.Values{}
	params.Set("feedtype", "json")
	params.Set("ver", "1.0")

	// Per-sol records sit next to sol_keys at the top level, so the body is
	// decoded in two steps.
	var raw map[string]json.RawMessage
	if err := getJSON(ctx, f.client, f.baseURL+"/insight_weather/", params, f.apiKey, &raw); err != nil {
		return unavailable(f.Code(), marsUnavailable, err)
	}

	var solKeys []string
	if keys, ok := raw["sol_keys"]; ok {
		if err := json.Unmarshal(keys, &solKeys); err != nil {
			return unavailable(f.Code(), marsUnavailable, err)
		}
	}
	if len(solKeys) == 0 {
		return nasa.Ok(nasa.MarsPayload{})
	}

	latest := solKeys[len(solKeys)-1]

	var reading struct {
		AT struct {
			Av *float64 `json:"av"`
		} `json:"AT"`
		HWS struct {
			Av *float64 `json:"av"`
		} `json:"HWS"`
		PRE struct {
			Av *float64 `json:"av"`
		} `json:"PRE"`
		Season *string `json:"Season"`
	}
	if rec, ok := raw[latest]; ok {
		if err := json.Unmarshal(rec, &reading); err != nil {
			return unavailable(f.Code(), marsUnavailable, err)
		}
	}

	return nasa.Ok(nasa.MarsPayload{Weather: &nasa.SolWeather{
		Sol:                latest,
		AverageTemperature: reading.AT.Av,
		WindSpeed:          reading.HWS.Av,
		Pressure:           reading.PRE.Av,
		Season:             reading.Season,
	}})
}
