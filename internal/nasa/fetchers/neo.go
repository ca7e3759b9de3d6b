package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

const neoUnavailable = "Could not load Near Earth Object data right now."

// NEOFetcher loads today's near-earth asteroid passes. The feed is queried
// for a one-day window and only the start date's bucket is used.
type NEOFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewNEO(client *http.Client, apiKey string) *NEOFetcher {
	return &NEOFetcher{
		apiKey:  apiKey,
		baseURL: nasaBaseURL,
		client:  client,
		now:     time.Now,
	}
}

func (f *NEOFetcher) Code() string {
	return nasa.CodeNEO
}

func (f *NEOFetcher) Fetch(ctx context.Context) nasa.SectorResult {
	fetchesTotal.WithLabelValues(f.Code()).Inc()

	today := f.now().UTC()
	start := today.Format(dateLayout)

	params := url.Values{}
	params.Set("start_date", start)
	params.Set("end_date", today.AddDate(0, 0, 1).Format(dateLayout))

	var payload struct {
		NearEarthObjects map[string][]neoObject `json:"near_earth_objects"`
	}
	if err := getJSON(ctx, f.client, f.baseURL+"/neo/rest/v1/feed", params, f.apiKey, &payload); err != nil {
		return unavailable(f.Code(), neoUnavailable, err)
	}

	objects := lo.Slice(payload.NearEarthObjects[start], 0, maxSectorItems)

	asteroids := make([]nasa.Asteroid, 0, len(objects))
	for _, obj := range objects {
		miss := "Unknown"
		if len(obj.CloseApproachData) > 0 {
			miss = obj.CloseApproachData[0].MissDistance.Kilometers
		}
		asteroids = append(asteroids, nasa.Asteroid{
			Name: obj.Name,
			Diameter: fmt.Sprintf("%.2fm - %.2fm",
				obj.EstimatedDiameter.Meters.Min,
				obj.EstimatedDiameter.Meters.Max),
			MissDistance: fmt.Sprintf("%s km", miss),
		})
	}

	return nasa.Ok(nasa.NEOPayload{Asteroids: asteroids})
}

type neoObject struct {
	Name              string `json:"name"`
	EstimatedDiameter struct {
		Meters struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	CloseApproachData []struct {
		MissDistance struct {
			Kilometers string `json:"kilometers"`
		} `json:"miss_distance"`
	} `json:"close_approach_data"`
}
