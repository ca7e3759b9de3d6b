package fetchers

import (
	"context"
	"net/http"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

const apodUnavailable = "Could not load APOD data right now."

// APODFetcher loads the Astronomy Picture of the Day.
type APODFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAPOD(client *http.Client, apiKey string) *APODFetcher {
	return &APODFetcher{
		apiKey:  apiKey,
		baseURL: nasaBaseURL,
		client:  client,
	}
}

func (f *APODFetcher) Code() string {
	return nasa.CodeAPOD
}

func (f *APODFetcher) Fetch(ctx context.Context) nasa.SectorResult {
	fetchesTotal.WithLabelValues(f.Code()).Inc()

	var payload struct {
		Title       string `json:"title"`
		Date        string `json:"date"`
		Explanation string `json:"explanation"`
		URL         string `json:"url"`
		MediaType   string `json:"media_type"`
	}
	if err := getJSON(ctx, f.client, f.baseURL+"/planetary/apod", nil, f.apiKey, &payload); err != nil {
		return unavailable(f.Code(), apodUnavailable, err)
	}

	return nasa.Ok(nasa.APODPayload{
		Title:       payload.Title,
		Date:        payload.Date,
		Description: payload.Explanation,
		URL:         payload.URL,
		MediaType:   payload.MediaType,
	})
}
