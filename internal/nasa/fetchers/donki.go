package fetchers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

const donkiUnavailable = "Could not load DONKI CME data right now."

// DONKIFetcher loads coronal mass ejection events from the last 30 days.
type DONKIFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewDONKI(client *http.Client, apiKey string) *DONKIFetcher {
	return &DONKIFetcher{
		apiKey:  apiKey,
		baseURL: nasaBaseURL,
		client:  client,
		now:     time.Now,
	}
}

func (f *DONKIFetcher) Code() string {
	return nasa.CodeDONKI
}

func (f *DONKIFetcher) Fetch(ctx context.Context) nasa.SectorResult {
	fetchesTotal.WithLabelValues(f.Code()).Inc()

	today := f.now().UTC()

	params := url.Values{}
	params.Set("startDate", today.AddDate(0, 0, -30).Format(dateLayout))
	params.Set("endDate", today.Format(dateLayout))

	var events []struct {
		Catalog   string `json:"catalog"`
		StartTime string `json:"startTime"`
	}
	if err := getJSON(ctx, f.client, f.baseURL+"/DONKI/CME", params, f.apiKey, &events); err != nil {
		return unavailable(f.Code(), donkiUnavailable, err)
	}

	out := make([]nasa.CMEEvent, 0, maxSectorItems)
	for _, e := range lo.Slice(events, 0, maxSectorItems) {
		out = append(out, nasa.CMEEvent{
			Catalog:   e.Catalog,
			StartTime: e.StartTime,
		})
	}

	return nasa.Ok(nasa.DONKIPayload{Events: out})
}
