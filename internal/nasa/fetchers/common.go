// Package fetchers contains one fetcher per NASA feed. Every fetcher makes a
// single best-effort call per Fetch and maps any failure to its sector's
// static user-facing message.
package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

// Default upstream endpoints. Tests point the fetchers at local servers.
const (
	nasaBaseURL     = "https://api.nasa.gov"
	imageLibraryURL = "https://images-api.nasa.gov/search"
)

const dateLayout = "2006-01-02"

// maxSectorItems caps list-shaped payloads at the first entries upstream
// returned.
const maxSectorItems = 3

var errUnexpectedStatus = errors.New("unexpected status code")

// getJSON performs the shared single-shot GET and decodes the 2xx response
// body into out. The credential, when present, is forwarded as the api_key
// query parameter. There are no retries: any transport error, non-2xx status
// or undecodable body comes back to the caller, which maps it to the sector's
// static message.
func getJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, apiKey string, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if apiKey != "" {
		params.Set("api_key", apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", rawURL, params.Encode()), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// unavailable records the upstream failure and converts it into the sector's
// static user-facing result.
func unavailable(code, message string, err error) nasa.SectorResult {
	fetchFailures.WithLabelValues(code).Inc()
	log.WithFields(log.Fields{
		"sector": code,
		"error":  err,
	}).Warn("sector fetch failed")
	return nasa.Unavailable(message)
}
