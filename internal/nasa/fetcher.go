package nasa

import "context"

// Fetcher normalizes one upstream NASA feed into a SectorResult. Fetch makes
// a single best-effort call: implementations convert any transport or parsing
// failure into the sector's static message instead of returning a Go error.
type Fetcher interface {
	Code() string
	Fetch(ctx context.Context) SectorResult
}

// Registry maps sector codes to their fetchers.
type Registry map[string]Fetcher

// NewRegistry indexes fetchers by code.
func NewRegistry(fetchers ...Fetcher) Registry {
	r := make(Registry, len(fetchers))
	for _, f := range fetchers {
		r[f.Code()] = f
	}
	return r
}
