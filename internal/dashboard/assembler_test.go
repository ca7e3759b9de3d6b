package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

type stubFetcher struct {
	code   string
	result nasa.SectorResult
	delay  time.Duration
}

func (s stubFetcher) Code() string {
	return s.code
}

func (s stubFetcher) Fetch(context.Context) nasa.SectorResult {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.result
}

func stubRegistry(results map[string]nasa.SectorResult) nasa.Registry {
	fetchers := make([]nasa.Fetcher, 0, len(nasa.Definitions()))
	for _, def := range nasa.Definitions() {
		result, ok := results[def.Code]
		if !ok {
			result = nasa.Ok(map[string]string{"sector": def.Code})
		}
		fetchers = append(fetchers, stubFetcher{code: def.Code, result: result})
	}
	return nasa.NewRegistry(fetchers...)
}

// Every subset of enabled sectors must come back in catalog order with one
// entry per enabled sector and nothing else.
func TestAssembleAllSubsetsKeepCatalogOrder(t *testing.T) {
	defs := nasa.Definitions()
	a := New(defs, stubRegistry(nil))

	for mask := 0; mask < 1<<len(defs); mask++ {
		enabled := make(map[string]bool)
		want := []string{}
		for i, def := range defs {
			if mask&(1<<i) != 0 {
				enabled[def.Code] = true
				want = append(want, def.Code)
			}
		}

		views := a.Assemble(context.Background(), enabled)

		got := lo.Map(views, func(v SectorView, _ int) string { return v.Code })
		assert.Equal(t, want, got, "mask %05b", mask)
	}
}

func TestAssembleCopiesCatalogEntries(t *testing.T) {
	defs := nasa.Definitions()
	a := New(defs, stubRegistry(nil))

	views := a.Assemble(context.Background(), map[string]bool{nasa.CodeMars: true})
	require.Len(t, views, 1)

	assert.Equal(t, nasa.CodeMars, views[0].Code)
	assert.Equal(t, "Mars Weather", views[0].Title)
	assert.Equal(t, "Latest available Mars weather data from the InSight mission.", views[0].Description)
	assert.True(t, views[0].Data.OK())
}

func TestAssembleIsolatesSectorFailure(t *testing.T) {
	defs := nasa.Definitions()
	a := New(defs, stubRegistry(map[string]nasa.SectorResult{
		nasa.CodeMars: nasa.Unavailable("Could not load Mars weather right now."),
	}))

	enabled := make(map[string]bool)
	for _, def := range defs {
		enabled[def.Code] = true
	}

	views := a.Assemble(context.Background(), enabled)
	require.Len(t, views, len(defs))

	for _, v := range views {
		if v.Code == nasa.CodeMars {
			assert.False(t, v.Data.OK())
			assert.Equal(t, "Could not load Mars weather right now.", v.Data.ErrMessage())
			continue
		}
		assert.True(t, v.Data.OK(), "sector %s", v.Code)
	}
}

func TestAssembleIgnoresUnknownCodes(t *testing.T) {
	a := New(nasa.Definitions(), stubRegistry(nil))

	views := a.Assemble(context.Background(), map[string]bool{
		nasa.CodeAPOD: true,
		"plutonium":   true,
	})

	require.Len(t, views, 1)
	assert.Equal(t, nasa.CodeAPOD, views[0].Code)
}

// A slow sector delays the response but the fetches themselves overlap: five
// sectors sleeping 50ms each must finish well under the serial 250ms.
func TestAssembleFetchesConcurrently(t *testing.T) {
	defs := nasa.Definitions()

	fetchers := make([]nasa.Fetcher, 0, len(defs))
	enabled := make(map[string]bool)
	for _, def := range defs {
		fetchers = append(fetchers, stubFetcher{
			code:   def.Code,
			result: nasa.Ok(map[string]string{"sector": def.Code}),
			delay:  50 * time.Millisecond,
		})
		enabled[def.Code] = true
	}

	a := New(defs, nasa.NewRegistry(fetchers...))

	started := time.Now()
	views := a.Assemble(context.Background(), enabled)
	elapsed := time.Since(started)

	require.Len(t, views, len(defs))
	assert.Less(t, elapsed, 200*time.Millisecond)
}
