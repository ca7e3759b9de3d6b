// Package dashboard assembles per-user sector views from the NASA fetchers.
package dashboard

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/astro-dashboard/internal/nasa"
)

// SectorView is one dashboard block: the sector's catalog entry plus the
// outcome of its fetch.
type SectorView struct {
	Code        string            `json:"code"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Data        nasa.SectorResult `json:"data"`
}

// Assembler fans a dashboard request out to the sector fetchers.
type Assembler struct {
	definitions []nasa.SectorDefinition
	registry    nasa.Registry
}

// New creates an Assembler over the sector catalog and fetcher registry.
func New(definitions []nasa.SectorDefinition, registry nasa.Registry) *Assembler {
	return &Assembler{
		definitions: definitions,
		registry:    registry,
	}
}

// Assemble fetches every enabled sector concurrently and returns the views in
// catalog order, one entry per enabled known code. A sector's failure is
// confined to its own Data field and never affects the other sectors. Codes
// in enabled that are not in the catalog are ignored.
func (a *Assembler) Assemble(ctx context.Context, enabled map[string]bool) []SectorView {
	views := make([]*SectorView, len(a.definitions))

	g, ctx := errgroup.WithContext(ctx)
	for i, def := range a.definitions {
		if !enabled[def.Code] {
			continue
		}
		fetcher, ok := a.registry[def.Code]
		if !ok {
			log.WithFields(log.Fields{"sector": def.Code}).Warn("no fetcher registered for enabled sector")
			continue
		}

		i, def := i, def
		g.Go(func() error {
			views[i] = &SectorView{
				Code:        def.Code,
				Title:       def.Title,
				Description: def.Description,
				Data:        fetcher.Fetch(ctx),
			}
			return nil // failures live inside the result, never here
		})
	}
	_ = g.Wait()

	out := make([]SectorView, 0, len(views))
	for _, v := range views {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
