package breach

import (
	"context"
	"fmt"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// Fallback decorates a BreachSource so that it never returns an error to
// the caller. On any inner failure (network error, missing credential,
// remote error) it degrades to the sample catalog, tagging the source
// label with the triggering error.
type Fallback struct {
	inner   interfaces.BreachSource
	catalog *Catalog
}

// WithFallback wraps a source with catalog-based degradation
func WithFallback(inner interfaces.BreachSource, catalog *model.BreachCatalog) *Fallback {
	return &Fallback{
		inner:   inner,
		catalog: NewCatalog(catalog),
	}
}

// FetchBreaches delegates to the inner source and absorbs its failures
func (f *Fallback) FetchBreaches(ctx context.Context, email types.EmailAddress) ([]model.BreachRecord, string, error) {
	records, source, err := f.inner.FetchBreaches(ctx, email)
	if err == nil {
		if records == nil {
			records = []model.BreachRecord{}
		}
		return records, source, nil
	}

	ctxlog.From(ctx).Warn("Breach source failed, using fallback data",
		"email", email.Normalize(),
		"error", err,
	)

	records, _, _ = f.catalog.FetchBreaches(ctx, email)
	return records, fmt.Sprintf("Fallback - %s", err.Error()), nil
}
