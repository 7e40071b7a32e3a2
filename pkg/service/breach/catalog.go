package breach

import (
	"context"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
)

// Catalog is a BreachSource serving entries from a static breach catalog.
// It is deterministic and never fails: every email resolves to the full
// catalog, which makes it the default source when no API key is configured
// and the data set the fallback layer degrades to.
type Catalog struct {
	catalog *model.BreachCatalog
	label   string
}

// NewCatalog creates a catalog-backed source. A nil catalog uses the
// built-in sample data set.
func NewCatalog(catalog *model.BreachCatalog) *Catalog {
	if catalog == nil {
		catalog = model.DefaultBreachCatalog()
	}
	return &Catalog{
		catalog: catalog,
		label:   "BreachAlert Security Database",
	}
}

// FetchBreaches returns the catalog entries for any email
func (c *Catalog) FetchBreaches(ctx context.Context, email types.EmailAddress) ([]model.BreachRecord, string, error) {
	// Copy so callers can annotate records without mutating the catalog
	records := make([]model.BreachRecord, len(c.catalog.Breaches))
	copy(records, c.catalog.Breaches)
	return records, c.label, nil
}
