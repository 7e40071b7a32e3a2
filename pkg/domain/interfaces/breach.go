package interfaces

import (
	"context"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
)

// BreachSource provides breach records for an email address. The source
// label identifies which backend produced the data (remote provider,
// catalog, or fallback).
type BreachSource interface {
	FetchBreaches(ctx context.Context, email types.EmailAddress) ([]model.BreachRecord, string, error)
}
