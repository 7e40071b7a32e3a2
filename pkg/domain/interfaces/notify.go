package interfaces

import (
	"context"

	"github.com/breachalert/breachalert/pkg/domain/model"
)

// Notifier delivers breach alerts to an external channel. Implementations
// must tolerate failure; scan results never depend on delivery.
type Notifier interface {
	NotifyBreaches(ctx context.Context, result *model.ScanResult) error
}
