package interfaces

import (
	"context"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id types.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email types.EmailAddress) (*model.User, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id types.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id types.SessionID) error

	// Monitored email registry operations
	AddMonitoredEmail(ctx context.Context, email types.EmailAddress) (*model.MonitoredEmail, error)
	GetMonitoredEmail(ctx context.Context, email types.EmailAddress) (*model.MonitoredEmail, error)
	RemoveMonitoredEmail(ctx context.Context, email types.EmailAddress) error
	ListMonitoredEmails(ctx context.Context) ([]*model.MonitoredEmail, error)
	RecordScanResult(ctx context.Context, email types.EmailAddress, result *model.ScanResult) (*model.MonitoredEmail, error)

	// Scan history operations
	SaveScanResult(ctx context.Context, result *model.ScanResult) error
	GetLatestScanResult(ctx context.Context, email types.EmailAddress) (*model.ScanResult, error)

	// Close closes the repository connection
	Close() error
}
