package usecase

import (
	"context"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
)

// AuthUseCase defines the interface for authentication operations
type AuthUseCase interface {
	// Register creates a new user account with a hashed password
	Register(ctx context.Context, name string, email types.EmailAddress, password string) (*model.User, error)

	// Login verifies credentials and creates a new session
	Login(ctx context.Context, email types.EmailAddress, password string) (*model.User, *model.Session, error)

	// ValidateSession validates a session by ID and secret
	ValidateSession(ctx context.Context, sessionID, sessionSecret string) (*model.Session, error)

	// DeleteSession deletes a session
	DeleteSession(ctx context.Context, sessionID string) error

	// GetUserFromSession gets user information from a session
	GetUserFromSession(ctx context.Context, sessionID string) (*model.User, error)
}

// EmailsUseCase defines the interface for the monitored-email registry
type EmailsUseCase interface {
	// Add registers an email for monitoring with neutral defaults
	Add(ctx context.Context, email types.EmailAddress) (*model.MonitoredEmail, error)

	// Remove deletes an email from monitoring
	Remove(ctx context.Context, email types.EmailAddress) error

	// List returns all monitored emails in insertion order
	List(ctx context.Context) ([]*model.MonitoredEmail, error)

	// UpdateScanFields overwrites scan-derived fields directly
	UpdateScanFields(ctx context.Context, email types.EmailAddress, breachCount, securityScore int) (*model.MonitoredEmail, error)
}

// ScanUseCase defines the interface for breach scans
type ScanUseCase interface {
	// Run scans one email and records the result in the registry
	Run(ctx context.Context, email types.EmailAddress) (*model.ScanResult, error)

	// RunFree scans one email without touching the registry
	RunFree(ctx context.Context, email types.EmailAddress) (*model.ScanResult, error)

	// RunAll serially scans every monitored email
	RunAll(ctx context.Context) ([]*model.ScanResult, error)
}
