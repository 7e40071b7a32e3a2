package usecase

import (
	"context"
	"time"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Emails implements EmailsUseCase over the monitored-email registry
type Emails struct {
	repo interfaces.Repository
}

// NewEmails creates a new Emails use case
func NewEmails(repo interfaces.Repository) *Emails {
	return &Emails{
		repo: repo,
	}
}

// Add registers an email for monitoring with neutral defaults
func (e *Emails) Add(ctx context.Context, email types.EmailAddress) (*model.MonitoredEmail, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is required")
	}

	record, err := e.repo.AddMonitoredEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("Email added to monitoring",
		"email", record.Email,
	)

	return record, nil
}

// Remove deletes an email from monitoring
func (e *Emails) Remove(ctx context.Context, email types.EmailAddress) error {
	if email.IsEmpty() {
		return goerr.New("email is required")
	}

	if err := e.repo.RemoveMonitoredEmail(ctx, email); err != nil {
		return err
	}

	ctxlog.From(ctx).Info("Email removed from monitoring",
		"email", email.Normalize(),
	)

	return nil
}

// List returns all monitored emails in insertion order
func (e *Emails) List(ctx context.Context) ([]*model.MonitoredEmail, error) {
	return e.repo.ListMonitoredEmails(ctx)
}

// UpdateScanFields overwrites the scan-derived fields of a record without
// running a scan. Out-of-range values fall back to the neutral defaults,
// matching the behavior of the manual update endpoint.
func (e *Emails) UpdateScanFields(ctx context.Context, email types.EmailAddress, breachCount, securityScore int) (*model.MonitoredEmail, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is required")
	}

	if _, err := e.repo.GetMonitoredEmail(ctx, email); err != nil {
		return nil, err
	}

	if breachCount < 0 {
		breachCount = 0
	}
	if securityScore <= 0 || securityScore > 100 {
		securityScore = 100
	}

	result := &model.ScanResult{
		Email:         email.Normalize(),
		BreachCount:   breachCount,
		SecurityScore: securityScore,
		RiskLevel:     types.RiskLevelFromScore(securityScore),
		LastChecked:   time.Now(),
	}
	return e.repo.RecordScanResult(ctx, email, result)
}
