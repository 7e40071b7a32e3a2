package usecase

import (
	"context"
	"time"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/breachalert/breachalert/pkg/service/advisor"
	"github.com/breachalert/breachalert/pkg/utils/apperr"
	"github.com/breachalert/breachalert/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const defaultBatchDelay = 500 * time.Millisecond

// ScanConfig holds configuration for the Scan use case
type ScanConfig struct {
	batchDelay time.Duration
	notifier   interfaces.Notifier
	advisor    *advisor.Advisor
}

// ScanOption is a functional option for configuring Scan
type ScanOption func(*ScanConfig)

// WithBatchDelay sets the inter-call delay for batch scans
func WithBatchDelay(delay time.Duration) ScanOption {
	return func(c *ScanConfig) {
		c.batchDelay = delay
	}
}

// WithNotifier sets an optional breach alert notifier
func WithNotifier(n interfaces.Notifier) ScanOption {
	return func(c *ScanConfig) {
		c.notifier = n
	}
}

// WithAdvisor sets an optional LLM-backed remediation advisor
func WithAdvisor(a *advisor.Advisor) ScanOption {
	return func(c *ScanConfig) {
		c.advisor = a
	}
}

// Scan implements ScanUseCase: it fetches breaches through the source
// adapter, aggregates them into a ScanResult, and records the outcome in
// the registry. Registry state always mirrors the returned result.
type Scan struct {
	repo   interfaces.Repository
	source interfaces.BreachSource
	config *ScanConfig
}

// NewScan creates a new Scan use case
func NewScan(repo interfaces.Repository, source interfaces.BreachSource, opts ...ScanOption) *Scan {
	config := &ScanConfig{
		batchDelay: defaultBatchDelay,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Scan{
		repo:   repo,
		source: source,
		config: config,
	}
}

// Run scans one email and records the result. The source fetch runs
// without any registry lock held; persistence happens only after the
// result is fully computed. Scan failures are absorbed into an
// error-status result rather than returned as errors.
func (s *Scan) Run(ctx context.Context, email types.EmailAddress) (*model.ScanResult, error) {
	logger := ctxlog.From(ctx)

	if email.IsEmpty() {
		return nil, goerr.New("email is required")
	}

	result := s.aggregate(ctx, email)

	if result.Status != types.ScanStatusError {
		if err := s.repo.SaveScanResult(ctx, result); err != nil {
			apperr.Handle(ctx, err)
		}
		if _, err := s.repo.RecordScanResult(ctx, email, result); err != nil {
			apperr.Handle(ctx, err)
		}
		s.notify(ctx, result)
	}

	logger.Info("Scan completed",
		"email", result.Email,
		"breachesFound", result.BreachCount,
		"securityScore", result.SecurityScore,
		"status", result.Status,
		"source", result.Source,
	)

	return result, nil
}

// RunFree scans one email without touching the registry. Used by the
// unauthenticated scan endpoint.
func (s *Scan) RunFree(ctx context.Context, email types.EmailAddress) (*model.ScanResult, error) {
	if email.IsEmpty() {
		return nil, goerr.New("email is required")
	}

	result := s.aggregate(ctx, email)

	ctxlog.From(ctx).Info("Free scan completed",
		"email", result.Email,
		"breachesFound", result.BreachCount,
		"status", result.Status,
	)

	return result, nil
}

// RunAll serially scans every monitored email with an inter-call delay to
// respect the provider rate limit. One email's failure never aborts the
// batch; its outcome is an error-status result.
func (s *Scan) RunAll(ctx context.Context) ([]*model.ScanResult, error) {
	records, err := s.repo.ListMonitoredEmails(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list monitored emails")
	}

	results := make([]*model.ScanResult, 0, len(records))
	for i, record := range records {
		if i > 0 && s.config.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return results, goerr.Wrap(ctx.Err(), "batch scan cancelled")
			case <-time.After(s.config.batchDelay):
			}
		}

		result, err := s.Run(ctx, record.Email)
		if err != nil {
			apperr.Handle(ctx, err)
			result = model.NewErrorScanResult(record.Email, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// aggregate fetches breaches and computes the scan result. The fallback
// layer makes source errors unlikely; if one escapes anyway the contract
// still holds and a well-formed error result is produced.
func (s *Scan) aggregate(ctx context.Context, email types.EmailAddress) *model.ScanResult {
	breaches, source, err := s.source.FetchBreaches(ctx, email)
	if err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "breach source failed without fallback"))
		return model.NewErrorScanResult(email, err)
	}

	result := model.NewScanResult(email, breaches, source)
	s.advise(ctx, result)
	return result
}

// advise appends one tailored recommendation when the advisor is
// configured. Advisor failure never affects the scan.
func (s *Scan) advise(ctx context.Context, result *model.ScanResult) {
	if s.config.advisor == nil || result.BreachCount == 0 {
		return
	}

	recommendation, err := s.config.advisor.Advise(ctx, result)
	if err != nil {
		apperr.Handle(ctx, err)
		return
	}
	result.Recommendations = append(result.Recommendations, recommendation)
}

// notify dispatches a breach alert in the background when configured
func (s *Scan) notify(ctx context.Context, result *model.ScanResult) {
	if s.config.notifier == nil || result.BreachCount == 0 {
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return s.config.notifier.NotifyBreaches(ctx, result)
	})
}
