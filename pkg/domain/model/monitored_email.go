package model

import (
	"time"

	"github.com/breachalert/breachalert/pkg/domain/types"
)

// MonitoredEmail is the per-email state shown on the dashboard. It is
// owned exclusively by the repository; the scan use case overwrites the
// scan-derived fields after every scan.
type MonitoredEmail struct {
	Email         types.EmailAddress `json:"email"`
	Active        bool               `json:"active"`
	BreachCount   int                `json:"breachCount"`
	SecurityScore int                `json:"securityScore"`
	RiskLevel     types.RiskLevel    `json:"riskLevel"`
	LastScanned   time.Time          `json:"lastScanned"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// NewMonitoredEmail creates a record with neutral defaults: no breaches,
// perfect score, low risk.
func NewMonitoredEmail(email types.EmailAddress) *MonitoredEmail {
	now := time.Now()
	return &MonitoredEmail{
		Email:         email.Normalize(),
		Active:        true,
		BreachCount:   0,
		SecurityScore: 100,
		RiskLevel:     types.RiskLow,
		LastScanned:   now,
		CreatedAt:     now,
	}
}

// ApplyScan overwrites the scan-derived fields from a scan result. The
// stored state must exactly mirror the result's count and score.
func (m *MonitoredEmail) ApplyScan(result *ScanResult) {
	m.BreachCount = result.BreachCount
	m.SecurityScore = result.SecurityScore
	m.RiskLevel = result.RiskLevel
	m.LastScanned = result.LastChecked
}
