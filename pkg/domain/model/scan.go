package model

import (
	"time"

	"github.com/breachalert/breachalert/pkg/domain/types"
)

// ScanResult represents the outcome of scanning one email at one point
// in time. BreachCount always equals len(Breaches), and the status is
// compromised exactly when at least one breach was found.
type ScanResult struct {
	Email               types.EmailAddress `json:"email"`
	Breaches            []BreachRecord     `json:"breaches"`
	BreachCount         int                `json:"breachesFound"`
	TotalExposedRecords int64              `json:"totalExposedRecords"`
	SecurityScore       int                `json:"securityScore"`
	Status              types.ScanStatus   `json:"status"`
	RiskLevel           types.RiskLevel    `json:"riskLevel"`
	Recommendations     []string           `json:"recommendations"`
	Source              string             `json:"source"`
	ScanID              types.ScanID       `json:"scanId"`
	LastChecked         time.Time          `json:"lastChecked"`
	Error               string             `json:"error,omitempty"`
}

// Per-breach score penalties by severity. A compromised email starts at
// 70 and is floored at 30, keeping scores inside the [30,70] band.
var severityPenalties = map[types.Severity]int{
	types.SeverityLow:      3,
	types.SeverityMedium:   6,
	types.SeverityHigh:     9,
	types.SeverityCritical: 12,
}

const (
	cleanScore           = 100
	compromisedBaseScore = 70
	minScore             = 30
)

// CalculateSecurityScore computes the deterministic 0-100 score for a
// breach set. Clean emails score 100; each breach subtracts a penalty
// proportional to its severity.
func CalculateSecurityScore(breaches []BreachRecord) int {
	if len(breaches) == 0 {
		return cleanScore
	}

	score := compromisedBaseScore
	for _, b := range breaches {
		severity := b.Severity
		if severity == "" {
			severity = b.CalculateSeverity()
		}
		score -= severityPenalties[severity]
	}
	if score < minScore {
		score = minScore
	}
	return score
}

// Recommendations derives the advisory list for a breach set
func Recommendations(breaches []BreachRecord) []string {
	if len(breaches) > 0 {
		return []string{
			"Change passwords for all affected accounts immediately",
			"Use unique passwords for each service",
			"Enable two-factor authentication",
		}
	}
	return []string{
		"Your email appears secure. Continue good security practices.",
		"Consider using a password manager",
		"Enable two-factor authentication on important accounts",
	}
}

// NewScanResult aggregates a breach set into a complete scan result
func NewScanResult(email types.EmailAddress, breaches []BreachRecord, source string) *ScanResult {
	if breaches == nil {
		breaches = []BreachRecord{}
	}

	var totalExposed int64
	for i := range breaches {
		if breaches[i].Severity == "" {
			breaches[i].Severity = breaches[i].CalculateSeverity()
		}
		totalExposed += breaches[i].PwnCount
	}

	score := CalculateSecurityScore(breaches)
	status := types.ScanStatusClean
	if len(breaches) > 0 {
		status = types.ScanStatusCompromised
	}

	return &ScanResult{
		Email:               email.Normalize(),
		Breaches:            breaches,
		BreachCount:         len(breaches),
		TotalExposedRecords: totalExposed,
		SecurityScore:       score,
		Status:              status,
		RiskLevel:           types.RiskLevelFromScore(score),
		Recommendations:     Recommendations(breaches),
		Source:              source,
		ScanID:              types.NewScanID(),
		LastChecked:         time.Now(),
	}
}

// NewErrorScanResult builds a well-formed result for an unrecoverable scan
// failure. Counters are zeroed and the risk is unknown; the caller still
// gets displayable content instead of an error.
func NewErrorScanResult(email types.EmailAddress, err error) *ScanResult {
	result := &ScanResult{
		Email:           email.Normalize(),
		Breaches:        []BreachRecord{},
		BreachCount:     0,
		SecurityScore:   0,
		Status:          types.ScanStatusError,
		RiskLevel:       types.RiskUnknown,
		Recommendations: []string{"Scan failed. Please try again."},
		Source:          "Error",
		ScanID:          types.NewScanID(),
		LastChecked:     time.Now(),
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
