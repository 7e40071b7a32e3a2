package model

import (
	"github.com/breachalert/breachalert/pkg/domain/types"
)

// BreachRecord represents one historical breach event affecting an email.
// Records are constructed fresh on every scan and never mutated.
type BreachRecord struct {
	Name        string         `json:"name" yaml:"name"`
	Title       string         `json:"title" yaml:"title"`
	BreachDate  string         `json:"breachDate" yaml:"breach_date"`
	Description string         `json:"description" yaml:"description"`
	DataClasses []string       `json:"dataClasses" yaml:"data_classes"`
	PwnCount    int64          `json:"pwnCount" yaml:"pwn_count"`
	IsVerified  bool           `json:"isVerified" yaml:"is_verified"`
	Domain      string         `json:"domain,omitempty" yaml:"domain,omitempty"`
	Severity    types.Severity `json:"severity" yaml:"severity,omitempty"`
}

// Weighted contributions for severity calculation. A record can trigger
// multiple weights; the sum maps to a severity band.
var dataClassWeights = map[string]int{
	"Passwords":             3,
	"CreditCards":           4,
	"SocialSecurityNumbers": 5,
	"PhoneNumbers":          2,
	"Addresses":             2,
}

// CalculateSeverity derives the severity band for the record:
// >=8 critical, >=5 high, >=3 medium, otherwise low.
func (b *BreachRecord) CalculateSeverity() types.Severity {
	score := 0
	for _, dc := range b.DataClasses {
		score += dataClassWeights[dc]
	}
	if b.IsVerified {
		score += 2
	}
	if b.PwnCount > 1_000_000 {
		score += 2
	}
	if b.PwnCount > 10_000_000 {
		score += 3
	}

	switch {
	case score >= 8:
		return types.SeverityCritical
	case score >= 5:
		return types.SeverityHigh
	case score >= 3:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}

// HasDataClass reports whether the record exposed the given category
func (b *BreachRecord) HasDataClass(class string) bool {
	for _, dc := range b.DataClasses {
		if dc == class {
			return true
		}
	}
	return false
}
