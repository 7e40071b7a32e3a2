package types

// Severity represents a per-breach severity band
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// String returns the string representation
func (s Severity) String() string {
	return string(s)
}

// RiskLevel represents the coarse risk banding derived from a security score
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// String returns the string representation
func (r RiskLevel) String() string {
	return string(r)
}

// RiskLevelFromScore derives the risk banding from a 0-100 security score:
// >=80 low, >=60 medium, otherwise high.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// ScanStatus represents the outcome classification of a scan
type ScanStatus string

const (
	ScanStatusClean       ScanStatus = "clean"
	ScanStatusCompromised ScanStatus = "compromised"
	ScanStatusError       ScanStatus = "error"
)

// String returns the string representation
func (s ScanStatus) String() string {
	return string(s)
}
