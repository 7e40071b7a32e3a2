package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UserID represents a user identifier
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// NewUserID creates a new UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// SessionID represents a session identifier
type SessionID string

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// NewSessionID creates a new SessionID using UUID v7
func NewSessionID() (SessionID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return SessionID(id.String()), nil
}

// SessionSecret represents a session secret token
type SessionSecret string

// String returns the string representation
func (s SessionSecret) String() string {
	return string(s)
}

// ScanID represents a scan identifier
type ScanID string

// String returns the string representation
func (id ScanID) String() string {
	return string(id)
}

// NewScanID creates a new ScanID
func NewScanID() ScanID {
	return ScanID(fmt.Sprintf("scan-%s", uuid.New().String()))
}

// EmailAddress represents a monitored email address.
// Comparison is always done on the normalized form.
type EmailAddress string

// String returns the string representation
func (e EmailAddress) String() string {
	return string(e)
}

// Normalize returns the canonical form of the address (trimmed, lowercased)
func (e EmailAddress) Normalize() EmailAddress {
	return EmailAddress(strings.ToLower(strings.TrimSpace(string(e))))
}

// IsEmpty returns true if the normalized address is empty
func (e EmailAddress) IsEmpty() bool {
	return e.Normalize() == ""
}
