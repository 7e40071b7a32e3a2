package model

import (
	"time"

	"github.com/breachalert/breachalert/pkg/domain/types"
)

// Subscription represents a user's plan information
type Subscription struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

// User represents a registered account. PasswordHash holds a bcrypt hash
// and is never serialized.
type User struct {
	ID           types.UserID       `json:"id"`
	Name         string             `json:"name"`
	Email        types.EmailAddress `json:"email"`
	PasswordHash []byte             `json:"-"`
	Subscription Subscription       `json:"subscription"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewUser creates a new User instance on the free plan
func NewUser(name string, email types.EmailAddress, passwordHash []byte) *User {
	now := time.Now()
	return &User{
		ID:           types.NewUserID(),
		Name:         name,
		Email:        email.Normalize(),
		PasswordHash: passwordHash,
		Subscription: Subscription{Plan: "free", Status: "active"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
