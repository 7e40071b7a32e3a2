package model_test

import (
	"testing"
	"time"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewSession(t *testing.T) {
	session, err := model.NewSession(types.UserID("user-1"), 24*time.Hour)
	gt.NoError(t, err).Required()

	gt.True(t, session.ID != "")
	gt.True(t, session.Secret != "")
	gt.Equal(t, session.UserID, types.UserID("user-1"))
	gt.True(t, session.ExpiresAt.After(session.CreatedAt))
	gt.True(t, session.IsValid())
	gt.False(t, session.IsExpired())

	t.Run("secrets are unique", func(t *testing.T) {
		other, err := model.NewSession(types.UserID("user-1"), 24*time.Hour)
		gt.NoError(t, err).Required()
		gt.True(t, session.Secret != other.Secret)
		gt.True(t, session.ID != other.ID)
	})
}

func TestSessionExpiry(t *testing.T) {
	session, err := model.NewSession(types.UserID("user-1"), -time.Minute)
	gt.NoError(t, err).Required()

	gt.True(t, session.IsExpired())
	gt.False(t, session.IsValid())
}

func TestNewMonitoredEmail(t *testing.T) {
	record := model.NewMonitoredEmail("New@Example.com")

	gt.Equal(t, record.Email, types.EmailAddress("new@example.com"))
	gt.True(t, record.Active)
	gt.Equal(t, record.BreachCount, 0)
	gt.Equal(t, record.SecurityScore, 100)
	gt.Equal(t, record.RiskLevel, types.RiskLow)
	gt.False(t, record.CreatedAt.IsZero())
}

func TestMonitoredEmailApplyScan(t *testing.T) {
	record := model.NewMonitoredEmail("a@b.com")

	result := model.NewScanResult("a@b.com", []model.BreachRecord{
		{Name: "B", Severity: types.SeverityCritical},
	}, "test")
	record.ApplyScan(result)

	gt.Equal(t, record.BreachCount, result.BreachCount)
	gt.Equal(t, record.SecurityScore, result.SecurityScore)
	gt.Equal(t, record.RiskLevel, result.RiskLevel)
	gt.Equal(t, record.LastScanned, result.LastChecked)
}

func TestNewUser(t *testing.T) {
	user := model.NewUser("Alice", "Alice@Example.com", []byte("hash"))

	gt.True(t, user.ID != "")
	gt.Equal(t, user.Email, types.EmailAddress("alice@example.com"))
	gt.Equal(t, user.Subscription.Plan, "free")
	gt.Equal(t, user.Subscription.Status, "active")
}
