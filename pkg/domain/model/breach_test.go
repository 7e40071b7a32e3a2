package model_test

import (
	"testing"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCalculateSeverity(t *testing.T) {
	t.Run("email only unverified is low", func(t *testing.T) {
		b := model.BreachRecord{
			Name:        "Small",
			DataClasses: []string{"Email addresses"},
			PwnCount:    1000,
		}
		gt.Equal(t, b.CalculateSeverity(), types.SeverityLow)
	})

	t.Run("passwords only is medium", func(t *testing.T) {
		b := model.BreachRecord{
			Name:        "PwOnly",
			DataClasses: []string{"Passwords"},
			PwnCount:    1000,
		}
		gt.Equal(t, b.CalculateSeverity(), types.SeverityMedium)
	})

	t.Run("verified passwords is high", func(t *testing.T) {
		b := model.BreachRecord{
			Name:        "VerifiedPw",
			DataClasses: []string{"Passwords"},
			PwnCount:    1000,
			IsVerified:  true,
		}
		gt.Equal(t, b.CalculateSeverity(), types.SeverityHigh)
	})

	t.Run("financial and identity data is critical", func(t *testing.T) {
		b := model.BreachRecord{
			Name:        "Financial",
			DataClasses: []string{"CreditCards", "SocialSecurityNumbers"},
			PwnCount:    1000,
		}
		gt.Equal(t, b.CalculateSeverity(), types.SeverityCritical)
	})

	t.Run("scale alone above one million adds weight", func(t *testing.T) {
		b := model.BreachRecord{
			Name:     "Big",
			PwnCount: 2_000_000,
		}
		// +2 only, still below the medium band
		gt.Equal(t, b.CalculateSeverity(), types.SeverityLow)
	})

	t.Run("scale above ten million stacks both bonuses", func(t *testing.T) {
		b := model.BreachRecord{
			Name:     "Huge",
			PwnCount: 20_000_000,
		}
		// +2 +3 lands in the high band
		gt.Equal(t, b.CalculateSeverity(), types.SeverityHigh)
	})

	t.Run("exactly one million gets no scale bonus", func(t *testing.T) {
		b := model.BreachRecord{
			Name:     "Boundary",
			PwnCount: 1_000_000,
		}
		gt.Equal(t, b.CalculateSeverity(), types.SeverityLow)
	})

	t.Run("unknown data classes contribute nothing", func(t *testing.T) {
		b := model.BreachRecord{
			Name:        "Odd",
			DataClasses: []string{"Usernames", "Avatars"},
			PwnCount:    1000,
		}
		gt.Equal(t, b.CalculateSeverity(), types.SeverityLow)
	})
}

func TestHasDataClass(t *testing.T) {
	b := model.BreachRecord{
		DataClasses: []string{"Email addresses", "Passwords"},
	}

	gt.True(t, b.HasDataClass("Passwords"))
	gt.False(t, b.HasDataClass("CreditCards"))
	gt.False(t, b.HasDataClass("passwords")) // case-sensitive
}
