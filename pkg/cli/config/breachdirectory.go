package config

import (
	"log/slog"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/service/breach"
	"github.com/urfave/cli/v3"
)

// BreachDirectory holds breach-lookup provider configuration. A missing
// API key is not an error: the service degrades to the sample catalog.
type BreachDirectory struct {
	APIKey string
}

// Flags returns CLI flags for BreachDirectory configuration
func (b *BreachDirectory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rapidapi-key",
			Usage:       "RapidAPI key for the BreachDirectory lookup provider",
			Category:    "Breach lookup",
			Sources:     cli.EnvVars("BREACHALERT_RAPIDAPI_KEY", "RAPIDAPI_KEY"),
			Destination: &b.APIKey,
		},
	}
}

// IsConfigured checks if the provider credential is present
func (b *BreachDirectory) IsConfigured() bool {
	return b.APIKey != ""
}

// Configure builds the breach source chain. With a credential, the remote
// provider wrapped in catalog fallback; without one, the catalog directly.
func (b *BreachDirectory) Configure(catalog *model.BreachCatalog, logger *slog.Logger) interfaces.BreachSource {
	if !b.IsConfigured() {
		logger.Warn("RapidAPI key not configured, scans will use the sample breach catalog")
		return breach.NewCatalog(catalog)
	}

	logger.Info("Configuring BreachDirectory lookup provider")
	return breach.WithFallback(breach.NewDirectory(b.APIKey), catalog)
}

// LogValue returns structured log value
func (b BreachDirectory) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", b.APIKey != ""),
	)
}
