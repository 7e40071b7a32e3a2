package config

import (
	"log/slog"

	"github.com/breachalert/breachalert/pkg/domain/interfaces"
	"github.com/breachalert/breachalert/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds breach-alert notification configuration
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for breach alert notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("BREACHALERT_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for breach alerts",
			Category:    "Slack",
			Sources:     cli.EnvVars("BREACHALERT_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if Slack notifications can be delivered
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// ConfigureOptional creates a notifier if configured, returns nil if not
func (s *Slack) ConfigureOptional(logger *slog.Logger) interfaces.Notifier {
	if !s.IsConfigured() {
		logger.Info("Slack not configured - breach alerts will not be delivered")
		return nil
	}

	logger.Info("Configuring Slack breach alert notifier",
		slog.String("channel", s.Channel),
	)
	return notify.NewSlackNotifier(s.OAuthToken, s.Channel)
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
