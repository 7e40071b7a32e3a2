package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// SlackNotifier posts breach alerts to a Slack channel. It replaces the
// per-user alert mailer: delivery is best-effort and scan results never
// depend on it.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier for the given channel
func NewSlackNotifier(token, channel string, opts ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// NotifyBreaches posts an alert message when a scan found breaches.
// Clean and error results are not announced.
func (n *SlackNotifier) NotifyBreaches(ctx context.Context, result *model.ScanResult) error {
	if result == nil || result.BreachCount == 0 {
		return nil
	}

	var lines []string
	lines = append(lines, fmt.Sprintf(":rotating_light: *%d breach(es) found for %s*", result.BreachCount, result.Email))
	lines = append(lines, fmt.Sprintf("Security score: %d (risk: %s), %d records exposed",
		result.SecurityScore, result.RiskLevel, result.TotalExposedRecords))
	for _, b := range result.Breaches {
		lines = append(lines, fmt.Sprintf("• %s (%s, severity %s)", b.Title, b.BreachDate, b.Severity))
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(strings.Join(lines, "\n"), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post breach alert",
			goerr.V("channel", n.channel),
			goerr.V("email", result.Email))
	}

	return nil
}
