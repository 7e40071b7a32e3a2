package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON   = goerr.NewTag("invalid_json")
	ErrTagEmptyResponse = goerr.NewTag("empty_response")
)

// Advisor generates one tailored remediation line for a scan result using
// an LLM. It supplements the fixed advisory list; callers must treat
// failures as non-fatal.
type Advisor struct {
	llmClient gollem.LLMClient
}

// New creates a new Advisor
func New(llmClient gollem.LLMClient) *Advisor {
	return &Advisor{
		llmClient: llmClient,
	}
}

// advice is the structured response expected from the LLM
type advice struct {
	Recommendation string `json:"recommendation"`
}

// Advise returns a single remediation recommendation for the breach set
func (a *Advisor) Advise(ctx context.Context, result *model.ScanResult) (string, error) {
	if result == nil || len(result.Breaches) == 0 {
		return "", goerr.New("no breaches to advise on")
	}

	prompt := a.buildPrompt(result)

	session, err := a.llmClient.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate advice")
	}

	if len(response.Texts) == 0 || response.Texts[0] == "" {
		return "", goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	var parsed advice
	if err := json.Unmarshal([]byte(response.Texts[0]), &parsed); err != nil {
		return "", goerr.Wrap(err, "failed to parse LLM response as JSON",
			goerr.V("response", response.Texts[0]),
			goerr.T(ErrTagInvalidJSON))
	}

	if parsed.Recommendation == "" {
		return "", goerr.New("LLM response missing recommendation",
			goerr.T(ErrTagEmptyResponse))
	}

	return parsed.Recommendation, nil
}

// buildPrompt renders the breach summary prompt
func (a *Advisor) buildPrompt(result *model.ScanResult) string {
	var sb strings.Builder
	sb.WriteString("You are a security advisor. The following breaches affect one email address. ")
	sb.WriteString("Respond with JSON {\"recommendation\": \"...\"} containing one short, concrete remediation step ")
	sb.WriteString("tailored to the exposed data classes. Do not repeat generic advice about passwords or 2FA.\n\n")
	for _, b := range result.Breaches {
		fmt.Fprintf(&sb, "- %s (%s): exposed %s, %d accounts\n",
			b.Title, b.BreachDate, strings.Join(b.DataClasses, ", "), b.PwnCount)
	}
	return sb.String()
}
