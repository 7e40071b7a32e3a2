package breach

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Error tags for categorization
var (
	ErrTagNoCredential = goerr.NewTag("no_credential")
	ErrTagUpstream     = goerr.NewTag("upstream_unavailable")
)

const (
	defaultBaseURL = "https://breachdirectory.p.rapidapi.com"
	defaultHost    = "breachdirectory.p.rapidapi.com"
	requestTimeout = 10 * time.Second
)

// Directory is a BreachSource backed by the BreachDirectory lookup API
// (RapidAPI). Requests are bounded by a 10 second timeout.
type Directory struct {
	apiKey     string
	baseURL    string
	host       string
	httpClient *http.Client
}

// DirectoryOption configures a Directory client
type DirectoryOption func(*Directory)

// WithBaseURL overrides the API endpoint (used in tests)
func WithBaseURL(baseURL string) DirectoryOption {
	return func(d *Directory) {
		d.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) DirectoryOption {
	return func(d *Directory) {
		d.httpClient = client
	}
}

// NewDirectory creates a new BreachDirectory client
func NewDirectory(apiKey string, opts ...DirectoryOption) *Directory {
	d := &Directory{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		host:    defaultHost,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// directoryResponse is the wire format of the lookup API
type directoryResponse struct {
	Result []directoryBreach `json:"result"`
}

type directoryBreach struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	BreachDate  string   `json:"breach_date"`
	Description string   `json:"description"`
	DataClasses []string `json:"data_classes"`
	PwnCount    int64    `json:"pwn_count"`
	IsVerified  *bool    `json:"is_verified"`
	Domain      string   `json:"domain"`
}

// FetchBreaches looks up breaches for the email. A missing API key is an
// error so the fallback layer can degrade; it must never be fatal at
// startup.
func (d *Directory) FetchBreaches(ctx context.Context, email types.EmailAddress) ([]model.BreachRecord, string, error) {
	if d.apiKey == "" {
		return nil, "", goerr.New("RapidAPI key not configured",
			goerr.T(ErrTagNoCredential))
	}

	reqURL, err := url.Parse(d.baseURL + "/")
	if err != nil {
		return nil, "", goerr.Wrap(err, "invalid base URL")
	}
	q := reqURL.Query()
	q.Set("func", "auto")
	q.Set("term", email.Normalize().String())
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to build lookup request")
	}
	req.Header.Set("X-RapidAPI-Key", d.apiKey)
	req.Header.Set("X-RapidAPI-Host", d.host)

	ctxlog.From(ctx).Debug("Checking breaches via BreachDirectory",
		"email", email.Normalize(),
	)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, "", goerr.Wrap(err, "lookup request failed",
			goerr.T(ErrTagUpstream))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", goerr.New("lookup returned non-OK status",
			goerr.T(ErrTagUpstream),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var apiData directoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiData); err != nil {
		return nil, "", goerr.Wrap(err, "failed to decode lookup response",
			goerr.T(ErrTagUpstream))
	}

	if len(apiData.Result) == 0 {
		return []model.BreachRecord{}, "RapidAPI - No breaches found", nil
	}

	records := make([]model.BreachRecord, 0, len(apiData.Result))
	for _, b := range apiData.Result {
		records = append(records, mapDirectoryBreach(b))
	}

	return records, "RapidAPI - BreachDirectory", nil
}

// mapDirectoryBreach converts a wire record into a BreachRecord, applying
// defaults for missing fields.
func mapDirectoryBreach(b directoryBreach) model.BreachRecord {
	record := model.BreachRecord{
		Name:        b.Name,
		Title:       b.Title,
		BreachDate:  b.BreachDate,
		Description: b.Description,
		DataClasses: b.DataClasses,
		PwnCount:    b.PwnCount,
		IsVerified:  b.IsVerified == nil || *b.IsVerified,
		Domain:      b.Domain,
	}
	if record.Name == "" {
		record.Name = "Unknown Breach"
	}
	if record.Title == "" {
		record.Title = "Data Breach"
	}
	if record.BreachDate == "" {
		record.BreachDate = "Unknown Date"
	}
	if record.Description == "" {
		record.Description = "Data exposure incident"
	}
	if len(record.DataClasses) == 0 {
		record.DataClasses = []string{"Email addresses"}
	}
	if record.PwnCount < 0 {
		record.PwnCount = 0
	}
	if record.Domain == "" {
		record.Domain = "multiple"
	}
	record.Severity = record.CalculateSeverity()
	return record
}
