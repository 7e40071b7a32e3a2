package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	controller "github.com/breachalert/breachalert/pkg/controller/http"
	"github.com/breachalert/breachalert/pkg/repository"
	"github.com/breachalert/breachalert/pkg/service/breach"
	"github.com/breachalert/breachalert/pkg/usecase"
)

// setupTestServer builds a full server over an in-memory repository with
// the catalog source, plus a cookie-carrying client.
func setupTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx = ctxlog.With(ctx, logger)

	repo := repository.NewMemory()
	t.Cleanup(func() { _ = repo.Close() })

	authUC := usecase.NewAuth(repo)
	emailsUC := usecase.NewEmails(repo)
	scanUC := usecase.NewScan(repo, breach.NewCatalog(nil), usecase.WithBatchDelay(0))

	server, err := controller.NewServer(ctx, "localhost:0", authUC, emailsUC, scanUC, false)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	gt.NoError(t, err).Required()
	client := &http.Client{Jar: jar}

	return ts, client
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	gt.NoError(t, err).Required()

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	gt.NoError(t, err).Required()
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(v)).Required()
}

func registerAndLogin(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	resp := postJSON(t, client, baseURL+"/api/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	resp.Body.Close()

	resp = postJSON(t, client, baseURL+"/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	resp.Body.Close()
}

func TestServerHealth(t *testing.T) {
	ts, client := setupTestServer(t)

	resp, err := client.Get(ts.URL + "/api/health")
	gt.NoError(t, err).Required()
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	var body map[string]string
	decodeBody(t, resp, &body)
	gt.Equal(t, body["status"], "OK")
	gt.Equal(t, body["rapidApi"], "Not configured")
}

func TestServerAuthFlow(t *testing.T) {
	ts, client := setupTestServer(t)

	t.Run("register", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/auth/register", map[string]string{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": "s3cret-pass",
		})
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body struct {
			Message string `json:"message"`
			User    struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		decodeBody(t, resp, &body)
		gt.Equal(t, body.User.Email, "alice@example.com")
	})

	t.Run("duplicate register is rejected", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/auth/register", map[string]string{
			"name":     "Impostor",
			"email":    "alice@example.com",
			"password": "other",
		})
		gt.Equal(t, resp.StatusCode, http.StatusBadRequest)
		resp.Body.Close()
	})

	t.Run("login sets session cookies", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "s3cret-pass",
		})
		gt.Equal(t, resp.StatusCode, http.StatusOK)
		resp.Body.Close()

		cookieNames := map[string]bool{}
		for _, c := range client.Jar.Cookies(mustParseURL(t, ts.URL)) {
			cookieNames[c.Name] = true
		}
		gt.True(t, cookieNames["session_id"])
		gt.True(t, cookieNames["session_secret"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		fresh := &http.Client{}
		resp := postJSON(t, fresh, ts.URL+"/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)
		resp.Body.Close()
	})

	t.Run("user me returns the authenticated user", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/user/me")
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		}
		decodeBody(t, resp, &body)
		gt.Equal(t, body.User.Name, "Alice")
	})

	t.Run("logout clears the session", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/auth/logout", nil)
		gt.Equal(t, resp.StatusCode, http.StatusOK)
		resp.Body.Close()

		resp, err := client.Get(ts.URL + "/api/user/me")
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)
		resp.Body.Close()
	})
}

func TestServerEmails(t *testing.T) {
	ts, client := setupTestServer(t)

	t.Run("unauthenticated access is rejected", func(t *testing.T) {
		fresh := &http.Client{}
		resp, err := fresh.Get(ts.URL + "/api/emails/")
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)
		resp.Body.Close()
	})

	registerAndLogin(t, client, ts.URL)

	t.Run("add and list", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/emails/", map[string]string{
			"email": "Watched@Example.com",
		})
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var record struct {
			Email         string `json:"email"`
			SecurityScore int    `json:"securityScore"`
		}
		decodeBody(t, resp, &record)
		gt.Equal(t, record.Email, "watched@example.com")
		gt.Equal(t, record.SecurityScore, 100)

		listResp, err := client.Get(ts.URL + "/api/emails/")
		gt.NoError(t, err).Required()
		gt.Equal(t, listResp.StatusCode, http.StatusOK)

		var list []struct {
			Email string `json:"email"`
		}
		decodeBody(t, listResp, &list)
		gt.Equal(t, len(list), 1)
		gt.Equal(t, list[0].Email, "watched@example.com")
	})

	t.Run("duplicate add is rejected", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/emails/", map[string]string{
			"email": "watched@example.com",
		})
		gt.Equal(t, resp.StatusCode, http.StatusBadRequest)
		resp.Body.Close()
	})

	t.Run("manual scan-result update", func(t *testing.T) {
		body, err := json.Marshal(map[string]int{
			"breachCount":   2,
			"securityScore": 45,
		})
		gt.NoError(t, err).Required()

		req, err := http.NewRequest(http.MethodPut,
			ts.URL+"/api/emails/watched%40example.com/scan-result", bytes.NewReader(body))
		gt.NoError(t, err).Required()
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var record struct {
			BreachCount   int    `json:"breachCount"`
			SecurityScore int    `json:"securityScore"`
			RiskLevel     string `json:"riskLevel"`
		}
		decodeBody(t, resp, &record)
		gt.Equal(t, record.BreachCount, 2)
		gt.Equal(t, record.SecurityScore, 45)
		gt.Equal(t, record.RiskLevel, "high")
	})

	t.Run("remove", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete,
			ts.URL+"/api/emails/watched%40example.com", nil)
		gt.NoError(t, err).Required()

		resp, err := client.Do(req)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body struct {
			Success bool `json:"success"`
		}
		decodeBody(t, resp, &body)
		gt.True(t, body.Success)
	})

	t.Run("remove unknown email is not found", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete,
			ts.URL+"/api/emails/ghost%40example.com", nil)
		gt.NoError(t, err).Required()

		resp, err := client.Do(req)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.StatusCode, http.StatusNotFound)
		resp.Body.Close()
	})
}

func TestServerScans(t *testing.T) {
	ts, client := setupTestServer(t)

	t.Run("free scan requires no auth", func(t *testing.T) {
		fresh := &http.Client{}
		resp := postJSON(t, fresh, ts.URL+"/api/scans/free-scan", map[string]string{
			"email": "visitor@example.com",
		})
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Status        string `json:"status"`
				BreachesFound int    `json:"breachesFound"`
				SecurityScore int    `json:"securityScore"`
				Source        string `json:"source"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)
		gt.True(t, body.Success)
		// Catalog source always serves the two sample breaches
		gt.Equal(t, body.Data.Status, "compromised")
		gt.Equal(t, body.Data.BreachesFound, 2)
		gt.Equal(t, body.Data.SecurityScore, 46)
		gt.Equal(t, body.Data.Source, "BreachAlert Security Database")
	})

	t.Run("free scan with missing email", func(t *testing.T) {
		fresh := &http.Client{}
		resp := postJSON(t, fresh, ts.URL+"/api/scans/free-scan", map[string]string{})
		gt.Equal(t, resp.StatusCode, http.StatusBadRequest)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		decodeBody(t, resp, &body)
		gt.False(t, body.Success)
		gt.Equal(t, body.Error, "Email is required")
	})

	t.Run("authenticated scan requires login", func(t *testing.T) {
		fresh := &http.Client{}
		resp := postJSON(t, fresh, ts.URL+"/api/scans/scan", map[string]string{
			"email": "a@b.com",
		})
		gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)
		resp.Body.Close()
	})

	registerAndLogin(t, client, ts.URL)

	t.Run("scan records the result", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/scans/scan", map[string]string{
			"email": "scanned@example.com",
		})
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Status string `json:"status"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)
		gt.True(t, body.Success)
		gt.Equal(t, body.Data.Status, "compromised")

		// The scanned email shows up in the registry with the scan state
		listResp, err := client.Get(ts.URL + "/api/emails/")
		gt.NoError(t, err).Required()

		var list []struct {
			Email         string `json:"email"`
			BreachCount   int    `json:"breachCount"`
			SecurityScore int    `json:"securityScore"`
		}
		decodeBody(t, listResp, &list)
		gt.Equal(t, len(list), 1)
		gt.Equal(t, list[0].Email, "scanned@example.com")
		gt.Equal(t, list[0].BreachCount, 2)
		gt.Equal(t, list[0].SecurityScore, 46)
	})

	t.Run("scan-all covers the whole registry", func(t *testing.T) {
		resp := postJSON(t, client, ts.URL+"/api/emails/", map[string]string{
			"email": "second@example.com",
		})
		gt.Equal(t, resp.StatusCode, http.StatusOK)
		resp.Body.Close()

		resp = postJSON(t, client, ts.URL+"/api/scans/scan-all", nil)
		gt.Equal(t, resp.StatusCode, http.StatusOK)

		var body struct {
			Success bool `json:"success"`
			Data    []struct {
				Email  string `json:"email"`
				Status string `json:"status"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)
		gt.True(t, body.Success)
		gt.Equal(t, len(body.Data), 2)
		for _, r := range body.Data {
			gt.Equal(t, r.Status, "compromised")
		}
	})
}

func TestServerCORS(t *testing.T) {
	ts, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/health", nil)
	gt.NoError(t, err).Required()

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Equal(t, resp.StatusCode, http.StatusNoContent)
	gt.Equal(t, resp.Header.Get("Access-Control-Allow-Origin"), "*")
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	gt.NoError(t, err).Required()
	return u
}
