package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/breachalert/breachalert/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// EmailsHandler handles monitored-email registry endpoints
type EmailsHandler struct {
	emailsUC usecase.EmailsUseCase
}

// NewEmailsHandler creates a new emails handler
func NewEmailsHandler(emailsUC usecase.EmailsUseCase) *EmailsHandler {
	return &EmailsHandler{
		emailsUC: emailsUC,
	}
}

type addEmailRequest struct {
	Email string `json:"email"`
}

type updateScanResultRequest struct {
	BreachCount   int `json:"breachCount"`
	SecurityScore int `json:"securityScore"`
}

// HandleList returns all monitored emails in insertion order
func (h *EmailsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.emailsUC.List(ctx)
	if err != nil {
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, records)
}

// HandleAdd registers an email for monitoring
func (h *EmailsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	record, err := h.emailsUC.Add(ctx, types.EmailAddress(req.Email))
	if err != nil {
		writeError(ctx, w, err, errorStatus(err, http.StatusBadRequest))
		return
	}

	writeJSON(ctx, w, http.StatusOK, record)
}

// HandleRemove deletes an email from monitoring
func (h *EmailsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := emailParam(r)
	if err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := h.emailsUC.Remove(ctx, email); err != nil {
		writeError(ctx, w, err, errorStatus(err, http.StatusInternalServerError))
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email removed from monitoring",
	})
}

// HandleUpdateScanResult overwrites scan-derived fields directly
func (h *EmailsHandler) HandleUpdateScanResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, err := emailParam(r)
	if err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req updateScanResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	record, err := h.emailsUC.UpdateScanFields(ctx, email, req.BreachCount, req.SecurityScore)
	if err != nil {
		writeError(ctx, w, err, errorStatus(err, http.StatusInternalServerError))
		return
	}

	writeJSON(ctx, w, http.StatusOK, record)
}

// emailParam extracts and decodes the {email} URL parameter
func emailParam(r *http.Request) (types.EmailAddress, error) {
	raw := chi.URLParam(r, "email")
	if raw == "" {
		return "", goerr.New("email parameter is required")
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", goerr.Wrap(err, "invalid email parameter")
	}

	return types.EmailAddress(decoded), nil
}
