package http

import (
	"encoding/json"
	"net/http"

	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/breachalert/breachalert/pkg/usecase"
)

// ScansHandler handles breach scan endpoints
type ScansHandler struct {
	scanUC usecase.ScanUseCase
}

// NewScansHandler creates a new scans handler
func NewScansHandler(scanUC usecase.ScanUseCase) *ScansHandler {
	return &ScansHandler{
		scanUC: scanUC,
	}
}

type scanRequest struct {
	Email string `json:"email"`
}

// HandleScan runs a scan for one email and records the result.
// Internal failures are absorbed into an error-status result; the only
// HTTP error here is a missing email.
func (h *ScansHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := h.decodeScanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.scanUC.Run(ctx, email)
	if err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

// HandleScanAll serially scans every monitored email
func (h *ScansHandler) HandleScanAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := h.scanUC.RunAll(ctx)
	if err != nil {
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"data":    results,
	})
}

// HandleFreeScan runs a one-off scan without touching the registry
func (h *ScansHandler) HandleFreeScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := h.decodeScanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.scanUC.RunFree(ctx, email)
	if err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

// decodeScanRequest parses the request body and rejects missing emails
func (h *ScansHandler) decodeScanRequest(w http.ResponseWriter, r *http.Request) (types.EmailAddress, bool) {
	ctx := r.Context()

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
		return "", false
	}

	email := types.EmailAddress(req.Email)
	if email.IsEmpty() {
		writeJSON(ctx, w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Email is required",
		})
		return "", false
	}

	return email, true
}
