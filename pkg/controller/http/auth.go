package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/breachalert/breachalert/pkg/domain/types"
	"github.com/breachalert/breachalert/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC usecase.AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new user account
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	user, err := h.authUC.Register(ctx, req.Name, types.EmailAddress(req.Email), req.Password)
	if err != nil {
		writeError(ctx, w, err, errorStatus(err, http.StatusBadRequest))
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleLogin verifies credentials and sets session cookies
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	user, session, err := h.authUC.Login(ctx, types.EmailAddress(req.Email), req.Password)
	if err != nil {
		writeError(ctx, w, err, errorStatus(err, http.StatusUnauthorized))
		return
	}

	secure := !isLocalhost(r)
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    session.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "session_secret",
		Value:    session.Secret.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}

// HandleLogout deletes the session and clears cookies
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.authUC.DeleteSession(ctx, cookie.Value); err != nil {
			// Session may already be gone; logout must still succeed
			ctxlog.From(ctx).Debug("Failed to delete session on logout", "error", err)
		}
	}

	for _, name := range []string{"session_id", "session_secret"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

// HandleUserMe returns the authenticated user
func (h *AuthHandler) HandleUserMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session := sessionFrom(ctx)
	if session == nil {
		writeError(ctx, w, goerr.New("not authenticated"), http.StatusUnauthorized)
		return
	}

	user, err := h.authUC.GetUserFromSession(ctx, session.ID.String())
	if err != nil {
		writeError(ctx, w, err, http.StatusUnauthorized)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"user": user,
	})
}

// isLocalhost reports whether the request targets a local development host
func isLocalhost(r *http.Request) bool {
	host := r.Host
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host == "localhost" || host == "127.0.0.1"
}
