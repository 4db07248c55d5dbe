package httpapi

import (
	"errors"
	"net/http"

	"fetchyfox.dev/internal/account"
	"fetchyfox.dev/internal/audit"
)

// handleSession routes the session lifecycle: GET logs in, DELETE logs out.
func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.handleLogin(w, r)
	case http.MethodDelete:
		// Logout only makes sense for a live session, so the token guard
		// runs first. Revocation itself stays idempotent underneath.
		a.requireToken(http.HandlerFunc(a.handleLogout)).ServeHTTP(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}

// handleLogin issues a fresh session token for valid credentials. Unknown
// emails and wrong passwords get the same answer.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusBadRequest, "auth header required")
		return
	}

	creds, err := a.accounts.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			_ = audit.LogEvent(r.Context(), "auth.login.denied", map[string]any{
				"email": email,
			})
			writeUnauthorized(w)
			return
		}
		writeException(w, "login failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"user_id": creds.UserID,
	})

	writeJSON(w, http.StatusOK, credentialsResponse{
		UUID:  creds.UserID,
		Token: creds.Token,
	})
}

// handleLogout revokes the exact (user, token) pair from the Basic header.
// Logout always succeeds from the client's perspective, even for tokens that
// never existed.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	userID, token, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusBadRequest, "auth header required")
		return
	}

	if err := a.sessions.Revoke(r.Context(), userID, token); err != nil {
		writeException(w, "logout failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "session.revoked", map[string]any{
		"user_id": userID,
	})

	writeMessage(w, "logged out", nil)
}
