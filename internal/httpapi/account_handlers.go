package httpapi

import (
	"errors"
	"net/http"

	"fetchyfox.dev/internal/account"
	"fetchyfox.dev/internal/audit"
)

type credentialsResponse struct {
	UUID  string `json:"uuid"`
	Token string `json:"token"`
}

// handleAccount creates a new user account. The email/password pair travels
// in the Basic Authorization header, never in the body.
func (a *API) handleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	email, password, _ := r.BasicAuth()

	creds, err := a.accounts.Create(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "username already taken")
		case errors.Is(err, account.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeException(w, "account creation failed")
		}
		return
	}

	_ = audit.LogEvent(r.Context(), "account.created", map[string]any{
		"user_id": creds.UserID,
	})

	writeJSON(w, http.StatusOK, credentialsResponse{
		UUID:  creds.UserID,
		Token: creds.Token,
	})
}
