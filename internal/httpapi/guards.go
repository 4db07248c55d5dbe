package httpapi

import (
	"net/http"

	"fetchyfox.dev/internal/session"
)

// The guards mirror the original request decorators: they run before a
// handler and reject the request with the standard envelope when the
// credential check fails.

// requireAuthHeader demands a Basic Authorization header without checking it.
// Used for endpoints whose handler performs the actual credential work, such
// as account creation.
func requireAuthHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			writeError(w, http.StatusBadRequest, "auth header required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireToken verifies the userID/token pair carried in the Basic header
// against the session manager and attaches the identity to the context.
func (a *API) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, token, ok := r.BasicAuth()
		if !ok {
			writeUnauthorized(w)
			return
		}
		valid, err := a.sessions.Verify(r.Context(), userID, token)
		if err != nil {
			writeException(w, "unable to validate credentials")
			return
		}
		if !valid {
			writeUnauthorized(w)
			return
		}
		ctx := session.ContextWithUser(r.Context(), userID)
		ctx = session.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePassword verifies the email/password pair carried in the Basic
// header against the account manager.
func (a *API) requirePassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			writeUnauthorized(w)
			return
		}
		valid, err := a.accounts.VerifyCredentials(r.Context(), email, password)
		if err != nil {
			writeException(w, "unable to validate credentials")
			return
		}
		if !valid {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
