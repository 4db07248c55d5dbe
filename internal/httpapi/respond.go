package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response envelopes mirror the original API contract: payload objects on
// success, {"error": msg} for client errors, {"exception": msg} for server
// errors.

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// writeException reports a server-side failure without leaking internals.
func writeException(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{"exception": msg})
}

// writeUnauthorized challenges the client for Basic credentials.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Login Required"`)
	writeError(w, http.StatusUnauthorized, "invalid credentials")
}

func writeMessage(w http.ResponseWriter, msg string, data map[string]any) {
	payload := map[string]any{"message": msg}
	if data != nil {
		payload["data"] = data
	}
	writeJSON(w, http.StatusOK, payload)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
