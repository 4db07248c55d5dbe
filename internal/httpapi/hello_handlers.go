package httpapi

import (
	"net/http"
	"strconv"
)

// Demo endpoints kept from the original service: a plain liveness hello, a
// query-parsing echo, and a credential-guarded hello.

func (a *API) handleHello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "hello, world"})
}

func (a *API) handleEcho(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q := r.URL.Query()

	message := q.Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "missing required key: message")
		return
	}

	data := map[string]any{
		"number": nil,
		"vote":   nil,
	}

	if raw := q.Get("number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "number must be an integer")
			return
		}
		data["number"] = n
	}

	if vote := q.Get("vote"); vote != "" {
		switch vote {
		case "red", "blue", "green":
			data["vote"] = vote
		default:
			writeError(w, http.StatusBadRequest, "vote must be one of: red, blue, green")
			return
		}
	}

	writeMessage(w, message, data)
}
