package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"fetchyfox.dev/internal/account"
	"fetchyfox.dev/internal/obs"
)

// AccountService is the slice of the account manager the HTTP layer needs.
type AccountService interface {
	Create(ctx context.Context, email, password string) (account.Credentials, error)
	Login(ctx context.Context, email, password string) (account.Credentials, error)
	VerifyCredentials(ctx context.Context, email, password string) (bool, error)
}

// SessionService is the slice of the session manager the HTTP layer needs.
type SessionService interface {
	Verify(ctx context.Context, userID, token string) (bool, error)
	Revoke(ctx context.Context, userID, token string) error
}

// ReadyProbe reports whether the service can reach its dependencies.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP surface. It translates envelope/status concerns and leaves
// all account and session semantics to the injected services.
type API struct {
	mux        *http.ServeMux
	accounts   AccountService
	sessions   SessionService
	readyProbe ReadyProbe
	version    string
}

func New(accounts AccountService, sessions SessionService, rp ReadyProbe, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		accounts:   accounts,
		sessions:   sessions,
		readyProbe: rp,
		version:    version,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// account and session lifecycle
	a.mux.Handle("/v1/account", requireAuthHeader(http.HandlerFunc(a.handleAccount)))
	a.mux.HandleFunc("/v1/session", a.handleSession)

	// demo endpoints
	a.mux.HandleFunc("/v1/hello", a.handleHello)
	a.mux.HandleFunc("/v1/echo", a.handleEcho)
	a.mux.Handle("/v1/protectedhello", a.requirePassword(http.HandlerFunc(a.handleHello)))

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, 20, 10)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- health handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "fetchy-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "fetchy-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
