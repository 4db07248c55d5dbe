package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"fetchyfox.dev/internal/account"
	"fetchyfox.dev/internal/session"
)

// In-memory stores standing in for PostgreSQL so the whole account/session
// lifecycle can run through the real services and the real HTTP surface.

type memAccounts struct {
	mu      sync.Mutex
	byEmail map[string]*account.Account
}

func (m *memAccounts) Create(ctx context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[a.Email]; ok {
		return account.ErrEmailTaken
	}
	copied := *a
	m.byEmail[a.Email] = &copied
	return nil
}

func (m *memAccounts) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byEmail[email]
	if !ok {
		return nil, account.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

type memTokens struct {
	mu     sync.Mutex
	tokens map[string][]string
}

func (m *memTokens) Insert(ctx context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = append(m.tokens[userID], token)
	return nil
}

func (m *memTokens) ListByUser(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens[userID]...), nil
}

func (m *memTokens) DeleteExact(ctx context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tokens[userID][:0]
	for _, t := range m.tokens[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	m.tokens[userID] = kept
	return nil
}

func TestAccountSessionLifecycle(t *testing.T) {
	codec, err := session.NewCodec("e2e-secret", "fetchyfox")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	sessions := session.NewManager(codec, &memTokens{tokens: map[string][]string{}})
	accounts := account.NewService(&memAccounts{byEmail: map[string]*account.Account{}}, sessions)
	api := New(accounts, sessions, ReadyProbe{}, "e2e")
	ctx := context.Background()

	// Sign up.
	req := httptest.NewRequest(http.MethodPost, "/v1/account", nil)
	req.SetBasicAuth("a@x.com", "pw1")
	rr := httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeBody(t, rr)
	userID, _ := created["uuid"].(string)
	token1, _ := created["token"].(string)
	if !strings.HasPrefix(userID, "usr_") || token1 == "" {
		t.Fatalf("unexpected credentials: %v", created)
	}

	// Credentials behave.
	if ok, _ := accounts.VerifyCredentials(ctx, "a@x.com", "pw1"); !ok {
		t.Fatal("expected correct password to verify")
	}
	if ok, _ := accounts.VerifyCredentials(ctx, "a@x.com", "wrong"); ok {
		t.Fatal("expected wrong password to fail")
	}

	// Duplicate sign-up is rejected.
	req = httptest.NewRequest(http.MethodPost, "/v1/account", nil)
	req.SetBasicAuth("a@x.com", "pw2")
	rr = httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", rr.Code)
	}

	// Login issues a second, independent session.
	req = httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req.SetBasicAuth("a@x.com", "pw1")
	rr = httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rr.Code)
	}
	token2, _ := decodeBody(t, rr)["token"].(string)
	if token2 == "" || token2 == token1 {
		t.Fatalf("expected a fresh token, got %q", token2)
	}

	ok, err := sessions.Verify(ctx, userID, token1)
	if err != nil || !ok {
		t.Fatalf("expected first session live: ok=%v err=%v", ok, err)
	}

	// Logout the first session.
	req = httptest.NewRequest(http.MethodDelete, "/v1/session", nil)
	req.SetBasicAuth(userID, token1)
	rr = httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	ok, err = sessions.Verify(ctx, userID, token1)
	if err != nil || ok {
		t.Fatalf("expected revoked session rejected: ok=%v err=%v", ok, err)
	}
	ok, err = sessions.Verify(ctx, userID, token2)
	if err != nil || !ok {
		t.Fatalf("expected second session still live: ok=%v err=%v", ok, err)
	}

	// Login with the wrong password never hands out a token.
	req = httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req.SetBasicAuth("a@x.com", "hunter2")
	rr = httptest.NewRecorder()
	api.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rr.Code)
	}
}
