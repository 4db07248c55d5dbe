package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	tokens    map[string][]string
	insertErr error
	listErr   error
	deleteErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string][]string)}
}

func (f *fakeTokenStore) Insert(ctx context.Context, userID, token string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.tokens[userID] = append(f.tokens[userID], token)
	return nil
}

func (f *fakeTokenStore) ListByUser(ctx context.Context, userID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tokens[userID], nil
}

func (f *fakeTokenStore) DeleteExact(ctx context.Context, userID, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.tokens[userID][:0]
	for _, t := range f.tokens[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	f.tokens[userID] = kept
	return nil
}

func newTestManager(t *testing.T, store TokenStore, opts ...ManagerOption) *Manager {
	t.Helper()
	codec, err := NewCodec("s3cret", "fetchyfox")
	require.NoError(t, err)
	return NewManager(codec, store, opts...)
}

func TestIssueThenVerify(t *testing.T) {
	store := newFakeTokenStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	token, err := mgr.Issue(ctx, "usr_1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Len(t, store.tokens["usr_1"], 1)

	ok, err := mgr.Verify(ctx, "usr_1", token)
	require.NoError(t, err)
	assert.True(t, ok)

	// The same token under another user's id is not a live session.
	ok, err = mgr.Verify(ctx, "usr_2", token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevokeOverridesUnexpiredToken(t *testing.T) {
	store := newFakeTokenStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	token, err := mgr.Issue(ctx, "usr_1")
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, "usr_1", token))

	// The signature is still valid; only the live set decides.
	assert.True(t, mgr.codec.Verify(token))

	ok, err := mgr.Verify(ctx, "usr_1", token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevokeIsIdempotentAndIsolated(t *testing.T) {
	store := newFakeTokenStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	kept, err := mgr.Issue(ctx, "usr_1")
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, "usr_1", "never-issued"))
	require.NoError(t, mgr.Revoke(ctx, "usr_2", kept))

	ok, err := mgr.Verify(ctx, "usr_1", kept)
	require.NoError(t, err)
	assert.True(t, ok, "revoking unrelated pairs must not touch live sessions")
}

func TestIssueDiscardsTokenWhenPersistFails(t *testing.T) {
	store := newFakeTokenStore()
	store.insertErr = errors.New("disk on fire")
	mgr := newTestManager(t, store)

	token, err := mgr.Issue(context.Background(), "usr_1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "persist token")
	assert.Empty(t, token, "an unrecorded token must never reach the caller")
}

func TestVerifyPropagatesStorageError(t *testing.T) {
	store := newFakeTokenStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	token, err := mgr.Issue(ctx, "usr_1")
	require.NoError(t, err)

	store.listErr = errors.New("connection reset")
	ok, err := mgr.Verify(ctx, "usr_1", token)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestMultipleLiveSessionsPerUser(t *testing.T) {
	store := newFakeTokenStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	t1, err := mgr.Issue(ctx, "usr_1")
	require.NoError(t, err)
	t2, err := mgr.Issue(ctx, "usr_1")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	for _, token := range []string{t1, t2} {
		ok, err := mgr.Verify(ctx, "usr_1", token)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	require.NoError(t, mgr.Revoke(ctx, "usr_1", t1))

	ok, err := mgr.Verify(ctx, "usr_1", t1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = mgr.Verify(ctx, "usr_1", t2)
	require.NoError(t, err)
	assert.True(t, ok, "revocation must be scoped to the exact token")
}

func TestManagerLifetimeOption(t *testing.T) {
	store := newFakeTokenStore()
	mgr := newTestManager(t, store, WithLifetime(time.Minute))
	assert.Equal(t, time.Minute, mgr.lifetime)

	// Non-positive overrides are ignored.
	mgr = newTestManager(t, store, WithLifetime(-1))
	assert.Equal(t, DefaultLifetime, mgr.lifetime)
}
