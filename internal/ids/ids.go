package ids

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// UserPrefix marks identifiers that refer to user accounts.
const UserPrefix = "usr"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable identifier suitable for storage keys.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewUserID returns an opaque user identifier: the "usr" prefix followed by
// 32 hex characters. The prefix makes user ids recognizable in logs and headers.
func NewUserID() string {
	return Prefixed(UserPrefix)
}

// Prefixed returns a random hex identifier carrying the given prefix.
func Prefixed(prefix string) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%x", prefix, u[:])
}
