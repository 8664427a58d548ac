package providerfakes

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jrsteele09/go-session-lifecycle/session"
)

var _ session.Provider = (*FakeProvider)(nil)

// FakeProvider is an in-memory session.Provider for tests and demos. Every
// refresh mints a brand-new session whose access token is a signed JWT with
// an exp claim, so expiry-derivation paths can be exercised too.
type FakeProvider struct {
	lock    sync.RWMutex
	current *session.Session
	ttl     time.Duration

	refreshErr error
	signOutErr error

	currentCalls int
	refreshCalls int
	signOutCalls int
}

// NewFakeProvider creates a provider whose minted sessions live for ttl.
func NewFakeProvider(ttl time.Duration) *FakeProvider {
	return &FakeProvider{ttl: ttl}
}

// SetSession seeds the session the provider currently holds.
func (fp *FakeProvider) SetSession(s *session.Session) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.current = s
}

// FailRefresh makes subsequent RefreshSession calls return err. Pass nil to
// restore normal behaviour.
func (fp *FakeProvider) FailRefresh(err error) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.refreshErr = err
}

// FailSignOut makes subsequent SignOut calls return err.
func (fp *FakeProvider) FailSignOut(err error) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.signOutErr = err
}

func (fp *FakeProvider) CurrentSession(_ context.Context) (*session.Session, error) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.currentCalls++
	return fp.current, nil
}

func (fp *FakeProvider) RefreshSession(_ context.Context) (*session.Session, error) {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.refreshCalls++

	if fp.refreshErr != nil {
		return nil, fp.refreshErr
	}

	now := time.Now()
	fresh := &session.Session{
		AccessToken:  fp.mintToken(now),
		RefreshToken: uuid.New().String(),
		ExpiresAt:    now.Add(fp.ttl),
	}
	fp.current = fresh
	return fresh, nil
}

func (fp *FakeProvider) SignOut(_ context.Context) error {
	fp.lock.Lock()
	defer fp.lock.Unlock()
	fp.signOutCalls++

	if fp.signOutErr != nil {
		return fp.signOutErr
	}
	fp.current = nil
	return nil
}

// CurrentSessionCallCount reports how many times CurrentSession was called.
func (fp *FakeProvider) CurrentSessionCallCount() int {
	fp.lock.RLock()
	defer fp.lock.RUnlock()
	return fp.currentCalls
}

// RefreshSessionCallCount reports how many times RefreshSession was called.
func (fp *FakeProvider) RefreshSessionCallCount() int {
	fp.lock.RLock()
	defer fp.lock.RUnlock()
	return fp.refreshCalls
}

// SignOutCallCount reports how many times SignOut was called.
func (fp *FakeProvider) SignOutCallCount() int {
	fp.lock.RLock()
	defer fp.lock.RUnlock()
	return fp.signOutCalls
}

func (fp *FakeProvider) mintToken(now time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "fake-user",
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(fp.ttl)),
	})
	signed, err := token.SignedString([]byte("fake-provider-secret"))
	if err != nil {
		return uuid.New().String()
	}
	return signed
}
