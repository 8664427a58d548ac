package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-lifecycle/session"
	"github.com/jrsteele09/go-session-lifecycle/session/providerfakes"
)

func newTestRefresher(t *testing.T, ttl time.Duration) (*session.Refresher, *providerfakes.FakeProvider) {
	t.Helper()

	fp := providerfakes.NewFakeProvider(ttl)
	refresher, err := session.NewRefresher(fp)
	require.NoError(t, err)
	return refresher, fp
}

func TestNewRefresherRequiresProvider(t *testing.T) {
	_, err := session.NewRefresher(nil)
	require.Error(t, err)
	require.ErrorIs(t, err, session.NilProviderErr)
}

func TestRefreshReturnsFreshSession(t *testing.T) {
	refresher, fp := newTestRefresher(t, time.Hour)

	result := refresher.Refresh(context.Background())

	require.Empty(t, result.Error)
	require.NotNil(t, result.Session)
	require.NotEqual(t, "", result.Session.AccessToken)
	require.Equal(t, 1, fp.RefreshSessionCallCount())
}

func TestRefreshConvertsProviderError(t *testing.T) {
	refresher, fp := newTestRefresher(t, time.Hour)
	fp.FailRefresh(errors.New("network down"))

	result := refresher.Refresh(context.Background())

	require.Nil(t, result.Session)
	require.Contains(t, result.Error, "network down")
}

func TestConcurrentRefreshesAreNotDeduplicated(t *testing.T) {
	refresher, fp := newTestRefresher(t, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refresher.Refresh(context.Background())
		}()
	}
	wg.Wait()

	require.Equal(t, 2, fp.RefreshSessionCallCount())
}

func TestForceRefreshValidatesFreshSession(t *testing.T) {
	refresher, _ := newTestRefresher(t, time.Hour)

	result, fresh, err := refresher.ForceRefresh(context.Background())

	require.NoError(t, err)
	require.NotNil(t, fresh)
	require.True(t, result.IsValid)
	require.False(t, result.NeedsRefresh)
}

func TestForceRefreshFlagsSoonToExpireSession(t *testing.T) {
	refresher, _ := newTestRefresher(t, 5*time.Minute)

	result, _, err := refresher.ForceRefresh(context.Background())

	require.NoError(t, err)
	require.True(t, result.IsValid)
	require.True(t, result.NeedsRefresh)
}

func TestForceRefreshPropagatesProviderFailureAsError(t *testing.T) {
	refresher, fp := newTestRefresher(t, time.Hour)
	fp.FailRefresh(errors.New("invalid refresh token"))

	result, fresh, err := refresher.ForceRefresh(context.Background())

	require.Error(t, err)
	require.Nil(t, fresh)
	require.False(t, result.IsValid)
}
