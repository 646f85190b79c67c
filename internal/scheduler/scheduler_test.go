package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	cutoff time.Time
	err    error
}

func (f *fakeUsers) PurgeUnverified(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 2, f.err
}

type fakeTokens struct {
	calls int
}

func (f *fakeTokens) PurgeExpired(context.Context) (int64, error) {
	f.calls++
	return 3, nil
}

func TestCleanup_UsesUnverifiedMaxAge(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.Auth.UnverifiedMaxAge = 48 * time.Hour

	users := &fakeUsers{}
	tokens := &fakeTokens{}
	s := New(cfg, users, tokens)
	now := time.Date(2024, 3, 10, 4, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Cleanup(context.Background()))
	assert.Equal(t, now.Add(-48*time.Hour), users.cutoff)
	assert.Equal(t, 1, tokens.calls)
}

func TestCleanup_StopsOnUserError(t *testing.T) {
	users := &fakeUsers{err: errors.New("db down")}
	tokens := &fakeTokens{}

	err := New(testutil.NewTestConfig(), users, tokens).Cleanup(context.Background())
	assert.Error(t, err)
	assert.Zero(t, tokens.calls)
}

func TestStart_InvalidSpec(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.Scheduler.Spec = "not a cron spec"

	assert.Error(t, New(cfg, &fakeUsers{}, &fakeTokens{}).Start())
}
