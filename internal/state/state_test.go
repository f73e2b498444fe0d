package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "nested", dbFileName))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestLastfmAccount_NotLinked(t *testing.T) {
	m := openTemp(t)

	_, ok, err := m.LastfmAccount(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLinkLastfm(t *testing.T) {
	ctx := context.Background()
	m := openTemp(t)
	linked := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return linked }

	require.NoError(t, m.LinkLastfm(ctx, "drinker", "sk-1"))
	require.NoError(t, m.LinkLastfm(ctx, "host", "sk-2"))

	acct, ok, err := m.LastfmAccount(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "host", acct.Username)
	assert.Equal(t, "sk-2", acct.SessionKey)
	assert.True(t, acct.LinkedAt.Equal(linked), "LinkedAt = %v", acct.LinkedAt)
}

func TestUnlinkLastfm(t *testing.T) {
	ctx := context.Background()
	m := openTemp(t)

	_, ok, err := m.UnlinkLastfm(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "nothing linked yet")

	require.NoError(t, m.LinkLastfm(ctx, "drinker", "sk"))
	user, ok, err := m.UnlinkLastfm(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "drinker", user)

	_, ok, err = m.LastfmAccount(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), dbFileName)

	m, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, m.LinkLastfm(ctx, "drinker", "sk"))
	require.NoError(t, m.Close())

	m, err = Open(path)
	require.NoError(t, err)
	defer m.Close()
	acct, ok, err := m.LastfmAccount(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "drinker", acct.Username)
}
