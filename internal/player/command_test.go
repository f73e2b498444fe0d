package player

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"afplay -t <duration> <file>", []string{"afplay", "-t", "<duration>", "<file>"}, false},
		{"  mpv   --start=<offset>  <file> ", []string{"mpv", "--start=<offset>", "<file>"}, false},
		{`sh -c 'sleep "$0"' <duration> <file>`, []string{"sh", "-c", `sleep "$0"`, "<duration>", "<file>"}, false},
		{`play "<file>" trim 0 <duration>`, []string{"play", "<file>", "trim", "0", "<duration>"}, false},
		{`mpv /music/My\ Song.mp3 <duration>`, []string{"mpv", "/music/My Song.mp3", "<duration>"}, false},
		{`echo 'it'\''s' "a \"b\""`, []string{"echo", "it's", `a "b"`}, false},
		{"", []string{}, false},
		{`play "<file>`, nil, true},
		{`play '<file>`, nil, true},
		{`play <file>\`, nil, true},
	}
	for _, tt := range tests {
		got, err := splitCommand(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrInvalidCommand), "splitCommand(%q) error = %v", tt.in, err)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewCommand_Validation(t *testing.T) {
	_, err := NewCommand("", time.Minute, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidCommand), "empty: %v", err)

	_, err = NewCommand("true <file>", time.Minute, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidCommand), "no duration: %v", err)

	_, err = NewCommand("powerhour-no-such-player <duration> <file>", time.Minute, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrMissingExternalPlayer), "missing binary: %v", err)
}

func TestCommand_Expand(t *testing.T) {
	c, err := NewCommand("true -t <duration> --from <offset> <file>", time.Minute, zerolog.Nop())
	require.NoError(t, err)

	got := c.expand("/music/a b.mp3", 20500*time.Millisecond)
	assert.Equal(t, []string{"true", "-t", "40", "--from", "20", "/music/a b.mp3"}, got)

	got = c.expand("/x.mp3", 2*time.Minute)
	assert.Equal(t, "0", got[2], "duration never negative")
}

func testTrack(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	return path
}

func TestCommand_CleanExit(t *testing.T) {
	c, err := NewCommand("true <duration> <file>", time.Minute, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Load(testTrack(t)))
	assert.Equal(t, Loaded, c.State())
	require.NoError(t, c.Start(0))

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("command did not finish")
	}
	assert.NoError(t, c.Err())
	assert.Equal(t, Finished, c.State())

	c.Stop()
	assert.Equal(t, Stopped, c.State())
}

func TestCommand_FailingExit(t *testing.T) {
	c, err := NewCommand(`sh -c 'echo "cannot open $1" >&2; exit 3' <duration> <file>`, time.Minute, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Load(testTrack(t)))
	require.NoError(t, c.Start(0))

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("command did not finish")
	}
	require.Error(t, c.Err())
	assert.Contains(t, c.Err().Error(), "cannot open")
}

func TestCommand_StopKills(t *testing.T) {
	c, err := NewCommand(`sh -c 'exec sleep "$0"' <duration> <file>`, time.Minute, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Load(testTrack(t)))
	require.NoError(t, c.Start(0))
	assert.Equal(t, Playing, c.State())
	done := c.Done()

	c.Stop()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not wait for the command")
	}
	assert.Equal(t, Stopped, c.State())
	assert.NoError(t, c.Err())
}

func TestCommand_LoadMissingFile(t *testing.T) {
	c, err := NewCommand("true <duration> <file>", time.Minute, zerolog.Nop())
	require.NoError(t, err)
	assert.Error(t, c.Load(filepath.Join(t.TempDir(), "gone.mp3")))
	assert.True(t, errors.Is(c.Start(0), ErrNotLoaded))
}
