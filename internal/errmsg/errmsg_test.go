package errmsg

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestFormatWith(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		op      Op
		subject string
		err     error
		want    string
	}{
		{OpLibraryScan, "", nil, ""},
		{OpLibraryScan, "", cause, "Failed to scan library: permission denied"},
		{OpITunesImport, "Library.xml", cause, "Failed to read iTunes library 'Library.xml': permission denied"},
		{OpPlayerSetup, "", errors.New("afplay not found"), "Failed to set up player: afplay not found"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWith(tt.op, tt.subject, tt.err))
	}
	assert.Equal(t, "Failed to run power hour: boom", Format(OpSessionRun, errors.New("boom")))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(OpLoadConfig, nil))

	cause := errors.New("no playable tracks")
	err := errors.Wrap(Wrap(OpSessionStart, cause), "outer")

	assert.ErrorIs(t, err, cause)
	op, ok := OpOf(err)
	assert.True(t, ok)
	assert.Equal(t, OpSessionStart, op)

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "Failed to start power hour: no playable tracks", e.Error())
}

func TestOpOf_Untagged(t *testing.T) {
	_, ok := OpOf(errors.New("plain"))
	assert.False(t, ok)
}
