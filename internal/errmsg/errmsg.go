// Package errmsg turns fatal errors into one-line messages naming the
// operation that failed.
package errmsg

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Op names an operation in the user's terms.
type Op string

const (
	OpLoadConfig Op = "load configuration"
	OpInitLogger Op = "initialize logging"
	OpOpenState  Op = "open state database"

	OpLibraryScan  Op = "scan library"
	OpITunesImport Op = "read iTunes library"
	OpCacheOpen    Op = "open metadata cache"

	OpPlayerSetup   Op = "set up player"
	OpPlaybackStart Op = "start playback"

	OpSessionStart Op = "start power hour"
	OpSessionRun   Op = "run power hour"

	OpLastfmLink   Op = "link Last.fm account"
	OpLastfmUnlink Op = "unlink Last.fm account"
)

// Format renders "Failed to <op>: <err>", or "" for a nil error.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is Format with the subject of the operation, such as a path,
// quoted after the op.
func FormatWith(op Op, subject string, err error) string {
	switch {
	case err == nil:
		return ""
	case subject == "":
		return fmt.Sprintf("Failed to %s: %v", op, err)
	default:
		return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
	}
}

// Error is a failure tagged with its operation. Its message is the
// formatted one.
type Error struct {
	Op      Op
	Subject string
	Err     error
}

func (e *Error) Error() string { return FormatWith(e.Op, e.Subject, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with op. A nil err stays nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// OpOf returns the operation of the outermost tagged error in err's chain.
func OpOf(err error) (Op, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Op, true
	}
	return "", false
}
