//go:build !windows

// Package stderr redirects file descriptor 2 into the log while the TUI
// owns the terminal. Audio backends and external player commands write
// there directly, bypassing os.Stderr.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type capture struct {
	saved int // duplicate of the terminal's fd 2
	r, w  *os.File
}

var (
	mu     sync.Mutex
	active *capture
)

// Start points fd 2 at a pipe whose lines are logged at warn level. It
// must run before the audio device is opened. On error fd 2 is left
// untouched and the program can go on without capture.
func Start(log zerolog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		return nil
	}

	fd := int(os.Stderr.Fd())
	r, w, err := os.Pipe()
	if err != nil {
		return errors.Wrap(err, "stderr pipe")
	}
	saved, err := syscall.Dup(fd)
	if err == nil {
		err = dup2(int(w.Fd()), fd)
		if err != nil {
			_ = syscall.Close(saved)
		}
	}
	if err != nil {
		r.Close()
		w.Close()
		return errors.Wrap(err, "redirect stderr")
	}

	active = &capture{saved: saved, r: r, w: w}
	go forward(r, log)
	return nil
}

func forward(r io.Reader, log zerolog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			log.Warn().Str("source", "stderr").Msg(line)
		}
	}
}

// WriteOriginal writes msg to the terminal even while capture is on, for
// fatal errors that must stay visible after the TUI exits.
func WriteOriginal(msg string) {
	mu.Lock()
	c := active
	mu.Unlock()
	if c == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(c.saved, []byte(msg))
}

// Stop gives fd 2 back to the terminal.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return
	}
	_ = dup2(active.saved, int(os.Stderr.Fd()))
	_ = syscall.Close(active.saved)
	active.w.Close()
	active.r.Close()
	active = nil
}
