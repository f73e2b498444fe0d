package player

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// Placeholders expanded in a player command template.
const (
	PlaceholderFile     = "<file>"
	PlaceholderDuration = "<duration>"
	PlaceholderOffset   = "<offset>"
)

// waitDelay bounds how long Stop waits for a killed command's children to
// release its stderr.
const waitDelay = time.Second

// ErrInvalidCommand is returned for templates missing a required placeholder.
var ErrInvalidCommand = errors.New("invalid player command")

// Command plays each round by running an external program, such as
// "afplay -t <duration> <file>". <duration> is the number of whole seconds
// left in the round and <offset> the seconds already played.
type Command struct {
	argv  []string
	round time.Duration
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.Mutex
	path    string
	run     *commandRun
	started time.Time
	offset  time.Duration
}

type commandRun struct {
	cmd     *exec.Cmd
	stderr  bytes.Buffer
	cancel  context.CancelFunc
	stopped bool
	done    chan struct{}
	err     error
}

// NewCommand parses template and checks that its program is installed.
// round is the full round length used to compute <duration>.
func NewCommand(template string, round time.Duration, log zerolog.Logger) (*Command, error) {
	argv, err := splitCommand(template)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.Wrap(ErrInvalidCommand, "empty command")
	}
	if !strings.Contains(template, PlaceholderFile) || !strings.Contains(template, PlaceholderDuration) {
		return nil, errors.Wrapf(ErrInvalidCommand,
			"%q requires %s and %s placeholders", template, PlaceholderDuration, PlaceholderFile)
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "%s", argv[0]), ErrMissingExternalPlayer)
	}
	return &Command{argv: argv, round: round, log: log, now: time.Now}, nil
}

// Load records path for the next Start.
func (c *Command) Load(path string) error {
	c.Stop()
	if _, err := os.Stat(path); err != nil {
		return err
	}
	c.mu.Lock()
	c.path = path
	c.mu.Unlock()
	return nil
}

// Start runs the command for the rest of the round.
func (c *Command) Start(offset time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return ErrNotLoaded
	}
	if c.run != nil {
		return errors.Newf("track %s already started", c.path)
	}

	argv := c.expand(c.path, offset)
	ctx, cancel := context.WithCancel(context.Background())
	run := &commandRun{cancel: cancel, done: make(chan struct{})}
	run.cmd = exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // user-configured player
	run.cmd.Stderr = &run.stderr
	run.cmd.WaitDelay = waitDelay

	if err := run.cmd.Start(); err != nil {
		cancel()
		return errors.Wrapf(err, "run %s", argv[0])
	}
	c.log.Debug().Strs("argv", argv).Msg("player command started")

	c.run = run
	c.started = c.now()
	c.offset = offset
	go c.wait(run)
	return nil
}

func (c *Command) wait(run *commandRun) {
	err := run.cmd.Wait()
	run.cancel()

	c.mu.Lock()
	if !run.stopped && err != nil {
		msg := strings.TrimSpace(run.stderr.String())
		if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
			msg = msg[i+1:]
		}
		if msg != "" {
			err = errors.Wrapf(err, "%s", msg)
		}
		run.err = errors.Wrapf(err, "%s", c.argv[0])
	}
	c.mu.Unlock()
	close(run.done)
}

// expand substitutes the placeholders in each argument.
func (c *Command) expand(path string, offset time.Duration) []string {
	remaining := max(c.round-offset, 0)
	r := strings.NewReplacer(
		PlaceholderFile, path,
		PlaceholderDuration, seconds(remaining),
		PlaceholderOffset, strconv.Itoa(int(offset/time.Second)),
	)
	out := make([]string, len(c.argv))
	for i, arg := range c.argv {
		out[i] = r.Replace(arg)
	}
	return out
}

// seconds rounds d up to whole seconds.
func seconds(d time.Duration) string {
	return strconv.Itoa(int((d + time.Second - 1) / time.Second))
}

// Stop kills the running command and waits for it to exit.
func (c *Command) Stop() {
	c.mu.Lock()
	run := c.run
	c.run = nil
	c.path = ""
	if run != nil {
		run.stopped = true
	}
	c.mu.Unlock()

	if run == nil {
		return
	}
	run.cancel()
	<-run.done
}

func (c *Command) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.run != nil:
		select {
		case <-c.run.done:
			return Finished
		default:
			return Playing
		}
	case c.path != "":
		return Loaded
	default:
		return Stopped
	}
}

// Position is estimated from wall time since Start.
func (c *Command) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil {
		return 0
	}
	return c.offset + c.now().Sub(c.started)
}

func (c *Command) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil {
		return nil
	}
	return c.run.done
}

func (c *Command) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil {
		return nil
	}
	return c.run.err
}

// splitCommand splits a command line into words with POSIX shell quoting
// and backslash escapes. Nothing is expanded.
func splitCommand(s string) ([]string, error) {
	argv, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrInvalidCommand), "parse %q", s)
	}
	return argv, nil
}
