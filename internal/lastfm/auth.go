package lastfm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/cockroachdb/errors"
)

// SessionStore persists the linked account.
type SessionStore interface {
	LinkLastfm(ctx context.Context, username, sessionKey string) error
}

// Authenticator is the part of *Client the auth flow needs.
type Authenticator interface {
	GetToken() (string, error)
	GetAuthURL(token string) string
	GetSession(token string) (username, sessionKey string, err error)
}

var openBrowser = OpenBrowser

// Link runs the desktop auth flow: it prints and opens the authorization
// URL, waits for the user to confirm on in, then stores the session.
// It returns the linked username.
func Link(ctx context.Context, c Authenticator, store SessionStore, in io.Reader, out io.Writer) (string, error) {
	token, err := c.GetToken()
	if err != nil {
		return "", err
	}

	authURL := c.GetAuthURL(token)
	fmt.Fprintf(out, "Authorize Power Hour on Last.fm:\n\n  %s\n\nPress Enter once done.\n", authURL)
	_ = openBrowser(authURL) //nolint:errcheck // the URL is printed anyway

	confirmed := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		confirmed <- err
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-confirmed:
		if err != nil {
			return "", errors.Wrap(err, "read confirmation")
		}
	}

	username, key, err := c.GetSession(token)
	if err != nil {
		return "", err
	}
	if err := store.LinkLastfm(ctx, username, key); err != nil {
		return "", err
	}
	return username, nil
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return errors.Newf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
