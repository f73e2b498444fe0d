// Package lastfm reports what each round is playing to Last.fm.
package lastfm

import (
	"fmt"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNotAuthenticated is returned when an operation requires authentication.
var ErrNotAuthenticated = errors.New("not authenticated")

// NowPlaying contains track metadata for track.updateNowPlaying.
type NowPlaying struct {
	Artist   string
	Track    string
	Album    string
	Duration time.Duration
}

// Client wraps the Last.fm API.
type Client struct {
	api        *lastfm.Api
	apiKey     string
	sessionKey string
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api:    lastfm.New(apiKey, apiSecret),
		apiKey: apiKey,
	}
}

// SetSessionKey sets the authenticated session key.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
	c.api.SetSession(key)
}

// IsAuthenticated returns true if a session key is set.
func (c *Client) IsAuthenticated() bool {
	return c.sessionKey != ""
}

// GetToken requests an authentication token from Last.fm.
func (c *Client) GetToken() (string, error) {
	token, err := c.api.GetToken()
	if err != nil {
		return "", errors.Wrap(err, "get token")
	}
	return token, nil
}

// GetAuthURL returns the URL for user authorization (desktop auth flow).
func (c *Client) GetAuthURL(token string) string {
	q := url.Values{"api_key": {c.apiKey}, "token": {token}}
	return fmt.Sprintf("https://www.last.fm/api/auth/?%s", q.Encode())
}

// GetSession exchanges an authorized token for a session key.
func (c *Client) GetSession(token string) (username, sessionKey string, err error) {
	if err := c.api.LoginWithToken(token); err != nil {
		return "", "", errors.Wrap(err, "get session")
	}
	sessionKey = c.api.GetSessionKey()
	c.sessionKey = sessionKey

	info, err := c.api.User.GetInfo(nil)
	if err != nil {
		// The session is valid without it
		return "unknown", sessionKey, nil //nolint:nilerr // username is optional
	}
	return info.Name, sessionKey, nil
}

// UpdateNowPlaying sends a "now playing" notification to Last.fm.
func (c *Client) UpdateNowPlaying(track NowPlaying) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	params := lastfm.P{
		"artist": track.Artist,
		"track":  track.Track,
	}
	if track.Album != "" {
		params["album"] = track.Album
	}
	if track.Duration > 0 {
		params["duration"] = int(track.Duration.Seconds())
	}

	if _, err := c.api.Track.UpdateNowPlaying(params); err != nil {
		return errors.Wrap(err, "update now playing")
	}
	return nil
}
