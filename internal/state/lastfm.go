package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
)

// LastfmAccount is the Last.fm session obtained by lastfm-link.
type LastfmAccount struct {
	Username   string
	SessionKey string
	LinkedAt   time.Time
}

// LastfmAccount returns the linked account. ok is false when none is linked.
func (m *Manager) LastfmAccount(ctx context.Context) (acct LastfmAccount, ok bool, err error) {
	var linkedAt int64
	row := m.db.QueryRowContext(ctx,
		`SELECT username, session_key, linked_at FROM lastfm_session WHERE id = 1`)
	switch err := row.Scan(&acct.Username, &acct.SessionKey, &linkedAt); {
	case errors.Is(err, sql.ErrNoRows):
		return LastfmAccount{}, false, nil
	case err != nil:
		return LastfmAccount{}, false, errors.Wrap(err, "read lastfm account")
	}
	acct.LinkedAt = time.Unix(linkedAt, 0)
	return acct, true, nil
}

// LinkLastfm stores the account, replacing any previous one.
func (m *Manager) LinkLastfm(ctx context.Context, username, sessionKey string) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO lastfm_session (id, username, session_key, linked_at)
		 VALUES (1, ?, ?, ?)`,
		username, sessionKey, m.now().Unix())
	return errors.Wrap(err, "store lastfm account")
}

// UnlinkLastfm forgets the linked account and returns its username.
// ok is false when nothing was linked.
func (m *Manager) UnlinkLastfm(ctx context.Context) (username string, ok bool, err error) {
	row := m.db.QueryRowContext(ctx,
		`DELETE FROM lastfm_session WHERE id = 1 RETURNING username`)
	switch err := row.Scan(&username); {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, errors.Wrap(err, "remove lastfm account")
	}
	return username, true, nil
}
