// Package state persists what outlives a session: the linked Last.fm
// account. Session progress is never stored.
package state

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/powerhour/internal/db"
)

const (
	appName    = "powerhour"
	dbFileName = "powerhour.db"
)

const schema = `
CREATE TABLE IF NOT EXISTS lastfm_session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	username TEXT NOT NULL,
	session_key TEXT NOT NULL,
	linked_at INTEGER NOT NULL
);
`

type Manager struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath is $XDG_DATA_HOME/powerhour/powerhour.db.
func DefaultPath() (string, error) {
	p, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return "", errors.Wrap(err, "resolve state path")
	}
	return p, nil
}

// Open opens the state database at path, creating it if needed.
func Open(path string) (*Manager, error) {
	conn, err := db.Open(path, schema)
	if err != nil {
		return nil, errors.Wrap(err, "open state database")
	}
	return &Manager{db: conn, now: time.Now}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}
