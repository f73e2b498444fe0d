package library

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/llehouerou/powerhour/internal/db"
	"github.com/llehouerou/powerhour/internal/playlist"
	"github.com/llehouerou/powerhour/internal/tags"
)

const (
	cacheFile  = "powerhour/tracks.db"
	numWorkers = 8
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS track_cache (
	path        TEXT PRIMARY KEY,
	mtime       INTEGER NOT NULL,
	size        INTEGER NOT NULL,
	title       TEXT NOT NULL,
	artist      TEXT,
	album       TEXT,
	duration_ms INTEGER NOT NULL,
	format      TEXT,
	updated_at  INTEGER NOT NULL
);
`

// Catalog resolves track metadata, memoizing results in sqlite keyed by
// path, modification time and size. A Catalog without a database reads
// tags every time.
type Catalog struct {
	db  *sql.DB
	log zerolog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache effectiveness for the log.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// DefaultCachePath returns the cache location under $XDG_CACHE_HOME.
func DefaultCachePath() (string, error) {
	return xdg.CacheFile(cacheFile)
}

// OpenCatalog opens the metadata cache at path. An empty path disables caching.
func OpenCatalog(path string, log zerolog.Logger) (*Catalog, error) {
	c := &Catalog{log: log}
	if path == "" {
		return c, nil
	}
	conn, err := db.Open(path, cacheSchema)
	if err != nil {
		return nil, errors.Wrap(err, "open metadata cache")
	}
	c.db = conn
	return c, nil
}

// Close releases the cache database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Stats returns the hit and miss counts since the catalog was opened.
func (c *Catalog) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Describe returns t with title, artist, album and duration filled in.
// Files without tags get path-derived metadata; files that cannot be
// probed at all return an error.
func (c *Catalog) Describe(t playlist.Track) (playlist.Track, error) {
	st, err := os.Stat(t.Path)
	if err != nil {
		return t, err
	}

	if cached, ok := c.lookup(t.Path, st); ok {
		c.hits.Add(1)
		return cached, nil
	}
	c.misses.Add(1)

	info, err := tags.ReadWithAudio(t.Path)
	if err != nil {
		return t, errors.Wrapf(err, "read %s", t.Path)
	}

	described := playlist.Track{
		Path:     t.Path,
		Title:    info.Title,
		Artist:   info.Artist,
		Album:    info.Album,
		Duration: info.Duration,
	}
	c.store(described, info.Format, st)
	return described, nil
}

// DescribeAll resolves every track with a pool of workers, warming the
// cache. Tracks that fail are left undescribed and counted in failed.
// progress, if non-nil, is called from worker goroutines.
func (c *Catalog) DescribeAll(
	ctx context.Context,
	tracks []playlist.Track,
	progress func(done, total int),
) (described []playlist.Track, failed int) {
	total := len(tracks)
	out := make([]playlist.Track, total)
	copy(out, tracks)

	workCh := make(chan int)
	var processed, failures atomic.Int64

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range workCh {
				d, err := c.Describe(out[i])
				if err != nil {
					failures.Add(1)
					c.log.Debug().Err(err).Str("path", out[i].Path).Msg("describe failed")
				} else {
					out[i] = d
				}
				n := processed.Add(1)
				if progress != nil {
					progress(int(n), total)
				}
			}
		})
	}

send:
	for i := range out {
		select {
		case workCh <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(workCh)
	wg.Wait()

	return out, int(failures.Load())
}

func (c *Catalog) lookup(path string, st os.FileInfo) (playlist.Track, bool) {
	if c.db == nil {
		return playlist.Track{}, false
	}

	var (
		mtime, size, durationMs int64
		title                   string
		artist, album           sql.NullString
	)
	err := c.db.QueryRow(`
		SELECT mtime, size, title, artist, album, duration_ms
		FROM track_cache WHERE path = ?
	`, path).Scan(&mtime, &size, &title, &artist, &album, &durationMs)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.log.Warn().Err(err).Str("path", path).Msg("cache lookup failed")
		}
		return playlist.Track{}, false
	}
	if mtime != st.ModTime().UnixNano() || size != st.Size() {
		return playlist.Track{}, false
	}

	return playlist.Track{
		Path:     path,
		Title:    title,
		Artist:   db.NullStringValue(artist),
		Album:    db.NullStringValue(album),
		Duration: time.Duration(durationMs) * time.Millisecond,
	}, true
}

func (c *Catalog) store(t playlist.Track, format string, st os.FileInfo) {
	if c.db == nil {
		return
	}
	err := db.WithTx(context.Background(), c.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO track_cache (path, mtime, size, title, artist, album, duration_ms, format, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				mtime = excluded.mtime,
				size = excluded.size,
				title = excluded.title,
				artist = excluded.artist,
				album = excluded.album,
				duration_ms = excluded.duration_ms,
				format = excluded.format,
				updated_at = excluded.updated_at
		`, t.Path, st.ModTime().UnixNano(), st.Size(), t.Title, t.Artist, t.Album,
			t.Duration.Milliseconds(), format, time.Now().Unix())
		return err
	})
	if err != nil {
		c.log.Warn().Err(err).Str("path", t.Path).Msg("cache store failed")
	}
}
