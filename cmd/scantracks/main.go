// Command scantracks lists what a power hour would draw from a source:
// every track with its length, artist and title, then a total.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/errmsg"
	"github.com/llehouerou/powerhour/internal/library"
	"github.com/llehouerou/powerhour/internal/logger"
	"github.com/llehouerou/powerhour/internal/playlist"
	"github.com/llehouerou/powerhour/internal/ui/render"
)

var (
	cli     = kingpin.New("scantracks", "List the tracks a power hour would play.")
	source  = cli.Arg("source", "Directory to scan (default: XDG music dir).").String()
	xml     = cli.Flag("xml", "iTunes library XML instead of a directory.").Short('x').String()
	noCache = cli.Flag("no-cache", "Read tags without the metadata cache.").Bool()
	minLen  = cli.Flag("min-length", "Hide tracks shorter than this (e.g. 60s).").Duration()
	verbose = cli.Flag("verbose", "Enable debug logging.").Short('v').Bool()
)

func main() {
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, closer, err := logger.Init(logger.Config{Level: level, Console: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitLogger, err))
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src := library.Source{Root: *source, ITunesXML: *xml}
	if src.Root == "" {
		src.Root = xdg.UserDirs.Music
	}
	tracks, err := library.Collect(ctx, afero.NewOsFs(), src)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpLibraryScan, src.String(), err))
		os.Exit(1)
	}

	cachePath := ""
	if !*noCache {
		if cachePath, err = library.DefaultCachePath(); err != nil {
			log.Warn().Err(err).Msg("metadata cache disabled")
		}
	}
	catalog, err := library.OpenCatalog(cachePath, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpCacheOpen, err))
		os.Exit(1)
	}
	defer catalog.Close()

	start := time.Now()
	described, failed := catalog.DescribeAll(ctx, tracks, progressPrinter(os.Stderr))
	fmt.Fprint(os.Stderr, "\r\033[K")

	total := report(os.Stdout, described, *minLen)

	stats := catalog.Stats()
	log.Debug().
		Int64("cache_hits", stats.Hits).
		Int64("cache_misses", stats.Misses).
		Dur("elapsed", time.Since(start)).
		Msg("scan finished")

	fmt.Printf("\n%s, %s",
		english.Plural(total.count, "track", ""),
		render.Clock(total.length))
	if failed > 0 {
		fmt.Printf(", %s unreadable", humanize.Comma(int64(failed)))
	}
	fmt.Println()
}

const artistWidth = 30

type totals struct {
	count  int
	length time.Duration
}

// report prints one line per track at least minLen long.
func report(w io.Writer, tracks []playlist.Track, minLen time.Duration) totals {
	var t totals
	for _, tr := range tracks {
		if minLen > 0 && tr.Duration > 0 && tr.Duration < minLen {
			continue
		}
		artist := tr.Artist
		if artist == "" {
			artist = "-"
		}
		fmt.Fprintf(w, "%8s  %s  %s\n",
			render.Clock(tr.Duration),
			runewidth.FillRight(render.Truncate(render.Sanitize(artist), artistWidth), artistWidth),
			render.Sanitize(tr.DisplayTitle()))
		t.count++
		t.length += tr.Duration
	}
	return t
}

// progressPrinter redraws a single status line on w.
func progressPrinter(w io.Writer) func(done, total int) {
	var (
		mu   sync.Mutex
		last time.Time
	)
	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if time.Since(last) < 100*time.Millisecond && done != total {
			return
		}
		last = time.Now()
		fmt.Fprintf(w, "\rReading tags %s / %s", humanize.Comma(int64(done)), humanize.Comma(int64(total)))
	}
}
