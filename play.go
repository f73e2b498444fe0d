package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/app"
	"github.com/llehouerou/powerhour/internal/config"
	"github.com/llehouerou/powerhour/internal/errmsg"
	"github.com/llehouerou/powerhour/internal/lastfm"
	"github.com/llehouerou/powerhour/internal/library"
	"github.com/llehouerou/powerhour/internal/logger"
	"github.com/llehouerou/powerhour/internal/mpris"
	"github.com/llehouerou/powerhour/internal/notify"
	"github.com/llehouerou/powerhour/internal/player"
	"github.com/llehouerou/powerhour/internal/playlist"
	"github.com/llehouerou/powerhour/internal/session"
	"github.com/llehouerou/powerhour/internal/state"
	"github.com/llehouerou/powerhour/internal/stderr"
)

func runPlay() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closer, err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fail(errmsg.OpInitLogger, err)
	}
	defer closer.Close()

	// Audio backends and external players write to fd 2
	if err := stderr.Start(log); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := library.Source{Root: cfg.Library.Source, ITunesXML: cfg.Library.ITunesXML}
	tracks, err := library.Collect(ctx, afero.NewOsFs(), src)
	if err != nil {
		op := errmsg.OpLibraryScan
		if src.ITunesXML != "" {
			op = errmsg.OpITunesImport
		}
		return fail(op, err)
	}
	log.Info().Int("tracks", len(tracks)).Str("source", src.String()).Msg("library collected")

	catalog, err := openCatalog(cfg, log)
	if err != nil {
		return fail(errmsg.OpCacheOpen, err)
	}
	defer catalog.Close()

	p, err := newPlayer(cfg, log)
	if err != nil {
		return fail(errmsg.OpPlayerSetup, err)
	}

	game, err := session.New(sessionConfig(cfg), playlist.NewSource(tracks), p,
		session.WithDescriber(catalog),
		session.WithLogger(log),
	)
	if err != nil {
		return fail(errmsg.OpSessionStart, err)
	}

	attachIntegrations(ctx, cfg, game, log)
	ui := game.Subscribe()

	if err := game.Start(ctx); err != nil {
		return fail(errmsg.OpSessionStart, err)
	}

	model := app.New(game,
		app.WithSubscription(ui),
		app.WithLibrary(len(tracks), src.String()),
	)
	_, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	// The TUI may have gone first; the game must not outlive it.
	game.Quit()
	err = game.Wait()

	stats := catalog.Stats()
	log.Info().Int64("cache_hits", stats.Hits).Int64("cache_misses", stats.Misses).Msg("session over")

	if err != nil {
		op := errmsg.OpSessionRun
		if errors.Is(err, player.ErrNoOutputDevice) {
			op = errmsg.OpPlaybackStart
		}
		return fail(op, err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fail(errmsg.OpSessionRun, runErr)
	}

	fmt.Println(summary(game.State()))
	return nil
}

func sessionConfig(cfg *config.Config) session.Config {
	sc := session.Config{
		Rounds:            cfg.Session.Rounds,
		RoundDuration:     cfg.Session.RoundDuration,
		PollInterval:      cfg.Session.PollInterval,
		SkipAdvancesRound: cfg.Session.SkipAdvancesRound,
	}
	if cfg.Session.FullLength {
		sc.MinTrackLength = sc.RoundDuration
	}
	return sc
}

func openCatalog(cfg *config.Config, log zerolog.Logger) (*library.Catalog, error) {
	if !cfg.Library.Cache {
		return library.OpenCatalog("", log)
	}
	path, err := library.DefaultCachePath()
	if err != nil {
		return nil, err
	}
	return library.OpenCatalog(path, log)
}

func newPlayer(cfg *config.Config, log zerolog.Logger) (player.Interface, error) {
	if cfg.UsesCommandPlayer() {
		return player.NewCommand(cfg.Player.Command, cfg.Session.RoundDuration, log)
	}
	return player.New(player.WithVolume(cfg.Player.Volume), player.WithLogger(log)), nil
}

// attachIntegrations starts the optional desktop and Last.fm observers.
// None of them can fail the session.
func attachIntegrations(ctx context.Context, cfg *config.Config, game *session.Game, log zerolog.Logger) {
	if cfg.MPRIS.Enabled {
		adapter, err := mpris.New(game, log)
		if err != nil {
			log.Warn().Err(err).Msg("mpris unavailable")
		} else {
			go func() {
				<-game.Done()
				adapter.Close()
			}()
		}
	}

	if cfg.Notifications.Enabled {
		go notify.NewRounds(notify.New(), afero.NewOsFs(), log).Run(ctx, game.Subscribe())
	}

	if cfg.HasLastfmConfig() {
		client, err := lastfmClient(ctx, cfg)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("lastfm unavailable")
		case client == nil:
			log.Info().Msg("lastfm configured but not linked; run powerhour lastfm-link")
		default:
			go lastfm.NewReporter(client, log).Run(ctx, game.Subscribe())
		}
	}
}

// lastfmClient returns an authenticated client, or nil if no account is linked.
func lastfmClient(ctx context.Context, cfg *config.Config) (*lastfm.Client, error) {
	st, err := openState()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	acct, ok, err := st.LastfmAccount(ctx)
	if err != nil || !ok {
		return nil, err
	}
	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	client.SetSessionKey(acct.SessionKey)
	return client, nil
}

func openState() (*state.Manager, error) {
	path, err := state.DefaultPath()
	if err != nil {
		return nil, err
	}
	return state.Open(path)
}

// summary is printed after the TUI has cleared the screen.
func summary(s session.State) string {
	switch s.Phase {
	case session.PhaseCompleted:
		return fmt.Sprintf("Cheers! %s done.", english.Plural(s.Rounds, "round", ""))
	case session.PhaseIdle, session.PhasePlaying, session.PhasePaused,
		session.PhaseTerminated, session.PhaseFailed:
	}
	return fmt.Sprintf("Stopped after %s of %d.", english.Plural(s.Progress.Round, "round", ""), s.Rounds)
}
