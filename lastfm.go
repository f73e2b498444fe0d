package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/powerhour/internal/errmsg"
	"github.com/llehouerou/powerhour/internal/lastfm"
	"github.com/llehouerou/powerhour/internal/logger"
)

var errNoLastfmConfig = errors.New("set [lastfm] api_key and api_secret in the config file first")

func runLink() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.HasLastfmConfig() {
		return fail(errmsg.OpLastfmLink, errNoLastfmConfig)
	}
	log, closer, err := logger.Init(logger.Config{Level: cfg.Log.Level, Console: true})
	if err != nil {
		return fail(errmsg.OpInitLogger, err)
	}
	defer closer.Close()

	st, err := openState()
	if err != nil {
		return fail(errmsg.OpOpenState, err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	username, err := lastfm.Link(ctx, client, st, os.Stdin, os.Stdout)
	if err != nil {
		return fail(errmsg.OpLastfmLink, err)
	}
	log.Info().Str("username", username).Msg("lastfm account linked")
	fmt.Printf("Linked Last.fm account %s.\n", username)
	return nil
}

func runUnlink() error {
	st, err := openState()
	if err != nil {
		return fail(errmsg.OpOpenState, err)
	}
	defer st.Close()

	username, ok, err := st.UnlinkLastfm(context.Background())
	if err != nil {
		return fail(errmsg.OpLastfmUnlink, err)
	}
	if !ok {
		fmt.Println("No Last.fm account linked.")
		return nil
	}
	fmt.Printf("Unlinked Last.fm account %s.\n", username)
	return nil
}
