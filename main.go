// Command powerhour plays a power hour: a fixed number of rounds, each a
// random track from the library cut to the round length.
package main

import (
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/llehouerou/powerhour/internal/config"
	"github.com/llehouerou/powerhour/internal/errmsg"
	"github.com/llehouerou/powerhour/internal/stderr"
)

var (
	cli = kingpin.New("powerhour", "Shuffled rounds of music, one drink per round.")

	count      = cli.Flag("count", "Number of rounds (default 60).").Short('n').Envar("POWERHOUR_COUNT").PlaceHolder("60").Int()
	duration   = cli.Flag("duration", "Seconds per round (default 60).").Short('d').Envar("POWERHOUR_DURATION").PlaceHolder("60").Int()
	source     = cli.Flag("source", "Directory to scan for music (default: XDG music dir).").Short('s').Envar("POWERHOUR_SOURCE").String()
	itunesXML  = cli.Flag("xml", "iTunes library XML to use instead of a directory scan.").Short('x').Envar("POWERHOUR_ITUNES_XML").String()
	command    = cli.Flag("command", "External player command with <file>, <duration> and <offset> placeholders.").Short('c').Envar("POWERHOUR_COMMAND").String()
	fullLength = cli.Flag("full-length", "Only play tracks at least one round long.").Bool()
	noCache    = cli.Flag("no-cache", "Do not use the metadata cache.").Bool()
	configPath = cli.Flag("config", "Extra TOML config file.").Envar("POWERHOUR_CONFIG").String()
	verbose    = cli.Flag("verbose", "Enable debug logging.").Short('v').Bool()
	logFile    = cli.Flag("log-file", "Log file (default: $XDG_STATE_HOME/powerhour/powerhour.log).").Envar("POWERHOUR_LOG_FILE").String()

	linkCmd   = cli.Command("lastfm-link", "Link a Last.fm account for now-playing updates.")
	unlinkCmd = cli.Command("lastfm-unlink", "Forget the linked Last.fm account.")
)

func init() {
	cli.Command("play", "Run a power hour (default).").Default()
	cli.HelpFlag.Short('h')
}

func fail(op errmsg.Op, err error) error {
	return errmsg.Wrap(op, err)
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cmd := kingpin.MustParse(cli.Parse(os.Args[1:]))

	var err error
	switch cmd {
	case linkCmd.FullCommand():
		err = runLink()
	case unlinkCmd.FullCommand():
		err = runUnlink()
	default:
		err = runPlay()
	}

	if err != nil {
		if _, ok := errmsg.OpOf(err); !ok {
			err = fail(errmsg.OpSessionRun, err)
		}
		stderr.WriteOriginal(err.Error() + "\n")
		stderr.Stop()
		os.Exit(1)
	}
}

// loadConfig reads the config files, then applies flags given on the
// command line or through the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fail(errmsg.OpLoadConfig, err)
	}

	if *count != 0 {
		cfg.Session.Rounds = *count
	}
	if *duration != 0 {
		cfg.Session.RoundDuration = time.Duration(*duration) * time.Second
	}
	if *source != "" {
		cfg.Library.Source = *source
	}
	if *itunesXML != "" {
		cfg.Library.ITunesXML = *itunesXML
	}
	if *command != "" {
		cfg.Player.Command = *command
	}
	if *fullLength {
		cfg.Session.FullLength = true
	}
	if *noCache {
		cfg.Library.Cache = false
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fail(errmsg.OpLoadConfig, err)
	}
	return cfg, nil
}
