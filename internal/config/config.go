package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "powerhour"

// ErrInvalid marks configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Session SessionConfig `koanf:"session"`
	Library LibraryConfig `koanf:"library"`
	Player  PlayerConfig  `koanf:"player"`
	Log     LogConfig     `koanf:"log"`

	// Desktop integration (Linux only, no-op elsewhere)
	MPRIS         MPRISConfig         `koanf:"mpris"`
	Notifications NotificationsConfig `koanf:"notifications"`

	// Last.fm now-playing updates (enabled when api_key and api_secret are set)
	Lastfm LastfmConfig `koanf:"lastfm"`
}

// SessionConfig holds the round schedule.
type SessionConfig struct {
	Rounds            int           `koanf:"rounds"              default:"60"    validate:"gt=0"`
	RoundDuration     time.Duration `koanf:"round_duration"      default:"60s"   validate:"gt=0"`
	PollInterval      time.Duration `koanf:"poll_interval"       default:"100ms" validate:"gte=10ms,lte=1s"`
	SkipAdvancesRound bool          `koanf:"skip_advances_round" default:"true"`
	FullLength        bool          `koanf:"full_length"` // only play tracks at least one round long
}

// LibraryConfig describes where tracks come from.
type LibraryConfig struct {
	Source    string `koanf:"source"`     // directory to scan (default: XDG music dir)
	ITunesXML string `koanf:"itunes_xml"` // iTunes library export, replaces the directory scan
	Cache     bool   `koanf:"cache" default:"true"`
}

// PlayerConfig selects the audio backend.
type PlayerConfig struct {
	// Command runs an external player per round instead of the built-in one.
	// Placeholders: <file>, <duration> (seconds), <offset> (seconds).
	Command string  `koanf:"command"`
	Volume  float64 `koanf:"volume" default:"1" validate:"gte=0,lte=1"`
}

type LogConfig struct {
	Level string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"` // default: $XDG_STATE_HOME/powerhour/powerhour.log
}

type MPRISConfig struct {
	Enabled bool `koanf:"enabled" default:"true"`
}

type NotificationsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// Load reads the default config locations, then extra if non-empty.
// A missing extra file is an error; missing default files are skipped.
func Load(extra string) (*Config, error) {
	paths := getConfigPaths()
	if extra != "" {
		extra = expandPath(extra)
		if _, err := os.Stat(extra); err != nil {
			return nil, errors.Wrapf(err, "config file %s", extra)
		}
		paths = append(paths, extra)
	}
	return load(paths)
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Last wins
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.Library.Source = expandPath(cfg.Library.Source)
	cfg.Library.ITunesXML = expandPath(cfg.Library.ITunesXML)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if cfg.Library.Source == "" {
		cfg.Library.Source = xdg.UserDirs.Music
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints. Call it again after applying CLI overrides.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate config")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return errors.Mark(errors.Newf("%s", strings.Join(msgs, "; ")), ErrInvalid)
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/powerhour/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm credentials are configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// UsesCommandPlayer reports whether rounds are played by an external command.
func (c *Config) UsesCommandPlayer() bool {
	return strings.TrimSpace(c.Player.Command) != ""
}
