// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/jason-s-yu/vexation/engine"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds settings read from the environment (and an optional .env
// file). Command-line flags override them.
type Config struct {
	Seed           uint64
	HasSeed        bool
	Human          [engine.NumPlayers]bool
	ComputerDelay  time.Duration
	AnimationDelay time.Duration
	PowerUps       bool
	MaxTurns       uint16
	LogLevel       logrus.Level
	LogFormat      string // "text" or "json"
	Games          int
	Workers        int
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		PowerUps:  true,
		LogLevel:  logrus.InfoLevel,
		LogFormat: "text",
		Games:     1000,
		Workers:   runtime.NumCPU(),
	}
}

// Load reads VEXATION_* variables. A .env file (or the file named by
// VEXATION_ENV_FILE) is loaded first when present; variables already set in
// the environment win.
func Load() (Config, error) {
	file := os.Getenv("VEXATION_ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", file, err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Defaults()
	var err error

	if v := getenv("VEXATION_SEED"); v != "" {
		if c.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return c, fmt.Errorf("VEXATION_SEED: %w", err)
		}
		c.HasSeed = true
	}
	if v := getenv("VEXATION_HUMAN"); v != "" {
		if c.Human, err = ParseHuman(v); err != nil {
			return c, fmt.Errorf("VEXATION_HUMAN: %w", err)
		}
	}
	if v := getenv("VEXATION_COMPUTER_DELAY"); v != "" {
		if c.ComputerDelay, err = time.ParseDuration(v); err != nil {
			return c, fmt.Errorf("VEXATION_COMPUTER_DELAY: %w", err)
		}
	}
	if v := getenv("VEXATION_ANIMATION_DELAY"); v != "" {
		if c.AnimationDelay, err = time.ParseDuration(v); err != nil {
			return c, fmt.Errorf("VEXATION_ANIMATION_DELAY: %w", err)
		}
	}
	if v := getenv("VEXATION_POWER_UPS"); v != "" {
		if c.PowerUps, err = strconv.ParseBool(v); err != nil {
			return c, fmt.Errorf("VEXATION_POWER_UPS: %w", err)
		}
	}
	if v := getenv("VEXATION_MAX_TURNS"); v != "" {
		n, perr := strconv.ParseUint(v, 10, 16)
		if perr != nil {
			return c, fmt.Errorf("VEXATION_MAX_TURNS: %w", perr)
		}
		c.MaxTurns = uint16(n)
	}
	if v := getenv("VEXATION_LOG_LEVEL"); v != "" {
		if c.LogLevel, err = logrus.ParseLevel(v); err != nil {
			return c, fmt.Errorf("VEXATION_LOG_LEVEL: %w", err)
		}
	}
	if v := getenv("VEXATION_LOG_FORMAT"); v != "" {
		v = strings.ToLower(v)
		if v != "text" && v != "json" {
			return c, fmt.Errorf("VEXATION_LOG_FORMAT: unknown format %q", v)
		}
		c.LogFormat = v
	}
	if v := getenv("VEXATION_GAMES"); v != "" {
		if c.Games, err = positive(v); err != nil {
			return c, fmt.Errorf("VEXATION_GAMES: %w", err)
		}
	}
	if v := getenv("VEXATION_WORKERS"); v != "" {
		if c.Workers, err = positive(v); err != nil {
			return c, fmt.Errorf("VEXATION_WORKERS: %w", err)
		}
	}
	return c, nil
}

func positive(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

// ParseHuman parses a comma-separated list of colors ("red,blue"). "none"
// or an empty string means all seats are computer controlled.
func ParseHuman(v string) ([engine.NumPlayers]bool, error) {
	var out [engine.NumPlayers]bool
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "none") {
		return out, nil
	}
	for _, part := range strings.Split(v, ",") {
		p, ok := engine.ParsePlayer(strings.ToLower(strings.TrimSpace(part)))
		if !ok {
			return out, fmt.Errorf("unknown color %q", part)
		}
		out[p] = true
	}
	return out, nil
}

// Rules returns engine rules for this configuration.
func (c Config) Rules() engine.Rules {
	r := engine.DefaultRules()
	r.Human = c.Human
	r.PowerUps = c.PowerUps
	r.MaxTurns = c.MaxTurns
	return r
}

// GameSeed returns the configured seed, or one derived from the clock.
func (c Config) GameSeed() uint64 {
	if c.HasSeed {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Logger builds the process logger.
func (c Config) Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
