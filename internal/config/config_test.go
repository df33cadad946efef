// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jason-s-yu/vexation/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	assert.False(t, c.HasSeed)
	assert.True(t, c.PowerUps)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
}

func TestFromEnvParsesEverything(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"VEXATION_SEED":            "1234",
		"VEXATION_HUMAN":           "Red, yellow",
		"VEXATION_COMPUTER_DELAY":  "750ms",
		"VEXATION_ANIMATION_DELAY": "1s",
		"VEXATION_POWER_UPS":       "false",
		"VEXATION_MAX_TURNS":       "300",
		"VEXATION_LOG_LEVEL":       "debug",
		"VEXATION_LOG_FORMAT":      "JSON",
		"VEXATION_GAMES":           "50",
		"VEXATION_WORKERS":         "3",
	}))
	require.NoError(t, err)
	assert.True(t, c.HasSeed)
	assert.Equal(t, uint64(1234), c.Seed)
	assert.Equal(t, uint64(1234), c.GameSeed())
	assert.Equal(t, [engine.NumPlayers]bool{true, false, false, true}, c.Human)
	assert.Equal(t, 750*time.Millisecond, c.ComputerDelay)
	assert.Equal(t, time.Second, c.AnimationDelay)
	assert.False(t, c.PowerUps)
	assert.Equal(t, uint16(300), c.MaxTurns)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 50, c.Games)
	assert.Equal(t, 3, c.Workers)

	r := c.Rules()
	assert.Equal(t, c.Human, r.Human)
	assert.False(t, r.PowerUps)
	assert.Equal(t, uint16(300), r.MaxTurns)
	assert.Equal(t, engine.DefaultRules().DraftWeights, r.DraftWeights)

	l := c.Logger()
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	bad := map[string]string{
		"VEXATION_SEED":           "-1",
		"VEXATION_HUMAN":          "red,purple",
		"VEXATION_COMPUTER_DELAY": "soon",
		"VEXATION_POWER_UPS":      "maybe",
		"VEXATION_MAX_TURNS":      "70000",
		"VEXATION_LOG_LEVEL":      "loud",
		"VEXATION_LOG_FORMAT":     "xml",
		"VEXATION_GAMES":          "0",
		"VEXATION_WORKERS":        "many",
	}
	for k, v := range bad {
		_, err := FromEnv(env(map[string]string{k: v}))
		assert.Error(t, err, k)
		if err != nil {
			assert.Contains(t, err.Error(), k)
		}
	}
}

func TestParseHuman(t *testing.T) {
	h, err := ParseHuman("none")
	require.NoError(t, err)
	assert.Equal(t, [engine.NumPlayers]bool{}, h)

	h, err = ParseHuman("blue")
	require.NoError(t, err)
	assert.True(t, h[engine.Blue])
	assert.False(t, h[engine.Red])
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VEXATION_GAMES=17\nVEXATION_WORKERS=2\n"), 0o600))

	t.Setenv("VEXATION_ENV_FILE", path)
	t.Setenv("VEXATION_WORKERS", "5")
	t.Setenv("VEXATION_GAMES", "")
	os.Unsetenv("VEXATION_GAMES")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 17, c.Games)
	assert.Equal(t, 5, c.Workers, "process environment wins over the file")
}

func TestLoadWithoutEnvFile(t *testing.T) {
	t.Setenv("VEXATION_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	_, err := Load()
	assert.NoError(t, err)
}
