package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skyraid.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
[game]
tick_rate = "20ms"
start_level = "endless"

[scores]
driver = "postgres"
dsn = "postgres://skyraid@localhost/skyraid"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Game.TickRate)
	assert.Equal(t, "endless", cfg.Game.StartLevel)
	assert.Equal(t, 1300.0, cfg.Game.ScreenWidth)
	assert.Equal(t, "postgres", cfg.Scores.Driver)
	assert.Equal(t, 5, cfg.Scores.TopN)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "[game\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeFile(t, "[scores]\ndriver = \"mongo\"\n"))
	assert.ErrorContains(t, err, "not supported")
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().validate())
}
