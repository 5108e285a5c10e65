package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skyraid/skyraid/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "difficulty.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newEngine(t *testing.T, body string) *Engine {
	t.Helper()
	e, err := NewEngine(script(t, body), level.DefaultCurve(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestNextWaveFromScript(t *testing.T) {
	e := newEngine(t, `
function next_wave(w)
  return {
    number = w.number + 1,
    max_enemies = w.max_enemies + 3,
    spawn_chance = w.spawn_chance * 2,
  }
end
`)
	got := e.NextWave(level.Wave{Number: 2, MaxEnemies: 6, SpawnChance: 0.3})
	assert.Equal(t, 3, got.Number)
	assert.Equal(t, 9, got.MaxEnemies)
	assert.InDelta(t, 0.6, got.SpawnChance, 1e-9)

	got = e.NextWave(got)
	got = e.NextWave(got)
	assert.Equal(t, 10, got.MaxEnemies, "capped by the curve")
	assert.Equal(t, 0.9, got.SpawnChance, "capped by the curve")
}

func TestNextWaveRunawayScriptIsCapped(t *testing.T) {
	e := newEngine(t, `
function next_wave(w)
  return { number = 1e300, max_enemies = 1e12, spawn_chance = 0/0 }
end
`)
	got := e.NextWave(level.Wave{Number: 1, MaxEnemies: 5, SpawnChance: 0.3})
	assert.Equal(t, 10, got.MaxEnemies)
	assert.GreaterOrEqual(t, got.SpawnChance, 0.0)
	assert.LessOrEqual(t, got.SpawnChance, 0.9)
	assert.Greater(t, got.Number, 1)

	negative := newEngine(t, `function next_wave(w) return { max_enemies = -3, spawn_chance = 7 } end`)
	got = negative.NextWave(level.Wave{Number: 1, MaxEnemies: 5, SpawnChance: 0.3})
	assert.Equal(t, 0, got.MaxEnemies)
	assert.Equal(t, 0.9, got.SpawnChance)
}

func TestNextWavePartialTableKeepsFallback(t *testing.T) {
	e := newEngine(t, `function next_wave(w) return { max_enemies = 8 } end`)
	got := e.NextWave(level.Wave{Number: 1, MaxEnemies: 5, SpawnChance: 0.3})
	assert.Equal(t, level.Wave{Number: 2, MaxEnemies: 8, SpawnChance: 0.32}, roundWave(got))
}

func TestNextWaveFallbacks(t *testing.T) {
	cur := level.Wave{Number: 1, MaxEnemies: 5, SpawnChance: 0.3}
	want := roundWave(level.DefaultCurve().NextWave(cur))

	missing := newEngine(t, `-- no next_wave here`)
	assert.Equal(t, want, roundWave(missing.NextWave(cur)))

	failing := newEngine(t, `function next_wave(w) error("boom") end`)
	assert.Equal(t, want, roundWave(failing.NextWave(cur)))

	scalar := newEngine(t, `function next_wave(w) return 7 end`)
	assert.Equal(t, want, roundWave(scalar.NextWave(cur)))

	backwards := newEngine(t, `function next_wave(w) return { number = 0 } end`)
	assert.Equal(t, 2, backwards.NextWave(cur).Number)
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngine(filepath.Join(t.TempDir(), "nope.lua"), level.DefaultCurve(), zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewEngine(script(t, "function ("), level.DefaultCurve(), zap.NewNop())
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`STEP = 4`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`function next_wave(w) return { max_enemies = w.max_enemies + STEP } end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte(`not lua`), 0o644))

	e, err := NewEngine(dir, level.DefaultCurve(), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, 9, e.NextWave(level.Wave{Number: 1, MaxEnemies: 5}).MaxEnemies)
}

// roundWave trims float noise from spawn chances so waves compare exactly.
func roundWave(w level.Wave) level.Wave {
	w.SpawnChance = float64(int(w.SpawnChance*1000+0.5)) / 1000
	return w
}

func TestShippedDifficultyScript(t *testing.T) {
	e, err := NewEngine("../../scripts/difficulty.lua", level.DefaultCurve(), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	// the shipped script follows the built-in curve wave for wave
	curve := level.DefaultCurve()
	scripted := level.Wave{Number: 1, MaxEnemies: 5, SpawnChance: 0.3}
	builtin := scripted
	for i := 0; i < 40; i++ {
		scripted = e.NextWave(scripted)
		builtin = curve.NextWave(builtin)
		require.Equal(t, roundWave(builtin), roundWave(scripted), "wave %d", builtin.Number)
	}
	assert.Equal(t, 10, scripted.MaxEnemies)
	assert.InDelta(t, 0.9, scripted.SpawnChance, 1e-9)
}
