package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const levelsYAML = `
levels:
  - id: level_one
    name: Level One
    kind: kill_target
    next: boss
    max_enemies: 5
    spawn_chance: 0.2
    kill_target: 10
  - id: boss
    name: Boss
    kind: boss
  - id: endless
    kind: endless
    track_score: true
    kills_per_wave: 10
    spawn_y_min: 30
    endless:
      number: 1
      max_enemies: 5
      spawn_chance: 0.3
`

func TestLoadLevelTable(t *testing.T) {
	path := write(t, t.TempDir(), "levels.yaml", levelsYAML)
	table, err := LoadLevelTable(path)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Count())
	assert.Equal(t, []string{"level_one", "boss", "endless"}, table.IDs())

	one, err := table.Get("level_one")
	require.NoError(t, err)
	assert.Equal(t, level.KindKillTarget, one.Kind)
	assert.Equal(t, "boss", one.Next)
	assert.Equal(t, 0.2, one.SpawnChance)

	end, err := table.Get("endless")
	require.NoError(t, err)
	require.NotNil(t, end.Endless)
	assert.Equal(t, 5, end.Endless.MaxEnemies)
	assert.True(t, end.TrackScore)

	_, err = table.Get("level_nine")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLevelTableRejectsBadRefs(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadLevelTable(write(t, dir, "a.yaml", "levels:\n  - {id: a, kind: boss, next: b}\n"))
	assert.ErrorIs(t, err, ErrUnknownLevel)

	_, err = LoadLevelTable(write(t, dir, "b.yaml", "levels:\n  - {id: a, kind: siege}\n"))
	assert.ErrorIs(t, err, level.ErrUnknownKind)

	_, err = LoadLevelTable(write(t, dir, "c.yaml", "levels:\n  - {id: a, kind: boss}\n  - {id: a, kind: boss}\n"))
	assert.ErrorContains(t, err, "defined twice")

	_, err = LoadLevelTable(write(t, dir, "d.yaml", "levels: [\n"))
	assert.ErrorContains(t, err, "parse levels")
}

func TestDefaultLevelTable(t *testing.T) {
	table := DefaultLevelTable()
	d, err := table.Get("level_one")
	require.NoError(t, err)
	assert.Equal(t, "level_two", d.Next)
}

func TestLoadActorTableMerges(t *testing.T) {
	path := write(t, t.TempDir(), "actors.yaml", `
actors:
  enemy:
    kind: enemy
    width: 100
    height: 80
    hitbox: {offset_x: 0, offset_y: 0, scale_x: 1, scale_y: 1}
    health: 2
    speed_x: -9
    fire_rate: 0.02
    muzzle: {x: -20, y: 10}
    projectile: enemy_projectile
`)
	tun, err := LoadActorTable(path)
	require.NoError(t, err)

	enemy, err := tun.Lookup(entity.ClassEnemy)
	require.NoError(t, err)
	assert.Equal(t, 2, enemy.Health)
	assert.Equal(t, -9.0, enemy.SpeedX)

	boss, err := tun.Lookup(entity.ClassBoss)
	require.NoError(t, err)
	assert.Equal(t, 20, boss.Health, "untouched classes keep defaults")
}

func TestLoadActorTableMissingProjectile(t *testing.T) {
	path := write(t, t.TempDir(), "actors.yaml", `
actors:
  gunship:
    kind: enemy
    health: 1
    projectile: plasma
`)
	_, err := LoadActorTable(path)
	assert.ErrorIs(t, err, entity.ErrMissingSprite)
}

func TestWatcherReportsTableWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, dir)
	require.NoError(t, err)
	defer w.Close()

	write(t, dir, "notes.txt", "ignored")
	path := write(t, dir, "levels.yaml", levelsYAML)

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no watch event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	for range w.Events {
		// drains and ends once the channel is closed
	}
}

func TestShippedTablesMatchDefaults(t *testing.T) {
	levels, err := LoadLevelTable("../../data/levels.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultLevelTable().IDs(), levels.IDs())
	for _, def := range level.DefaultDefinitions() {
		got, err := levels.Get(def.ID)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	}

	actors, err := LoadActorTable("../../data/actors.yaml")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTuning(), actors)
}
