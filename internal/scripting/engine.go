package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/skyraid/skyraid/internal/geom"
	"github.com/skyraid/skyraid/internal/level"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM running the endless-mode difficulty script.
// Single-goroutine access only (level loop). Reloads build a new Engine.
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback level.Difficulty
	limits   level.Curve
}

// NewEngine loads the script at path, or every .lua file when path is a
// directory. fallback answers whenever the script is missing a function or fails.
// Script results are capped by fallback when it is a level.Curve, otherwise
// by the default curve.
func NewEngine(path string, fallback level.Difficulty, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	limits := level.DefaultCurve()
	if c, ok := fallback.(level.Curve); ok {
		limits = c
	}
	e := &Engine{vm: vm, log: log, fallback: fallback, limits: limits}

	info, err := os.Stat(path)
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("load difficulty script: %w", err)
	}
	if info.IsDir() {
		err = e.loadDir(path)
	} else {
		err = e.loadFile(path)
	}
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("load difficulty script: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.loadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) loadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// NextWave calls the Lua next_wave function:
//
//	next_wave({number=, max_enemies=, spawn_chance=}) -> same shape
//
// Missing fields keep the fallback's value; results are held to the enemy and
// spawn chance caps of the curve.
func (e *Engine) NextWave(cur level.Wave) level.Wave {
	def := e.fallback.NextWave(cur)

	fn := e.vm.GetGlobal("next_wave")
	if fn == lua.LNil {
		e.log.Error("lua function next_wave not found")
		return def
	}

	t := e.vm.NewTable()
	t.RawSetString("number", lua.LNumber(cur.Number))
	t.RawSetString("max_enemies", lua.LNumber(cur.MaxEnemies))
	t.RawSetString("spawn_chance", lua.LNumber(cur.SpawnChance))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua next_wave error", zap.Error(err))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua next_wave returned non-table", zap.String("type", result.Type().String()))
		return def
	}

	// numbers are bounded before the int conversion
	next := def
	if v, ok := lNumber(rt, "number"); ok && !math.IsNaN(v) {
		next.Number = int(geom.Clamp(v, float64(cur.Number+1), math.MaxInt32))
	}
	if v, ok := lNumber(rt, "max_enemies"); ok && !math.IsNaN(v) {
		next.MaxEnemies = int(geom.Clamp(v, 0, float64(e.limits.EnemyCap)))
	}
	if v, ok := lNumber(rt, "spawn_chance"); ok {
		next.SpawnChance = v
	}
	if next.Number <= cur.Number {
		next.Number = cur.Number + 1
	}
	return e.limits.Clamp(next)
}

// lNumber reads a numeric field from a Lua table.
func lNumber(t *lua.LTable, key string) (float64, bool) {
	n, ok := t.RawGetString(key).(lua.LNumber)
	return float64(n), ok
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
