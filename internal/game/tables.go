package game

import (
	"errors"
	"io/fs"

	"github.com/skyraid/skyraid/internal/data"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/scripting"
	"go.uber.org/zap"
)

// Missing files fall back to the built-in tables; broken ones are errors.

func loadLevels(path string, log *zap.Logger) (*data.LevelTable, error) {
	if path == "" {
		return data.DefaultLevelTable(), nil
	}
	t, err := data.LoadLevelTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("level file not found, using built-in levels", zap.String("path", path))
		return data.DefaultLevelTable(), nil
	}
	if err != nil {
		return nil, err
	}
	log.Info("levels loaded", zap.String("path", path), zap.Int("count", t.Count()))
	return t, nil
}

func loadActors(path string, log *zap.Logger) (*entity.Tuning, error) {
	if path == "" {
		return entity.DefaultTuning(), nil
	}
	t, err := data.LoadActorTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("actor file not found, using built-in tuning", zap.String("path", path))
		return entity.DefaultTuning(), nil
	}
	if err != nil {
		return nil, err
	}
	log.Info("actors loaded", zap.String("path", path), zap.Int("count", len(t.Actors)))
	return t, nil
}

// loadDifficulty returns a nil engine when the built-in curve is used.
func loadDifficulty(path string, log *zap.Logger) (*scripting.Engine, level.Difficulty, error) {
	curve := level.DefaultCurve()
	if path == "" {
		return nil, curve, nil
	}
	e, err := scripting.NewEngine(path, curve, log)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("difficulty script not found, using built-in curve", zap.String("path", path))
		return nil, curve, nil
	}
	if err != nil {
		return nil, nil, err
	}
	log.Info("difficulty script loaded", zap.String("path", path))
	return e, e, nil
}
