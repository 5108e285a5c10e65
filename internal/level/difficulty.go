package level

import (
	"math"

	"github.com/skyraid/skyraid/internal/geom"
)

// Wave is the spawn pressure of an endless level.
type Wave struct {
	Number      int     `yaml:"number"`
	MaxEnemies  int     `yaml:"max_enemies"`
	SpawnChance float64 `yaml:"spawn_chance"`
}

// Difficulty computes the next wave once the current one is cleared.
type Difficulty interface {
	NextWave(cur Wave) Wave
}

// Curve is the built-in difficulty progression.
type Curve struct {
	EnemiesPerWave int
	EnemyCap       int
	ChanceStep     float64
	ChanceCap      float64
}

// DefaultCurve adds two enemies (up to 10) and 0.02 spawn chance (up to 0.9) per wave.
func DefaultCurve() Curve {
	return Curve{
		EnemiesPerWave: 2,
		EnemyCap:       10,
		ChanceStep:     0.02,
		ChanceCap:      0.9,
	}
}

func (c Curve) NextWave(cur Wave) Wave {
	return Wave{
		Number:      cur.Number + 1,
		MaxEnemies:  min(cur.MaxEnemies+c.EnemiesPerWave, c.EnemyCap),
		SpawnChance: min(cur.SpawnChance+c.ChanceStep, c.ChanceCap),
	}
}

// Clamp keeps the enemy cap and spawn chance of w within the curve's caps.
func (c Curve) Clamp(w Wave) Wave {
	w.MaxEnemies = min(max(w.MaxEnemies, 0), c.EnemyCap)
	if math.IsNaN(w.SpawnChance) {
		w.SpawnChance = 0
	}
	w.SpawnChance = geom.Clamp(w.SpawnChance, 0, c.ChanceCap)
	return w
}
