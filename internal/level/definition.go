package level

import (
	"errors"
	"fmt"

	"github.com/skyraid/skyraid/internal/entity"
)

// ErrUnknownKind is returned for a level whose kind has no policy.
var ErrUnknownKind = errors.New("unknown level kind")

// Kind selects the spawn and win policy of a level.
type Kind string

const (
	KindKillTarget Kind = "kill_target"
	KindBoss       Kind = "boss"
	KindEndless    Kind = "endless"
)

// Definition describes one level.
type Definition struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Kind         Kind    `yaml:"kind"`
	Next         string  `yaml:"next"`
	EnemyClass   string  `yaml:"enemy_class"`
	MaxEnemies   int     `yaml:"max_enemies"`
	SpawnChance  float64 `yaml:"spawn_chance"`
	KillTarget   int     `yaml:"kill_target"`
	SpawnYMin    float64 `yaml:"spawn_y_min"`
	SpawnYRange  float64 `yaml:"spawn_y_range"` // 0 means field height minus 150
	TrackScore   bool    `yaml:"track_score"`
	KillsPerWave int     `yaml:"kills_per_wave"` // endless: wave n ends at n*KillsPerWave kills
	Endless      *Wave   `yaml:"endless"`        // endless: starting wave
}

// Validate checks the fields the level's kind depends on.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return errors.New("level id required")
	}
	switch d.Kind {
	case KindKillTarget:
		if d.KillTarget <= 0 {
			return fmt.Errorf("level %s: kill_target must be positive", d.ID)
		}
		if d.MaxEnemies <= 0 {
			return fmt.Errorf("level %s: max_enemies must be positive", d.ID)
		}
	case KindBoss:
	case KindEndless:
		if d.KillsPerWave <= 0 {
			return fmt.Errorf("level %s: kills_per_wave must be positive", d.ID)
		}
		if d.Endless == nil {
			return fmt.Errorf("level %s: endless section required", d.ID)
		}
	default:
		return fmt.Errorf("level %s kind %q: %w", d.ID, d.Kind, ErrUnknownKind)
	}
	return nil
}

func (d *Definition) enemyClass() string {
	if d.EnemyClass == "" {
		return entity.ClassEnemy
	}
	return d.EnemyClass
}

// DefaultDefinitions returns the built-in campaign: a kill-count level, a
// boss level, and endless mode.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			ID:          "level_one",
			Name:        "Level One",
			Kind:        KindKillTarget,
			Next:        "level_two",
			MaxEnemies:  5,
			SpawnChance: 0.20,
			KillTarget:  10,
		},
		{
			ID:   "level_two",
			Name: "Boss",
			Kind: KindBoss,
		},
		{
			ID:           "endless",
			Name:         "Endless",
			Kind:         KindEndless,
			SpawnYMin:    30,
			TrackScore:   true,
			KillsPerWave: 10,
			Endless: &Wave{
				Number:      1,
				MaxEnemies:  5,
				SpawnChance: 0.3,
			},
		},
	}
}
