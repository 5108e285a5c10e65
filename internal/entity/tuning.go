package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSprite is returned when an actor class has no tuning entry.
	ErrMissingSprite = errors.New("missing sprite tuning")
	// ErrWrongKind is returned when a class is used as a different variant than it declares.
	ErrWrongKind = errors.New("actor class kind mismatch")
)

// Standard actor classes.
const (
	ClassPlayer           = "player"
	ClassEnemy            = "enemy"
	ClassBoss             = "boss"
	ClassPlayerProjectile = "player_projectile"
	ClassEnemyProjectile  = "enemy_projectile"
	ClassBossProjectile   = "boss_projectile"
)

type Hitbox struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	ScaleX  float64 `yaml:"scale_x"`
	ScaleY  float64 `yaml:"scale_y"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Bounds limits the top-left corner of an actor. A move leaving it is reverted.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// BossSpec configures the boss movement pattern and shield.
type BossSpec struct {
	MoveRepeats   int     `yaml:"move_repeats"`    // copies of {+v, -v, 0} in the pattern
	FramesPerMove int     `yaml:"frames_per_move"` // consecutive frames before the cursor advances
	ShieldChance  float64 `yaml:"shield_chance"`   // per-frame activation probability
	ShieldFrames  int     `yaml:"shield_frames"`   // frames the shield stays up
}

// ActorSpec is the tuning entry for one actor class.
type ActorSpec struct {
	Kind       string    `yaml:"kind"` // player, enemy, boss, player_projectile, enemy_projectile
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Hitbox     Hitbox    `yaml:"hitbox"`
	Health     int       `yaml:"health"`
	SpeedX     float64   `yaml:"speed_x"`
	SpeedY     float64   `yaml:"speed_y"`
	FireRate   float64   `yaml:"fire_rate"`
	Muzzle     Point     `yaml:"muzzle"` // projectile spawn, relative to the actor
	Projectile string    `yaml:"projectile"`
	Start      Point     `yaml:"start"`
	Bounds     *Bounds   `yaml:"bounds"`
	Boss       *BossSpec `yaml:"boss"`
}

// Tuning maps actor classes to their specs.
type Tuning struct {
	Actors map[string]*ActorSpec
}

// Lookup returns the spec for class or ErrMissingSprite.
func (t *Tuning) Lookup(class string) (*ActorSpec, error) {
	s, ok := t.Actors[class]
	if !ok || s == nil {
		return nil, fmt.Errorf("actor %q: %w", class, ErrMissingSprite)
	}
	return s, nil
}

// Merge overlays the given specs onto the table, replacing whole entries.
func (t *Tuning) Merge(actors map[string]*ActorSpec) {
	for class, s := range actors {
		t.Actors[class] = s
	}
}

// Validate checks that every class resolves and every referenced projectile exists.
func (t *Tuning) Validate() error {
	for class, s := range t.Actors {
		kind, err := parseKind(s.Kind)
		if err != nil {
			return fmt.Errorf("actor %q: %w", class, err)
		}
		if kind.IsCraft() && s.Health <= 0 {
			return fmt.Errorf("actor %q: health must be positive", class)
		}
		if s.Projectile != "" {
			if _, err := t.Lookup(s.Projectile); err != nil {
				return fmt.Errorf("actor %q projectile: %w", class, err)
			}
		}
		if s.Kind == "boss" && s.Boss == nil {
			return fmt.Errorf("actor %q: boss section required", class)
		}
	}
	return nil
}

func parseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("kind %q: %w", s, ErrWrongKind)
}

// DefaultTuning returns the built-in actor table.
func DefaultTuning() *Tuning {
	return &Tuning{Actors: map[string]*ActorSpec{
		ClassPlayer: {
			Kind:       "player",
			Width:      150,
			Height:     150,
			Hitbox:     Hitbox{OffsetX: 10, OffsetY: 50, ScaleX: 0.9, ScaleY: 0.3},
			Health:     5,
			SpeedX:     15,
			SpeedY:     15,
			FireRate:   1,
			Muzzle:     Point{X: 50, Y: 25},
			Projectile: ClassPlayerProjectile,
			Start:      Point{X: 5, Y: 300},
			Bounds:     &Bounds{MinX: 0, MaxX: 800, MinY: -40, MaxY: 600},
		},
		ClassEnemy: {
			Kind:       "enemy",
			Width:      120,
			Height:     120,
			Hitbox:     Hitbox{OffsetX: 5, OffsetY: 35, ScaleX: 0.9, ScaleY: 0.4},
			Health:     1,
			SpeedX:     -6,
			FireRate:   0.01,
			Muzzle:     Point{X: -100, Y: 50},
			Projectile: ClassEnemyProjectile,
		},
		ClassBoss: {
			Kind:       "boss",
			Width:      300,
			Height:     300,
			Hitbox:     Hitbox{OffsetX: 50, OffsetY: 100, ScaleX: 0.9, ScaleY: 0.3},
			Health:     20,
			SpeedY:     8,
			FireRate:   0.04,
			Muzzle:     Point{X: -50, Y: 75},
			Projectile: ClassBossProjectile,
			Start:      Point{X: 1000, Y: 400},
			Bounds:     &Bounds{MinX: 0, MaxX: 1300, MinY: -100, MaxY: 475},
			Boss: &BossSpec{
				MoveRepeats:   5,
				FramesPerMove: 10,
				ShieldChance:  0.05,
				ShieldFrames:  100,
			},
		},
		ClassPlayerProjectile: {
			Kind:   "player_projectile",
			Width:  125,
			Height: 125,
			Hitbox: Hitbox{OffsetX: 60, OffsetY: 50, ScaleX: 0.3, ScaleY: 0.3},
			SpeedX: 20,
		},
		ClassEnemyProjectile: {
			Kind:   "enemy_projectile",
			Width:  30,
			Height: 30,
			Hitbox: Hitbox{ScaleX: 1, ScaleY: 1},
			SpeedX: -10,
		},
		ClassBossProjectile: {
			Kind:   "enemy_projectile",
			Width:  50,
			Height: 50,
			Hitbox: Hitbox{ScaleX: 1, ScaleY: 1},
			SpeedX: -15,
		},
	}}
}
