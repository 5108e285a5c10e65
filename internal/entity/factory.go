package entity

import (
	"fmt"
)

// Factory builds entities from a tuning table. It shares one random source
// with every entity it creates.
type Factory struct {
	tuning *Tuning
	rng    Rand
}

func NewFactory(tuning *Tuning, rng Rand) *Factory {
	return &Factory{tuning: tuning, rng: rng}
}

func (f *Factory) Tuning() *Tuning { return f.tuning }
func (f *Factory) Rand() Rand      { return f.rng }

func (f *Factory) spec(class string, want Kind) (*ActorSpec, error) {
	s, err := f.tuning.Lookup(class)
	if err != nil {
		return nil, err
	}
	k, err := parseKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", class, err)
	}
	if k != want {
		return nil, fmt.Errorf("actor %q is %s, want %s: %w", class, k, want, ErrWrongKind)
	}
	return s, nil
}

// Player builds the player craft at its configured start position.
func (f *Factory) Player() (*Entity, error) {
	s, err := f.spec(ClassPlayer, KindPlayer)
	if err != nil {
		return nil, err
	}
	if _, err := f.spec(s.Projectile, KindPlayerProjectile); err != nil {
		return nil, err
	}
	return newEntity(KindPlayer, ClassPlayer, s, s.Start.X, s.Start.Y, &playerCraft{f: f}), nil
}

// Enemy builds an enemy of the given class at (x, y).
func (f *Factory) Enemy(class string, x, y float64) (*Entity, error) {
	s, err := f.spec(class, KindEnemy)
	if err != nil {
		return nil, err
	}
	if _, err := f.spec(s.Projectile, KindEnemyProjectile); err != nil {
		return nil, err
	}
	return newEntity(KindEnemy, class, s, x, y, &enemyCraft{f: f}), nil
}

// Boss builds the boss craft and returns its behavior for inspection.
func (f *Factory) Boss() (*Entity, *BossBehavior, error) {
	s, err := f.spec(ClassBoss, KindBoss)
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.spec(s.Projectile, KindEnemyProjectile); err != nil {
		return nil, nil, err
	}
	bb := NewBossBehavior(*s.Boss, s.SpeedY, f.rng)
	e := newEntity(KindBoss, ClassBoss, s, s.Start.X, s.Start.Y, &bossCraft{f: f, b: bb})
	return e, bb, nil
}

func (f *Factory) projectile(class string, kind Kind, owner *Entity) *Entity {
	s, err := f.spec(class, kind)
	if err != nil {
		// constructors verified the projectile class up front
		panic(err)
	}
	x := owner.X + owner.spec.Muzzle.X
	y := owner.Y + owner.spec.Muzzle.Y
	return newEntity(kind, class, s, x, y, projectile{})
}

// PlayerProjectile builds a player projectile at (x, y).
func (f *Factory) PlayerProjectile(x, y float64) (*Entity, error) {
	s, err := f.spec(ClassPlayerProjectile, KindPlayerProjectile)
	if err != nil {
		return nil, err
	}
	return newEntity(KindPlayerProjectile, ClassPlayerProjectile, s, x, y, projectile{}), nil
}

// EnemyProjectile builds an enemy projectile of class at (x, y).
func (f *Factory) EnemyProjectile(class string, x, y float64) (*Entity, error) {
	s, err := f.spec(class, KindEnemyProjectile)
	if err != nil {
		return nil, err
	}
	return newEntity(KindEnemyProjectile, class, s, x, y, projectile{}), nil
}
