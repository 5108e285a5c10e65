package level

import (
	"fmt"
)

// policy is the per-kind part of a session: spawning, win condition and HUD.
type policy interface {
	start(s *Session) error
	spawn(s *Session)
	won(s *Session) bool
	hud(f *Frame)
}

func newPolicy(def *Definition, diff Difficulty) (policy, error) {
	switch def.Kind {
	case KindKillTarget:
		return &killTarget{def: def}, nil
	case KindBoss:
		return &bossFight{}, nil
	case KindEndless:
		if diff == nil {
			diff = DefaultCurve()
		}
		limits := DefaultCurve()
		if c, ok := diff.(Curve); ok {
			limits = c
		}
		return &endless{def: def, diff: diff, limits: limits}, nil
	}
	return nil, fmt.Errorf("level %s kind %q: %w", def.ID, def.Kind, ErrUnknownKind)
}

// spawnSlots rolls once per free slot below max and spawns an enemy on success.
func spawnSlots(s *Session, max int, chance float64) {
	free := max - s.registry.Enemies().Len()
	for i := 0; i < free; i++ {
		if s.rng.Float64() < chance {
			s.spawnEnemy()
		}
	}
}

// killTarget is won once the kill count reaches the target.
type killTarget struct {
	def *Definition
}

func (p *killTarget) start(*Session) error { return nil }

func (p *killTarget) spawn(s *Session) {
	spawnSlots(s, p.def.MaxEnemies, p.def.SpawnChance)
}

func (p *killTarget) won(s *Session) bool { return s.kills >= p.def.KillTarget }

func (p *killTarget) hud(f *Frame) { f.KillTarget = p.def.KillTarget }

// bossFight is won once the boss is destroyed. The boss is the only enemy
// and is re-registered whenever the enemy collection runs empty.
type bossFight struct{}

func (p *bossFight) start(s *Session) error {
	boss, bb, err := s.factory.Boss()
	if err != nil {
		return err
	}
	s.boss = boss
	s.bossBehavior = bb
	s.registry.AddEnemy(boss)
	return nil
}

func (p *bossFight) spawn(s *Session) {
	if s.registry.Enemies().Len() == 0 && !s.boss.Destroyed() {
		s.registry.AddEnemy(s.boss)
	}
}

func (p *bossFight) won(s *Session) bool { return s.boss.Destroyed() }

func (p *bossFight) hud(*Frame) {}

// endless never ends in a win. Every KillsPerWave·wave kills the difficulty
// produces a harder wave. Waves never exceed the caps of limits, whatever
// the difficulty returns.
type endless struct {
	def    *Definition
	diff   Difficulty
	limits Curve
	wave   Wave
}

func (p *endless) start(*Session) error {
	p.wave = p.limits.Clamp(*p.def.Endless)
	return nil
}

func (p *endless) spawn(s *Session) {
	spawnSlots(s, p.wave.MaxEnemies, p.wave.SpawnChance)
}

func (p *endless) won(s *Session) bool {
	if s.kills >= p.wave.Number*p.def.KillsPerWave {
		prev := p.wave
		next := p.limits.Clamp(p.diff.NextWave(prev))
		if next.Number <= prev.Number {
			next.Number = prev.Number + 1
		}
		p.wave = next
		s.waveCleared(prev, p.wave)
	}
	return false
}

func (p *endless) hud(f *Frame) { f.Wave = p.wave.Number }
