package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/core/event"
	coresys "github.com/skyraid/skyraid/internal/core/system"
)

// ReapSystem removes destroyed entities at the end of the simulation step
// and reports enemy kills.
// Phase 5 (Reap).
type ReapSystem struct {
	registry *ecs.Registry
	bus      *event.Bus
	onKills  func(n int) int
}

// NewReapSystem creates the reap stage. onKills receives the number of enemies
// removed this tick and returns the new running total.
func NewReapSystem(registry *ecs.Registry, bus *event.Bus, onKills func(n int) int) *ReapSystem {
	return &ReapSystem{registry: registry, bus: bus, onKills: onKills}
}

func (s *ReapSystem) Phase() coresys.Phase { return coresys.PhaseReap }

func (s *ReapSystem) Update(_ time.Duration) {
	n := s.registry.ReapDestroyed()
	if n <= 0 {
		return
	}
	total := s.onKills(n)
	event.Emit(s.bus, event.EnemiesKilled{Count: n, Total: total})
	event.Emit(s.bus, event.CuePlayed{Cue: event.CueExplosion})
}
