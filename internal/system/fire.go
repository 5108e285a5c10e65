package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/core/ecs"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/entity"
)

// FireSystem asks every live enemy whether it fires this frame and registers
// the resulting projectiles.
// Phase 3 (Fire).
type FireSystem struct {
	registry *ecs.Registry
}

func NewFireSystem(registry *ecs.Registry) *FireSystem {
	return &FireSystem{registry: registry}
}

func (s *FireSystem) Phase() coresys.Phase { return coresys.PhaseFire }

func (s *FireSystem) Update(_ time.Duration) {
	s.registry.Enemies().Each(func(e *entity.Entity) {
		if shot := e.Fire(); shot != nil {
			s.registry.AddEnemyProjectile(shot)
		}
	})
}
