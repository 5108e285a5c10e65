package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/core/ecs"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/geom"
)

// CullSystem destroys projectiles that have drifted more than one field
// width (or height) outside the play field. It runs after the collision
// passes so that culled projectiles are reaped in the same tick.
// Phase 4 (Collision).
type CullSystem struct {
	registry *ecs.Registry
	limit    geom.Rect
}

func NewCullSystem(registry *ecs.Registry, field geom.Rect) *CullSystem {
	return &CullSystem{registry: registry, limit: field.Expand(field.W, field.H)}
}

func (s *CullSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CullSystem) Update(_ time.Duration) {
	cull := func(e *entity.Entity) {
		if !e.Sprite().Intersects(s.limit) {
			e.Destroy()
		}
	}
	s.registry.PlayerProjectiles().Each(cull)
	s.registry.EnemyProjectiles().Each(cull)
}
