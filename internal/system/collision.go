package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/collision"
	"github.com/skyraid/skyraid/internal/core/event"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/entity"
)

// CollisionSystem runs the four collision passes against the current player.
// Phase 4 (Collision).
type CollisionSystem struct {
	resolver *collision.Resolver
	bus      *event.Bus
	player   func() *entity.Entity
}

func NewCollisionSystem(resolver *collision.Resolver, bus *event.Bus, player func() *entity.Entity) *CollisionSystem {
	return &CollisionSystem{resolver: resolver, bus: bus, player: player}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	p := s.player()
	res := s.resolver.Resolve(p)
	if p != nil && (res.PlaneHits > 0 || res.PlayerHits > 0 || res.Penetrations > 0) {
		event.Emit(s.bus, event.PlayerHit{Health: p.Health})
	}
}
