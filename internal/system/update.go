package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/core/ecs"
	coresys "github.com/skyraid/skyraid/internal/core/system"
)

// UpdateSystem moves every entity and refreshes its collision box.
// Phase 2 (Update).
type UpdateSystem struct {
	registry *ecs.Registry
}

func NewUpdateSystem(registry *ecs.Registry) *UpdateSystem {
	return &UpdateSystem{registry: registry}
}

func (s *UpdateSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *UpdateSystem) Update(_ time.Duration) {
	s.registry.UpdateAll()
}
