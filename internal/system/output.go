package system

import (
	"time"

	"github.com/skyraid/skyraid/internal/core/event"
	coresys "github.com/skyraid/skyraid/internal/core/system"
)

// OutputSystem delivers the tick's queued events (audio cues, HUD updates)
// and then publishes the render frame.
// Phase 7 (Output).
type OutputSystem struct {
	bus     *event.Bus
	publish func()
}

func NewOutputSystem(bus *event.Bus, publish func()) *OutputSystem {
	return &OutputSystem{bus: bus, publish: publish}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.Flush()
	if s.publish != nil {
		s.publish()
	}
}
