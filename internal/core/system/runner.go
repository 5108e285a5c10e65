package system

import (
	"fmt"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	phases [phaseCount][]System
	count  int
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to the bucket of its phase. It panics on a phase outside
// the pipeline, which is a wiring bug.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system registered for unknown phase %d", int(p)))
	}
	r.phases[p] = append(r.phases[p], s)
	r.count++
}

// Len is the number of registered systems.
func (r *Runner) Len() int { return r.count }

func (r *Runner) Tick(dt time.Duration) {
	for p := range r.phases {
		for _, s := range r.phases[p] {
			s.Update(dt)
		}
	}
}

// TickPhase runs only the systems of one phase.
// An ended level keeps publishing output without simulating.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase < 0 || phase >= phaseCount {
		return
	}
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}
