package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: drain player intents
	PhaseSpawn                  // 1: level spawn policy
	PhaseUpdate                 // 2: move and update every entity
	PhaseFire                   // 3: enemy fire generation
	PhaseCollision              // 4: overlap and penetration passes
	PhaseReap                   // 5: remove destroyed entities, count kills
	PhaseEvaluate               // 6: win/loss check
	PhaseOutput                 // 7: cues + render frame

	phaseCount
)

var phaseNames = [...]string{"input", "spawn", "update", "fire", "collision", "reap", "evaluate", "output"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "phase?"
}

// System is the interface every pipeline stage implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Func adapts a function to a System.
type Func struct {
	P  Phase
	Fn func(dt time.Duration)
}

func (f Func) Phase() Phase            { return f.P }
func (f Func) Update(dt time.Duration) { f.Fn(dt) }
