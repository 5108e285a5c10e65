package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunnerPhaseOrder(t *testing.T) {
	r := NewRunner()
	var got []string
	add := func(p Phase, name string) {
		r.Register(Func{P: p, Fn: func(time.Duration) { got = append(got, name) }})
	}
	add(PhaseOutput, "out")
	add(PhaseCollision, "planes")
	add(PhaseInput, "in")
	add(PhaseCollision, "shots")
	add(PhaseReap, "reap")

	assert.Equal(t, 5, r.Len())
	r.Tick(50 * time.Millisecond)
	assert.Equal(t, []string{"in", "planes", "shots", "reap", "out"}, got)

	got = nil
	r.TickPhase(PhaseCollision, 0)
	assert.Equal(t, []string{"planes", "shots"}, got)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "collision", PhaseCollision.String())
	assert.Equal(t, "phase?", Phase(99).String())
}

func TestRunnerRejectsUnknownPhase(t *testing.T) {
	r := NewRunner()
	assert.Panics(t, func() { r.Register(Func{P: Phase(42), Fn: func(time.Duration) {}}) })
	assert.NotPanics(t, func() { r.TickPhase(Phase(42), 0) })
}
