package level

import (
	"testing"

	"github.com/skyraid/skyraid/internal/core/event"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/stretchr/testify/require"
)

// constRand always rolls the same value; 0.99 means nothing random happens.
type constRand float64

func (r constRand) Float64() float64          { return float64(r) }
func (constRand) Shuffle(int, func(int, int)) {}

type recorder struct {
	transitions []Transition
	cues        []event.Cue
	scores      []int
	frames      []Frame
}

func (r *recorder) ReportScore(score int) { r.scores = append(r.scores, score) }
func (r *recorder) Present(f Frame)       { r.frames = append(r.frames, f) }

func defByID(t *testing.T, id string) Definition {
	t.Helper()
	for _, d := range DefaultDefinitions() {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("no level %s", id)
	return Definition{}
}

func newTestSession(t *testing.T, def Definition, rng entity.Rand) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	bus := event.NewBus()
	event.Subscribe(bus, func(c event.CuePlayed) { rec.cues = append(rec.cues, c.Cue) })
	prog := NewProgression()
	prog.Subscribe(func(tr Transition) { rec.transitions = append(rec.transitions, tr) })

	s, err := NewSession(def, Options{
		Factory:     entity.NewFactory(entity.DefaultTuning(), rng),
		Bus:         bus,
		Progression: prog,
		Renderer:    rec,
		Reporter:    rec,
	})
	require.NoError(t, err)
	return s, rec
}
