package level

import (
	"github.com/skyraid/skyraid/internal/entity"
)

// State of a level session.
type State int

const (
	Running State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "state?"
}

// Sprite is one entity as seen by the renderer.
type Sprite struct {
	Kind     entity.Kind
	Class    string
	X, Y     float64
	W, H     float64
	Shielded bool
}

// Frame is an immutable snapshot of one tick, handed to the renderer.
type Frame struct {
	Tick   uint64
	Level  string
	Name   string
	State  State
	Width  float64
	Height float64

	Sprites []Sprite

	PlayerHealth int
	Kills        int
	KillTarget   int // 0 when the level is not won by kills
	Wave         int // 0 outside endless levels
	BossHealth   int // -1 when there is no boss
	BossShielded bool
}

// Renderer receives one frame per tick. Present is called on the loop
// goroutine and must not block.
type Renderer interface {
	Present(f Frame)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(Frame)

func (fn RendererFunc) Present(f Frame) { fn(f) }

// ScoreReporter persists the final score of a score-tracked level.
// ReportScore is called on the loop goroutine and must not block.
type ScoreReporter interface {
	ReportScore(score int)
}
