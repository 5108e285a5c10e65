package system

import (
	"time"

	coresys "github.com/skyraid/skyraid/internal/core/system"
)

// InputSystem drains queued player commands and applies them in arrival
// order, at most maxPerTick per tick. Commands left over wait for the next tick.
// Phase 0 (Input).
type InputSystem[T any] struct {
	queue      <-chan T
	maxPerTick int
	apply      func(T)
}

func NewInputSystem[T any](queue <-chan T, maxPerTick int, apply func(T)) *InputSystem[T] {
	return &InputSystem[T]{queue: queue, maxPerTick: maxPerTick, apply: apply}
}

func (s *InputSystem[T]) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem[T]) Update(_ time.Duration) {
	for n := s.maxPerTick; n > 0; n-- {
		select {
		case in := <-s.queue:
			s.apply(in)
		default:
			return
		}
	}
}
