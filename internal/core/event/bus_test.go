package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversInEmitOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(c CuePlayed) { got = append(got, string(c.Cue)) })
	Subscribe(b, func(k EnemiesKilled) { got = append(got, "kills") })

	Emit(b, CuePlayed{Cue: CueShoot})
	Emit(b, EnemiesKilled{Count: 1})
	Emit(b, CuePlayed{Cue: CueExplosion})
	assert.Equal(t, 3, b.Pending())
	assert.Empty(t, got, "nothing delivered before flush")

	b.Flush()
	assert.Equal(t, []string{"shoot", "kills", "explosion"}, got)
	assert.Equal(t, 0, b.Pending())

	got = nil
	b.Flush()
	assert.Empty(t, got, "events are delivered once")
}

func TestBusHandlerEmitDefersToNextFlush(t *testing.T) {
	b := NewBus()
	var cues []Cue
	Subscribe(b, func(e LevelEnded) {
		if e.Won {
			Emit(b, CuePlayed{Cue: CueWin})
		}
	})
	Subscribe(b, func(c CuePlayed) { cues = append(cues, c.Cue) })

	Emit(b, LevelEnded{Won: true})
	b.Flush()
	assert.Empty(t, cues)
	b.Flush()
	assert.Equal(t, []Cue{CueWin}, cues)
}

func TestBusDiscard(t *testing.T) {
	b := NewBus()
	n := 0
	Subscribe(b, func(CuePlayed) { n++ })
	Emit(b, CuePlayed{Cue: CueShoot})
	b.Discard()
	b.Flush()
	assert.Zero(t, n)
}
