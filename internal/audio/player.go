package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/skyraid/skyraid/internal/config"
	"github.com/skyraid/skyraid/internal/core/event"
	"go.uber.org/zap"
)

// Player turns cue events into short synthesized sounds. Playback is
// fire-and-forget; a player whose device failed to open stays silent.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	enabled bool
	ready   bool
	log     *zap.Logger
}

func NewPlayer(cfg config.AudioConfig, log *zap.Logger) *Player {
	return &Player{
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		log:     log,
	}
}

// Init opens the audio device. A failure is logged and leaves the player silent.
func (p *Player) Init() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.ready {
		return
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.log.Warn("audio disabled", zap.Error(err))
		p.enabled = false
		return
	}
	p.ready = true
}

// Attach plays every cue published on bus.
func (p *Player) Attach(bus *event.Bus) {
	event.Subscribe(bus, func(e event.CuePlayed) { p.Play(e.Cue) })
}

// Play starts the sound for c without waiting for it.
func (p *Player) Play(c event.Cue) {
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return
	}
	s := p.Streamer(c)
	if s == nil {
		p.log.Debug("no sound for cue", zap.String("cue", string(c)))
		return
	}
	speaker.Play(s)
}

// Streamer builds the sound for c, or nil for an unknown cue.
func (p *Player) Streamer(c event.Cue) beep.Streamer {
	var s beep.Streamer
	switch c {
	case event.CueShoot:
		s = NewTone(Square, 1200, -4000, 60*time.Millisecond, p.rate)
	case event.CueExplosion:
		s = beep.Mix(
			NewTone(Noise, 0, 0, 250*time.Millisecond, p.rate),
			NewTone(Sine, 90, -120, 250*time.Millisecond, p.rate),
		)
	case event.CueWin:
		s = beep.Seq(
			NewTone(Sine, 523, 0, 120*time.Millisecond, p.rate),
			NewTone(Sine, 659, 0, 120*time.Millisecond, p.rate),
			NewTone(Sine, 784, 0, 240*time.Millisecond, p.rate),
		)
	case event.CueGameOver:
		s = NewTone(Saw, 440, -500, 600*time.Millisecond, p.rate)
	default:
		return nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: p.volume}
}

// Close stops anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		speaker.Clear()
		p.ready = false
	}
}
