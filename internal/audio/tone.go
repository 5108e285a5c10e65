package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// tone is a fixed-length oscillator with a linear fade-out.
type tone struct {
	freq  float64
	sweep float64 // Hz per second, may be negative
	wave  Wave
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

// NewTone returns a streamer of the given wave and length. sweep bends the
// frequency linearly over time.
func NewTone(wave Wave, freq, sweep float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, sweep: sweep, wave: wave, rate: rate, total: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * t.phase)
		case Square:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case Saw:
			v = 2*t.phase - 1
		case Noise:
			v = rand.Float64()*2 - 1
		}
		env := 1 - float64(t.pos)/float64(t.total)
		v *= 0.3 * env

		samples[i][0] = v
		samples[i][1] = v

		secs := float64(t.pos) / float64(t.rate)
		f := math.Max(t.freq+t.sweep*secs, 20)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
