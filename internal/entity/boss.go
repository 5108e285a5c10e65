package entity

// BossBehavior schedules the boss's vertical moves and runs its shield.
//
// The move pattern holds MoveRepeats copies of {+v, -v, 0} in random order.
// The same move is returned for FramesPerMove consecutive calls before the
// cursor advances; wrapping past the end reshuffles the pattern.
type BossBehavior struct {
	spec    BossSpec
	rng     Rand
	pattern []float64
	cursor  int
	repeats int

	shielded bool
	elapsed  int
}

func NewBossBehavior(spec BossSpec, speed float64, rng Rand) *BossBehavior {
	b := &BossBehavior{
		spec:    spec,
		rng:     rng,
		pattern: make([]float64, 0, 3*spec.MoveRepeats),
	}
	for i := 0; i < spec.MoveRepeats; i++ {
		b.pattern = append(b.pattern, speed, -speed, 0)
	}
	b.shuffle()
	return b
}

func (b *BossBehavior) shuffle() {
	b.rng.Shuffle(len(b.pattern), func(i, j int) {
		b.pattern[i], b.pattern[j] = b.pattern[j], b.pattern[i]
	})
}

// NextMove returns the vertical delta for this frame.
func (b *BossBehavior) NextMove() float64 {
	if len(b.pattern) == 0 {
		return 0
	}
	move := b.pattern[b.cursor]
	b.repeats++
	if b.repeats >= b.spec.FramesPerMove {
		b.repeats = 0
		b.cursor++
		if b.cursor == len(b.pattern) {
			b.cursor = 0
			b.shuffle()
		}
	}
	return move
}

// UpdateShield runs one frame of the shield: an inactive shield may come up,
// an active one counts frames and drops once the cap is reached.
func (b *BossBehavior) UpdateShield() {
	if b.shielded {
		b.elapsed++
		if b.elapsed >= b.spec.ShieldFrames {
			b.shielded = false
			b.elapsed = 0
		}
		return
	}
	if b.rng.Float64() < b.spec.ShieldChance {
		b.shielded = true
		b.elapsed = 0
	}
}

func (b *BossBehavior) Shielded() bool { return b.shielded }

// ShieldFrames returns how many frames the current shield has been up.
func (b *BossBehavior) ShieldFrames() int { return b.elapsed }

// ForceShield raises the shield immediately.
func (b *BossBehavior) ForceShield() {
	b.shielded = true
	b.elapsed = 0
}

// Pattern returns a copy of the current move pattern.
func (b *BossBehavior) Pattern() []float64 {
	out := make([]float64, len(b.pattern))
	copy(out, b.pattern)
	return out
}
