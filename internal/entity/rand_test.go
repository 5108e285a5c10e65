package entity

// seqRand replays a fixed sequence of floats (repeating the last one) and
// leaves shuffled slices in place.
type seqRand struct {
	vals     []float64
	i        int
	shuffles int
}

func fixedRand(v ...float64) *seqRand { return &seqRand{vals: v} }

func (r *seqRand) Float64() float64 {
	if len(r.vals) == 0 {
		return 0.99
	}
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v
}

func (r *seqRand) Shuffle(int, func(i, j int)) { r.shuffles++ }
