package entity

// Rand is the source of randomness for firing, spawning and boss behavior.
// *math/rand/v2.Rand satisfies it; tests inject deterministic stubs.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}
