package ecs

// EachPair calls fn for every pair in the cross product of a and b.
// Both sides are the element sets present when the scan started.
func EachPair[A, B Destroyable](a *Collection[A], b *Collection[B], fn func(A, B)) {
	a.Each(func(x A) {
		b.Each(func(y B) {
			fn(x, y)
		})
	})
}
