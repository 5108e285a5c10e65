package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, a.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.True(t, a.Intersects(Rect{X: 10, Y: 0, W: 5, H: 5}), "shared edge overlaps")
	assert.True(t, a.Intersects(Rect{X: 10, Y: 10, W: 1, H: 1}), "shared corner overlaps")
	assert.False(t, a.Intersects(Rect{X: 10.01, Y: 0, W: 5, H: 5}))
	assert.False(t, a.Intersects(Rect{X: 0, Y: -5, W: 5, H: 4.9}))
}

func TestIntersectsSymmetric(t *testing.T) {
	a := Rect{X: 3, Y: 4, W: 2, H: 8}
	b := Rect{X: 4, Y: 11, W: 6, H: 1}
	assert.Equal(t, a.Intersects(b), b.Intersects(a))
}

func TestExpand(t *testing.T) {
	field := Rect{W: 100, H: 50}
	assert.Equal(t, Rect{X: -5, Y: -2, W: 110, H: 54}, field.Expand(5, 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(30, 0, 10))
	assert.Equal(t, 4.5, Clamp(4.5, 0, 10))
	assert.True(t, InRange(10, 0, 10))
	assert.False(t, InRange(10.1, 0, 10))
}
