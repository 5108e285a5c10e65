package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerBoundaryClamp(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand())
	p, err := f.Player()
	require.NoError(t, err)

	// start y=300, speed 15, max y 600: 20 steps reach 600 exactly
	p.MoveDown()
	for i := 0; i < 20; i++ {
		p.UpdateActor()
	}
	assert.Equal(t, 600.0, p.Y)

	p.UpdateActor()
	assert.Equal(t, 600.0, p.Y, "move past the bound is reverted")

	p.StopVertical()
	p.MoveLeft()
	p.UpdateActor()
	assert.Equal(t, 5.0, p.X, "x=-10 is out of bounds")
	p.MoveRight()
	p.UpdateActor()
	assert.Equal(t, 20.0, p.X)
}

func TestPlayerFireSpawnsAtMuzzle(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand())
	p, err := f.Player()
	require.NoError(t, err)

	shot := p.Fire()
	require.NotNil(t, shot)
	assert.Equal(t, KindPlayerProjectile, shot.Kind)
	assert.Equal(t, p.X+50, shot.X)
	assert.Equal(t, p.Y+25, shot.Y)

	shot.UpdateActor()
	assert.Equal(t, p.X+70, shot.X)
}

func TestEnemyFireProbability(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand(0.5, 0.001))
	e, err := f.Enemy(ClassEnemy, 1300, 100)
	require.NoError(t, err)

	assert.Nil(t, e.Fire(), "0.5 is above the fire rate")
	shot := e.Fire()
	require.NotNil(t, shot)
	assert.Equal(t, KindEnemyProjectile, shot.Kind)
	assert.Equal(t, 1200.0, shot.X)
	assert.Equal(t, 150.0, shot.Y)
}

func TestEnemyMovesLeft(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand())
	e, err := f.Enemy(ClassEnemy, 1300, 100)
	require.NoError(t, err)

	e.UpdateActor()
	e.RefreshBounds()
	assert.Equal(t, 1294.0, e.X)
	assert.Equal(t, -6.0, e.TranslateX())
	assert.InDelta(t, 1299.0, e.Box().X, 1e-9)
	assert.InDelta(t, 135.0, e.Box().Y, 1e-9)
}

func TestTerminalHealth(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand())
	p, err := f.Player()
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		p.TakeDamage()
	}
	assert.True(t, p.Destroyed())
	assert.Equal(t, 0, p.Health)

	x := p.X
	p.MoveUp()
	p.UpdateActor()
	assert.Equal(t, x, p.X)
	assert.Nil(t, p.Fire(), "destroyed entities do not fire")
}

func TestProjectileDestroyedByAnyHit(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand())
	shot, err := f.PlayerProjectile(0, 0)
	require.NoError(t, err)

	shot.TakeDamage()
	assert.True(t, shot.Destroyed())
}

func TestMissingSprite(t *testing.T) {
	f := NewFactory(DefaultTuning(), fixedRand())
	_, err := f.Enemy("kamikaze", 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSprite))

	_, err = f.Enemy(ClassBoss, 0, 0)
	assert.ErrorIs(t, err, ErrWrongKind)

	tun := DefaultTuning()
	delete(tun.Actors, ClassPlayerProjectile)
	_, err = NewFactory(tun, fixedRand()).Player()
	assert.ErrorIs(t, err, ErrMissingSprite)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	tun := DefaultTuning()
	tun.Actors[ClassEnemy].Projectile = "laser"
	assert.ErrorIs(t, tun.Validate(), ErrMissingSprite)

	tun = DefaultTuning()
	tun.Actors["drone"] = &ActorSpec{Kind: "blimp"}
	assert.ErrorIs(t, tun.Validate(), ErrWrongKind)

	for _, class := range []string{ClassPlayer, ClassEnemy, ClassBoss} {
		tun = DefaultTuning()
		tun.Actors[class].Health = 0
		assert.ErrorContains(t, tun.Validate(), "health must be positive", class)
	}

	// projectiles die on any hit and carry no health
	tun = DefaultTuning()
	tun.Actors[ClassEnemyProjectile].Health = 0
	assert.NoError(t, tun.Validate())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "boss", KindBoss.String())
	assert.Equal(t, "unknown", Kind(42).String())
	assert.True(t, KindBoss.IsCraft())
	assert.False(t, KindEnemyProjectile.IsCraft())
}
