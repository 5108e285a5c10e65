package ecs

import (
	"testing"

	"github.com/skyraid/skyraid/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noRand struct{}

func (noRand) Float64() float64            { return 0.99 }
func (noRand) Shuffle(int, func(int, int)) {}

func newFactory() *entity.Factory {
	return entity.NewFactory(entity.DefaultTuning(), noRand{})
}

func TestRegistryReapCountsOnlyEnemies(t *testing.T) {
	f := newFactory()
	r := NewRegistry()

	p, err := f.Player()
	require.NoError(t, err)
	r.AddFriendly(p)
	r.AddFriendly(p)

	var enemies []*entity.Entity
	for i := 0; i < 3; i++ {
		e, err := f.Enemy(entity.ClassEnemy, 1300, float64(100*i))
		require.NoError(t, err)
		r.AddEnemy(e)
		enemies = append(enemies, e)
	}
	shot := p.Fire()
	r.AddPlayerProjectile(shot)

	enemies[0].TakeDamage()
	enemies[2].TakeDamage()
	shot.TakeDamage()

	assert.Equal(t, 2, r.ReapDestroyed())
	fr, en, ps, es := r.Counts()
	assert.Equal(t, []int{1, 1, 0, 0}, []int{fr, en, ps, es})
	assert.Equal(t, 0, r.ReapDestroyed())
}

func TestRegistryUpdateAllConserves(t *testing.T) {
	f := newFactory()
	r := NewRegistry()
	p, _ := f.Player()
	r.AddFriendly(p)
	e, _ := f.Enemy(entity.ClassEnemy, 1300, 0)
	r.AddEnemy(e)

	r.UpdateAll()

	assert.Equal(t, 1294.0, e.X)
	assert.Equal(t, e.X+5, e.Box().X, "bounds refreshed after the move")
	assert.Equal(t, 0, r.ReapDestroyed())
	_, en, _, _ := r.Counts()
	assert.Equal(t, 1, en)
}

func TestRegistryRemoveAndClear(t *testing.T) {
	f := newFactory()
	r := NewRegistry()
	e, _ := f.Enemy(entity.ClassEnemy, 1300, 0)
	r.AddEnemy(e)
	r.RemoveEnemy(e)
	r.RemoveEnemy(e)
	assert.Equal(t, 0, r.Enemies().Len())

	p, _ := f.Player()
	r.AddEnemy(e)
	r.AddPlayerProjectile(p.Fire())
	shot, _ := f.EnemyProjectile(entity.ClassEnemyProjectile, 10, 10)
	r.AddEnemyProjectile(shot)

	r.ClearAllProjectiles()
	r.ClearEnemies()
	fr, en, ps, es := r.Counts()
	assert.Equal(t, []int{0, 0, 0, 0}, []int{fr, en, ps, es})
}
