package ecs

import "github.com/skyraid/skyraid/internal/entity"

// Entities is a collection of entity pointers.
type Entities = Collection[*entity.Entity]

// Registry owns every live entity of a level, split into four disjoint
// collections. Entities are removed only by ReapDestroyed, RemoveEnemy or
// the Clear* calls used on level reset.
type Registry struct {
	friendlies  *Entities
	enemies     *Entities
	playerShots *Entities
	enemyShots  *Entities
}

func NewRegistry() *Registry {
	return &Registry{
		friendlies:  NewCollection[*entity.Entity](),
		enemies:     NewCollection[*entity.Entity](),
		playerShots: NewCollection[*entity.Entity](),
		enemyShots:  NewCollection[*entity.Entity](),
	}
}

func (r *Registry) Friendlies() *Entities        { return r.friendlies }
func (r *Registry) Enemies() *Entities           { return r.enemies }
func (r *Registry) PlayerProjectiles() *Entities { return r.playerShots }
func (r *Registry) EnemyProjectiles() *Entities  { return r.enemyShots }

// AddFriendly registers a friendly craft. Registering the same craft twice is a no-op.
func (r *Registry) AddFriendly(e *entity.Entity)         { r.friendlies.Add(e) }
func (r *Registry) AddEnemy(e *entity.Entity)            { r.enemies.Add(e) }
func (r *Registry) AddPlayerProjectile(e *entity.Entity) { r.playerShots.Add(e) }
func (r *Registry) AddEnemyProjectile(e *entity.Entity)  { r.enemyShots.Add(e) }

// RemoveEnemy drops e from the enemy collection immediately, without
// counting it as destroyed.
func (r *Registry) RemoveEnemy(e *entity.Entity) { r.enemies.Remove(e) }

// RemoveFriendly drops e from the friendly collection immediately.
func (r *Registry) RemoveFriendly(e *entity.Entity) { r.friendlies.Remove(e) }

func (r *Registry) all() [4]*Entities {
	return [4]*Entities{r.friendlies, r.enemies, r.playerShots, r.enemyShots}
}

// UpdateAll runs UpdateActor then RefreshBounds on every entity.
func (r *Registry) UpdateAll() {
	for _, c := range r.all() {
		c.Each(func(e *entity.Entity) {
			e.UpdateActor()
			e.RefreshBounds()
		})
	}
}

// ReapDestroyed removes destroyed entities from every collection and returns
// how many of them were enemies.
func (r *Registry) ReapDestroyed() int {
	r.friendlies.Reap()
	n := r.enemies.Reap()
	r.playerShots.Reap()
	r.enemyShots.Reap()
	return n
}

func (r *Registry) ClearEnemies() { r.enemies.Clear() }

func (r *Registry) ClearAllProjectiles() {
	r.playerShots.Clear()
	r.enemyShots.Clear()
}

// Counts returns the live sizes of the four collections.
func (r *Registry) Counts() (friendlies, enemies, playerShots, enemyShots int) {
	return r.friendlies.Len(), r.enemies.Len(), r.playerShots.Len(), r.enemyShots.Len()
}
