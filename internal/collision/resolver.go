package collision

import (
	"math"

	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/entity"
)

// Result summarizes one Resolve call.
type Result struct {
	PlaneHits      int // friendly × enemy overlaps
	ProjectileHits int // player projectile × enemy overlaps
	PlayerHits     int // enemy projectile × friendly overlaps
	Penetrations   int // enemies that crossed the field
}

// Resolver applies damage between overlapping entities and detects enemies
// that crossed the play field.
type Resolver struct {
	registry   *ecs.Registry
	fieldWidth float64
}

func NewResolver(registry *ecs.Registry, fieldWidth float64) *Resolver {
	return &Resolver{registry: registry, fieldWidth: fieldWidth}
}

// Resolve runs the four passes in order. player may be nil, in which case
// penetrations remove the enemy without damaging anyone.
func (r *Resolver) Resolve(player *entity.Entity) Result {
	var res Result
	res.PlaneHits = r.Planes()
	res.ProjectileHits = r.PlayerProjectiles()
	res.PlayerHits = r.EnemyProjectiles()
	res.Penetrations = r.Penetration(player)
	return res
}

// Planes damages every overlapping friendly/enemy pair.
func (r *Resolver) Planes() int {
	return damagePairs(r.registry.Friendlies(), r.registry.Enemies())
}

// PlayerProjectiles damages every overlapping player projectile/enemy pair.
func (r *Resolver) PlayerProjectiles() int {
	return damagePairs(r.registry.PlayerProjectiles(), r.registry.Enemies())
}

// EnemyProjectiles damages every overlapping enemy projectile/friendly pair.
func (r *Resolver) EnemyProjectiles() int {
	return damagePairs(r.registry.EnemyProjectiles(), r.registry.Friendlies())
}

// Penetration finds live enemies further than the field width from where they
// spawned. Each one costs the player a point of health and is removed at once.
func (r *Resolver) Penetration(player *entity.Entity) int {
	var crossed []*entity.Entity
	r.registry.Enemies().Each(func(e *entity.Entity) {
		if !e.Destroyed() && math.Abs(e.TranslateX()) > r.fieldWidth {
			crossed = append(crossed, e)
		}
	})
	for _, e := range crossed {
		if player != nil {
			player.TakeDamage()
		}
		r.registry.RemoveEnemy(e)
	}
	return len(crossed)
}

// damagePairs scans the full cross product. Entities already destroyed in this
// pass still count for overlaps; there is no per-frame hit suppression.
func damagePairs(a, b *ecs.Entities) int {
	hits := 0
	ecs.EachPair(a, b, func(x, y *entity.Entity) {
		if x.Box().Intersects(y.Box()) {
			x.TakeDamage()
			y.TakeDamage()
			hits++
		}
	})
	return hits
}
