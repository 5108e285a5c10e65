package entity

import (
	"github.com/skyraid/skyraid/internal/geom"
)

// Kind tags the variant of an entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBoss
	KindPlayerProjectile
	KindEnemyProjectile
)

var kindNames = [...]string{"player", "enemy", "boss", "player_projectile", "enemy_projectile"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsCraft reports whether the kind has health (as opposed to a projectile).
func (k Kind) IsCraft() bool { return k <= KindBoss }

// Entity is a destructible actor on the play field. Identity is the pointer.
// Variant behavior is supplied by the factory at construction.
type Entity struct {
	Kind  Kind
	Class string

	X, Y             float64
	OriginX, OriginY float64
	Width, Height    float64
	Health           int

	dirX, dirY int

	spec      *ActorSpec
	box       geom.Rect
	destroyed bool
	behavior  behavior
}

// behavior is the per-variant part of an entity.
type behavior interface {
	move(e *Entity)
	act(e *Entity)
	fire(e *Entity) *Entity
	absorbs() bool
}

func newEntity(kind Kind, class string, spec *ActorSpec, x, y float64, b behavior) *Entity {
	e := &Entity{
		Kind:     kind,
		Class:    class,
		X:        x,
		Y:        y,
		OriginX:  x,
		OriginY:  y,
		Width:    spec.Width,
		Height:   spec.Height,
		Health:   spec.Health,
		spec:     spec,
		behavior: b,
	}
	e.RefreshBounds()
	return e
}

// UpdatePosition advances the entity by one frame of movement.
func (e *Entity) UpdatePosition() {
	if e.destroyed {
		return
	}
	e.behavior.move(e)
}

// UpdateActor runs the full per-frame update: movement plus variant state.
func (e *Entity) UpdateActor() {
	if e.destroyed {
		return
	}
	e.UpdatePosition()
	e.behavior.act(e)
}

// TakeDamage removes one point of health. Projectiles and crafts reaching
// zero health are destroyed. Shielded entities ignore the hit.
func (e *Entity) TakeDamage() {
	if e.destroyed || e.behavior.absorbs() {
		return
	}
	if !e.Kind.IsCraft() {
		e.Destroy()
		return
	}
	e.Health--
	if e.Health <= 0 {
		e.Health = 0
		e.Destroy()
	}
}

// Fire returns a new projectile, or nil when the entity does not fire this frame.
func (e *Entity) Fire() *Entity {
	if e.destroyed {
		return nil
	}
	return e.behavior.fire(e)
}

func (e *Entity) Destroy()        { e.destroyed = true }
func (e *Entity) Destroyed() bool { return e.destroyed }

// Shielded reports whether incoming damage is currently blocked.
func (e *Entity) Shielded() bool { return e.behavior.absorbs() }

// Box returns the collision box computed at the last RefreshBounds.
func (e *Entity) Box() geom.Rect { return e.box }

// RefreshBounds recomputes the collision box from the sprite bounds and hitbox tuning.
func (e *Entity) RefreshBounds() {
	h := e.spec.Hitbox
	e.box = geom.Rect{
		X: e.X + h.OffsetX,
		Y: e.Y + h.OffsetY,
		W: e.Width * h.ScaleX,
		H: e.Height * h.ScaleY,
	}
}

// Sprite returns the full drawn bounds, independent of the hitbox.
func (e *Entity) Sprite() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// TranslateX is the horizontal distance travelled since spawn.
func (e *Entity) TranslateX() float64 { return e.X - e.OriginX }

// Steering. Only the player variant reads the heading.
func (e *Entity) MoveUp()         { e.dirY = -1 }
func (e *Entity) MoveDown()       { e.dirY = 1 }
func (e *Entity) MoveLeft()       { e.dirX = -1 }
func (e *Entity) MoveRight()      { e.dirX = 1 }
func (e *Entity) StopVertical()   { e.dirY = 0 }
func (e *Entity) StopHorizontal() { e.dirX = 0 }

// Heading returns the current steering direction on each axis.
func (e *Entity) Heading() (int, int) { return e.dirX, e.dirY }
