package entity

import "github.com/skyraid/skyraid/internal/geom"

// playerCraft moves by the steering heading and reverts any axis move
// that leaves its bounds.
type playerCraft struct {
	f *Factory
}

func (p *playerCraft) move(e *Entity) {
	s := e.spec
	if e.dirY != 0 {
		prev := e.Y
		e.Y += s.SpeedY * float64(e.dirY)
		if s.Bounds != nil && !geom.InRange(e.Y, s.Bounds.MinY, s.Bounds.MaxY) {
			e.Y = prev
		}
	}
	if e.dirX != 0 {
		prev := e.X
		e.X += s.SpeedX * float64(e.dirX)
		if s.Bounds != nil && !geom.InRange(e.X, s.Bounds.MinX, s.Bounds.MaxX) {
			e.X = prev
		}
	}
}

func (p *playerCraft) act(*Entity)   {}
func (p *playerCraft) absorbs() bool { return false }

func (p *playerCraft) fire(e *Entity) *Entity {
	return p.f.projectile(e.spec.Projectile, KindPlayerProjectile, e)
}

// enemyCraft flies left at constant speed and fires at random.
type enemyCraft struct {
	f *Factory
}

func (c *enemyCraft) move(e *Entity) {
	e.X += e.spec.SpeedX
	e.Y += e.spec.SpeedY
}

func (c *enemyCraft) act(*Entity)   {}
func (c *enemyCraft) absorbs() bool { return false }

func (c *enemyCraft) fire(e *Entity) *Entity {
	if c.f.rng.Float64() >= e.spec.FireRate {
		return nil
	}
	return c.f.projectile(e.spec.Projectile, KindEnemyProjectile, e)
}

// bossCraft moves vertically by its pattern, stays inside its band and
// blocks damage while shielded.
type bossCraft struct {
	f *Factory
	b *BossBehavior
}

func (c *bossCraft) move(e *Entity) {
	prev := e.Y
	e.Y += c.b.NextMove()
	if s := e.spec.Bounds; s != nil && !geom.InRange(e.Y, s.MinY, s.MaxY) {
		e.Y = prev
	}
}

func (c *bossCraft) act(*Entity) { c.b.UpdateShield() }

func (c *bossCraft) absorbs() bool { return c.b.Shielded() }

func (c *bossCraft) fire(e *Entity) *Entity {
	if c.f.rng.Float64() >= e.spec.FireRate {
		return nil
	}
	return c.f.projectile(e.spec.Projectile, KindEnemyProjectile, e)
}

// projectile travels horizontally and never fires.
type projectile struct{}

func (projectile) move(e *Entity) {
	e.X += e.spec.SpeedX
	e.Y += e.spec.SpeedY
}

func (projectile) act(*Entity)          {}
func (projectile) absorbs() bool        { return false }
func (projectile) fire(*Entity) *Entity { return nil }
