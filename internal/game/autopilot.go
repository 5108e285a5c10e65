package game

import (
	"math"

	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/level"
)

// Autopilot flies the player from rendered frames: it lines its shots up
// with the nearest target and fires at a fixed cadence. Frames are passed
// on to next unchanged.
type Autopilot struct {
	submit    func(level.Intent)
	next      level.Renderer
	aim       float64 // shot centre relative to the player's Y
	deadband  float64
	fireEvery uint64

	heading level.Intent
}

// NewAutopilot derives its aim from the player and player projectile tuning.
func NewAutopilot(submit func(level.Intent), next level.Renderer, t *entity.Tuning) *Autopilot {
	return &Autopilot{
		submit:    submit,
		next:      next,
		aim:       aimOffset(t),
		deadband:  10,
		fireEvery: 4,
		heading:   level.StopVertical,
	}
}

func aimOffset(t *entity.Tuning) float64 {
	player, err := t.Lookup(entity.ClassPlayer)
	if err != nil {
		return 0
	}
	shot, err := t.Lookup(player.Projectile)
	if err != nil {
		return player.Muzzle.Y
	}
	return player.Muzzle.Y + shot.Hitbox.OffsetY + shot.Height*shot.Hitbox.ScaleY/2
}

func (a *Autopilot) Present(f level.Frame) {
	if a.next != nil {
		a.next.Present(f)
	}
	if f.State != level.Running {
		return
	}

	var player *level.Sprite
	for i := range f.Sprites {
		if f.Sprites[i].Kind == entity.KindPlayer {
			player = &f.Sprites[i]
			break
		}
	}
	if player == nil {
		return
	}

	want := level.StopVertical
	if target, ok := nearestTarget(f.Sprites, player.X); ok {
		dy := target - (player.Y + a.aim)
		switch {
		case dy > a.deadband:
			want = level.MoveDown
		case dy < -a.deadband:
			want = level.MoveUp
		}
	}
	if want != a.heading {
		a.heading = want
		a.submit(want)
	}
	if f.Tick%a.fireEvery == 0 {
		a.submit(level.Fire)
	}
}

// nearestTarget returns the vertical centre of the closest craft ahead of x.
func nearestTarget(sprites []level.Sprite, x float64) (float64, bool) {
	best, found := math.Inf(1), false
	var y float64
	for _, s := range sprites {
		if s.Kind != entity.KindEnemy && s.Kind != entity.KindBoss {
			continue
		}
		if d := s.X - x; d >= 0 && d < best {
			best, y, found = d, s.Y+s.H/2, true
		}
	}
	return y, found
}
