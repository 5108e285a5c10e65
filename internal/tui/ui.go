package tui

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/level"
	"go.uber.org/zap"
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type glyph struct {
	r     rune
	style tcell.Style
}

var glyphs = map[entity.Kind]glyph{
	entity.KindPlayer:           {'▶', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	entity.KindEnemy:            {'◀', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	entity.KindBoss:             {'█', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
	entity.KindPlayerProjectile: {'-', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	entity.KindEnemyProjectile:  {'•', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
}

// UI renders frames into a tcell screen and feeds key presses to Controls.
// Present may be called from the level loop; drawing happens on Run's goroutine.
type UI struct {
	screen tcell.Screen
	log    *zap.Logger

	mu      sync.Mutex
	frame   level.Frame
	have    bool
	banner  string
	redraw  chan struct{}
	release time.Duration
}

func New(screen tcell.Screen, log *zap.Logger) *UI {
	return &UI{
		screen:  screen,
		log:     log,
		redraw:  make(chan struct{}, 1),
		release: 150 * time.Millisecond,
	}
}

// Present stores f and asks for a redraw. It never blocks.
func (u *UI) Present(f level.Frame) {
	u.mu.Lock()
	u.frame = f
	u.have = true
	u.mu.Unlock()
	u.poke()
}

// SetBanner shows msg across the middle of the field; "" hides it.
func (u *UI) SetBanner(msg string) {
	u.mu.Lock()
	u.banner = msg
	u.mu.Unlock()
	u.poke()
}

func (u *UI) poke() {
	select {
	case u.redraw <- struct{}{}:
	default:
	}
}

// Run draws frames and dispatches input until ctx is done.
func (u *UI) Run(ctx context.Context, ctl Controls) error {
	keys := NewKeyMap(ctl, u.release)
	defer keys.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				u.log.Debug("terminal closed")
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.Handle(ev)
			case *tcell.EventResize:
				u.screen.Sync()
				u.Draw()
			}
		case <-u.redraw:
			u.Draw()
		}
	}
}

// Draw paints the latest frame.
func (u *UI) Draw() {
	u.mu.Lock()
	f, have, banner := u.frame, u.have, u.banner
	u.mu.Unlock()

	s := u.screen
	s.Clear()
	cols, rows := s.Size()
	if cols < 10 || rows < 5 {
		s.Show()
		return
	}
	// row 0 is the HUD, the field is framed below it
	fx, fy, fw, fh := 1, 2, cols-2, rows-3
	u.border(fx-1, fy-1, fw+2, fh+2)

	if have {
		u.hud(f, cols)
		for _, sp := range f.Sprites {
			u.sprite(sp, f, fx, fy, fw, fh)
		}
		if banner == "" {
			banner = stateBanner(f.State)
		}
	}
	if banner != "" {
		u.text((cols-len([]rune(banner)))/2, fy+fh/2, banner, styleBanner)
	}
	s.Show()
}

func stateBanner(st level.State) string {
	switch st {
	case level.Won:
		return "LEVEL CLEARED"
	case level.Lost:
		return "GAME OVER  [r] restart  [q] quit"
	}
	return ""
}

func (u *UI) hud(f level.Frame, cols int) {
	line := fmt.Sprintf(" %s  HP %d  Kills %d", f.Name, f.PlayerHealth, f.Kills)
	if f.KillTarget > 0 {
		line += fmt.Sprintf("/%d", f.KillTarget)
	}
	if f.Wave > 0 {
		line += fmt.Sprintf("  Wave %d", f.Wave)
	}
	if f.BossHealth >= 0 {
		line += fmt.Sprintf("  Boss %d", f.BossHealth)
		if f.BossShielded {
			line += " [shield]"
		}
	}
	if len(line) > cols {
		line = line[:cols]
	}
	u.text(0, 0, line, styleHUD)
}

// sprite maps a sprite from field space into the framed terminal area.
func (u *UI) sprite(sp level.Sprite, f level.Frame, fx, fy, fw, fh int) {
	g, ok := glyphs[sp.Kind]
	if !ok {
		return
	}
	if sp.Shielded {
		g.style = g.style.Reverse(true)
	}
	sx := float64(fw) / f.Width
	sy := float64(fh) / f.Height
	x0 := int(math.Floor(sp.X * sx))
	y0 := int(math.Floor(sp.Y * sy))
	x1 := max(x0, int(math.Ceil((sp.X+sp.W)*sx))-1)
	y1 := max(y0, int(math.Ceil((sp.Y+sp.H)*sy))-1)
	for y := max(y0, 0); y <= min(y1, fh-1); y++ {
		for x := max(x0, 0); x <= min(x1, fw-1); x++ {
			u.screen.SetContent(fx+x, fy+y, g.r, nil, g.style)
		}
	}
}

func (u *UI) border(x, y, w, h int) {
	for i := x; i < x+w; i++ {
		u.screen.SetContent(i, y, '─', nil, styleBorder)
		u.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for j := y; j < y+h; j++ {
		u.screen.SetContent(x, j, '│', nil, styleBorder)
		u.screen.SetContent(x+w-1, j, '│', nil, styleBorder)
	}
}

func (u *UI) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
