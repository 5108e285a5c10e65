package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/skyraid/skyraid/internal/level"
)

// Controls is what the terminal front-end drives.
type Controls interface {
	Submit(in level.Intent)
	TogglePause()
	Restart()
	Quit()
}

// KeyMap turns key presses into intents. Terminals report presses and
// repeats but no releases, so each movement key schedules its own stop
// intent that is pushed back by every repeat.
type KeyMap struct {
	ctl     Controls
	release time.Duration

	mu     sync.Mutex
	timers map[level.Intent]*time.Timer
}

func NewKeyMap(ctl Controls, release time.Duration) *KeyMap {
	return &KeyMap{ctl: ctl, release: release, timers: make(map[level.Intent]*time.Timer, 2)}
}

// Handle processes one key event. It returns false for keys it ignores.
func (k *KeyMap) Handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		k.move(level.MoveUp, level.StopVertical)
	case tcell.KeyDown:
		k.move(level.MoveDown, level.StopVertical)
	case tcell.KeyLeft:
		k.move(level.MoveLeft, level.StopHorizontal)
	case tcell.KeyRight:
		k.move(level.MoveRight, level.StopHorizontal)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.ctl.Quit()
	case tcell.KeyRune:
		return k.letter(ev.Rune())
	default:
		return false
	}
	return true
}

func (k *KeyMap) letter(r rune) bool {
	switch r {
	case 'w', 'W':
		k.move(level.MoveUp, level.StopVertical)
	case 's', 'S':
		k.move(level.MoveDown, level.StopVertical)
	case 'a', 'A':
		k.move(level.MoveLeft, level.StopHorizontal)
	case 'd', 'D':
		k.move(level.MoveRight, level.StopHorizontal)
	case ' ':
		k.ctl.Submit(level.Fire)
	case 'p', 'P':
		k.ctl.TogglePause()
	case 'r', 'R':
		k.ctl.Restart()
	case 'q', 'Q':
		k.ctl.Quit()
	default:
		return false
	}
	return true
}

func (k *KeyMap) move(in, stop level.Intent) {
	k.ctl.Submit(in)

	k.mu.Lock()
	defer k.mu.Unlock()
	if t, ok := k.timers[stop]; ok {
		t.Reset(k.release)
		return
	}
	k.timers[stop] = time.AfterFunc(k.release, func() {
		k.ctl.Submit(stop)
	})
}

// Stop cancels pending release timers.
func (k *KeyMap) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for in, t := range k.timers {
		t.Stop()
		delete(k.timers, in)
	}
}
