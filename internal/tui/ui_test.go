package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeControls struct {
	mu      sync.Mutex
	intents []level.Intent
	pauses  int
	resets  int
	quits   int
}

func (f *fakeControls) Submit(in level.Intent) {
	f.mu.Lock()
	f.intents = append(f.intents, in)
	f.mu.Unlock()
}

func (f *fakeControls) TogglePause() {
	f.mu.Lock()
	f.pauses++
	f.mu.Unlock()
}

func (f *fakeControls) Restart() {
	f.mu.Lock()
	f.resets++
	f.mu.Unlock()
}

func (f *fakeControls) Quit() {
	f.mu.Lock()
	f.quits++
	f.mu.Unlock()
}

func (f *fakeControls) seen() []level.Intent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]level.Intent(nil), f.intents...)
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	cols, _ := s.Size()
	out := make([]rune, 0, cols)
	for x := 0; x < cols; x++ {
		r, _, _, _ := s.GetContent(x, y)
		out = append(out, r)
	}
	return string(out)
}

func TestKeyMapMovementReleases(t *testing.T) {
	ctl := &fakeControls{}
	k := NewKeyMap(ctl, 20*time.Millisecond)
	defer k.Stop()

	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)))

	assert.Eventually(t, func() bool {
		return len(ctl.seen()) == 4
	}, time.Second, 5*time.Millisecond)

	got := ctl.seen()
	assert.Equal(t, []level.Intent{level.MoveUp, level.MoveRight}, got[:2])
	assert.ElementsMatch(t, []level.Intent{level.StopVertical, level.StopHorizontal}, got[2:])
}

func TestKeyMapCommands(t *testing.T) {
	ctl := &fakeControls{}
	k := NewKeyMap(ctl, time.Hour)
	defer k.Stop()

	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	assert.Equal(t, []level.Intent{level.Fire}, ctl.seen())
	assert.Equal(t, 1, ctl.pauses)
	assert.Equal(t, 1, ctl.resets)
	assert.Equal(t, 1, ctl.quits)
}

func TestDrawHUDAndSprites(t *testing.T) {
	s := newScreen(t)
	u := New(s, zap.NewNop())

	u.Present(level.Frame{
		Name:         "Level One",
		Width:        1300,
		Height:       750,
		PlayerHealth: 5,
		Kills:        3,
		KillTarget:   10,
		BossHealth:   -1,
		Sprites: []level.Sprite{
			{Kind: entity.KindPlayer, X: 0, Y: 0, W: 150, H: 150},
			{Kind: entity.KindEnemy, X: 1200, Y: 600, W: 100, H: 100},
		},
	})
	u.Draw()

	assert.Contains(t, rowText(s, 0), "Level One  HP 5  Kills 3/10")
	assert.NotContains(t, rowText(s, 0), "Boss")

	r, _, _, _ := s.GetContent(1, 2)
	assert.Equal(t, '▶', r)
	r, _, _, _ = s.GetContent(77, 21)
	assert.Equal(t, '◀', r)
}

func TestDrawBannerOnDefeat(t *testing.T) {
	s := newScreen(t)
	u := New(s, zap.NewNop())

	u.Present(level.Frame{Name: "Endless", Width: 1300, Height: 750, State: level.Lost, BossHealth: -1, Wave: 2})
	u.Draw()

	assert.Contains(t, rowText(s, 0), "Wave 2")
	assert.Contains(t, rowText(s, 12), "GAME OVER")

	u.SetBanner("PAUSED")
	u.Draw()
	assert.Contains(t, rowText(s, 12), "PAUSED")
	assert.NotContains(t, rowText(s, 12), "GAME OVER")
}
