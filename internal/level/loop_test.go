package level

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skyraid/skyraid/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoopSession(t *testing.T, frames *atomic.Int64) *Session {
	t.Helper()
	s, err := NewSession(defByID(t, "level_one"), Options{
		Factory:  entity.NewFactory(entity.DefaultTuning(), constRand(0.99)),
		Renderer: RendererFunc(func(Frame) { frames.Add(1) }),
	})
	require.NoError(t, err)
	return s
}

func TestLoopTicksUntilStopped(t *testing.T) {
	var frames atomic.Int64
	l := NewLoop(newLoopSession(t, &frames), time.Millisecond, nil)

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()

	require.Eventually(t, func() bool { return frames.Load() >= 5 }, time.Second, time.Millisecond)
	l.Stop()
	l.Stop()
	require.NoError(t, <-errc)
	assert.True(t, l.Stopped())

	n := frames.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, frames.Load(), "no tick after stop")
	assert.False(t, l.Submit(Fire))
	assert.Error(t, l.Run(context.Background()), "a loop runs once")
}

func TestLoopStopBeforeRun(t *testing.T) {
	var frames atomic.Int64
	l := NewLoop(newLoopSession(t, &frames), time.Hour, nil)
	l.Stop()
	require.NoError(t, l.Run(context.Background()))
	require.NoError(t, l.Wait(context.Background()))
	assert.Zero(t, frames.Load())
}

func TestLoopContextCancel(t *testing.T) {
	var frames atomic.Int64
	l := NewLoop(newLoopSession(t, &frames), time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
	<-l.Done()
}

func TestLoopPauseDropsIntents(t *testing.T) {
	var frames atomic.Int64
	s := newLoopSession(t, &frames)
	l := NewLoop(s, time.Millisecond, nil)

	l.Pause()
	l.Pause()
	assert.True(t, l.Paused())
	assert.False(t, l.Submit(Fire), "paused loop swallows input")

	go l.Run(context.Background())
	defer l.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, frames.Load(), "paused loop does not tick")

	l.Resume()
	assert.True(t, l.Submit(MoveDown))
	require.Eventually(t, func() bool { return frames.Load() >= 3 }, time.Second, time.Millisecond)
}
