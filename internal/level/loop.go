package level

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var errLoopStarted = errors.New("level loop already started")

// Loop drives a session at a fixed tick interval on a single goroutine.
// Pause and Resume only stop and restart the ticker; intents submitted while
// paused are dropped.
type Loop struct {
	session  *Session
	interval time.Duration
	log      *zap.Logger

	paused   atomic.Bool
	ctl      chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	started  atomic.Bool
}

func NewLoop(session *Session, interval time.Duration, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		session:  session,
		interval: interval,
		log:      log,
		ctl:      make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *Loop) Session() *Session { return l.session }

// Run ticks the session until ctx is cancelled or Stop is called.
// A loop runs once; a second Run returns an error.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return errLoopStarted
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	if l.paused.Load() {
		ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.ctl:
			if l.paused.Load() {
				ticker.Stop()
			} else {
				ticker.Reset(l.interval)
			}
		case <-ticker.C:
			// a stop or pause may race with an already delivered tick
			select {
			case <-l.stop:
				return nil
			default:
			}
			if l.paused.Load() {
				continue
			}
			l.session.Tick()
		}
	}
}

// Pause halts ticking. Pausing a paused loop is a no-op.
func (l *Loop) Pause() {
	if l.paused.CompareAndSwap(false, true) {
		l.signal()
		l.log.Debug("loop paused")
	}
}

// Resume restarts ticking after Pause.
func (l *Loop) Resume() {
	if l.paused.CompareAndSwap(true, false) {
		l.signal()
		l.log.Debug("loop resumed")
	}
}

// signal wakes Run to re-read the paused flag. Pending signals coalesce.
func (l *Loop) signal() {
	select {
	case l.ctl <- struct{}{}:
	default:
	}
}

func (l *Loop) Paused() bool { return l.paused.Load() }

// Submit forwards an intent to the session unless the loop is paused or stopped.
func (l *Loop) Submit(in Intent) bool {
	if l.paused.Load() || l.Stopped() {
		return false
	}
	return l.session.Submit(in)
}

// Stop ends the loop. It is safe to call more than once and from any
// goroutine, including from inside a tick.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Loop) Stopped() bool {
	select {
	case <-l.stop:
		return true
	default:
		return false
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Wait blocks until Run returns or ctx is done.
func (l *Loop) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
