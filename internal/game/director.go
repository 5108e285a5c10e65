package game

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/skyraid/skyraid/internal/config"
	"github.com/skyraid/skyraid/internal/core/event"
	"github.com/skyraid/skyraid/internal/data"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/persist"
	"github.com/skyraid/skyraid/internal/scripting"
	"go.uber.org/zap"
)

var errQuit = errors.New("quit requested")

// Options carries the collaborators of a Director.
type Options struct {
	Rand        entity.Rand
	Renderer    level.Renderer
	Leaderboard *persist.Leaderboard // nil disables score recording
	// HoldOnEnd keeps a finished game on screen until Restart or Quit.
	// Without it Run returns as soon as the game is won or lost.
	HoldOnEnd bool
	Log       *zap.Logger
}

// Director walks the level graph: it builds a session per level, runs it on
// a Loop and reacts to the transitions the session reports. File reloads
// are picked up between levels and on restart.
type Director struct {
	cfg  *config.Config
	opts Options
	log  *zap.Logger

	bus         *event.Bus
	progression *level.Progression
	transitions chan level.Transition

	levels     *data.LevelTable
	tuning     *entity.Tuning
	engine     *scripting.Engine
	difficulty level.Difficulty

	mu     sync.Mutex
	loop   *level.Loop
	reload reloadSet

	quit     chan struct{}
	quitOnce sync.Once
}

type reloadSet struct {
	levels, actors, script bool
}

func (r reloadSet) any() bool { return r.levels || r.actors || r.script }

// NewDirector loads the level, actor and difficulty files named in cfg.
func NewDirector(cfg *config.Config, opts Options) (*Director, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand, _ = NewRand(cfg.Game.Seed)
	}
	log := opts.Log.Named("director")

	levels, err := loadLevels(cfg.Files.Levels, log)
	if err != nil {
		return nil, err
	}
	if _, err := levels.Get(cfg.Game.StartLevel); err != nil {
		return nil, err
	}
	tuning, err := loadActors(cfg.Files.Actors, log)
	if err != nil {
		return nil, err
	}
	engine, diff, err := loadDifficulty(cfg.Files.DifficultyScript, log)
	if err != nil {
		return nil, err
	}

	d := &Director{
		cfg:         cfg,
		opts:        opts,
		log:         log,
		bus:         event.NewBus(),
		progression: level.NewProgression(),
		transitions: make(chan level.Transition, 8),
		levels:      levels,
		tuning:      tuning,
		engine:      engine,
		difficulty:  diff,
		quit:        make(chan struct{}),
	}
	d.progression.Subscribe(d.enqueue)
	event.Subscribe(d.bus, func(e event.LevelEnded) {
		d.log.Info("level ended",
			zap.String("level", e.Level),
			zap.Bool("won", e.Won),
			zap.Int("kills", e.Kills),
		)
	})
	return d, nil
}

// SetRenderer replaces the renderer for sessions started after the call.
// Call it before Run.
func (d *Director) SetRenderer(r level.Renderer) { d.opts.Renderer = r }

// Tuning is the actor tuning currently in use.
func (d *Director) Tuning() *entity.Tuning { return d.tuning }

// Bus is shared by every session the director starts.
func (d *Director) Bus() *event.Bus { return d.bus }

// Progression reports every level transition.
func (d *Director) Progression() *level.Progression { return d.progression }

// enqueue runs on the loop goroutine and must not block.
func (d *Director) enqueue(tr level.Transition) {
	select {
	case d.transitions <- tr:
	default:
		d.log.Warn("transition dropped", zap.Stringer("kind", tr.Kind), zap.String("from", tr.From))
	}
}

// Run plays from the configured start level until the game is won or lost,
// Quit is called or ctx is done. It returns the last transition seen.
func (d *Director) Run(ctx context.Context) (level.Transition, error) {
	defer d.closeEngine()

	var last level.Transition
	id := d.cfg.Game.StartLevel
	for {
		s, err := d.newSession(id)
		if err != nil {
			return last, err
		}
		tr, err := d.play(ctx, s)
		if errors.Is(err, errQuit) {
			if tr.From != "" {
				last = tr
			}
			return last, nil
		}
		if err != nil {
			return last, err
		}
		last = tr

		switch tr.Kind {
		case level.Advance, level.Restart:
			id = tr.To
		case level.Victory, level.Defeat:
			return tr, nil
		}
		d.applyReload()
	}
}

func (d *Director) newSession(id string) (*level.Session, error) {
	def, err := d.levels.Get(id)
	if err != nil {
		return nil, err
	}
	opts := level.Options{
		Width:       d.cfg.Game.ScreenWidth,
		Height:      d.cfg.Game.ScreenHeight,
		TickRate:    d.cfg.Game.TickRate,
		Factory:     entity.NewFactory(d.tuning, d.opts.Rand),
		Bus:         d.bus,
		Progression: d.progression,
		Renderer:    d.opts.Renderer,
		Difficulty:  d.difficulty,
		Cull:        d.cfg.Game.Cull,
		InputQueue:  d.cfg.Game.InputQueue,
		Log:         d.opts.Log,
	}
	if d.opts.Leaderboard != nil {
		opts.Reporter = d.opts.Leaderboard.Reporter(def.ID)
	}
	return level.NewSession(def, opts)
}

// play runs s until it hands control back. A restart without pending file
// changes resets s in place; anything else returns to Run.
func (d *Director) play(ctx context.Context, s *level.Session) (level.Transition, error) {
	id := s.Definition().ID
	for {
		d.drainTransitions()
		tr, err := d.runLoop(ctx, s)
		if err != nil {
			return tr, err
		}

		if (tr.Kind == level.Victory || tr.Kind == level.Defeat) && d.opts.HoldOnEnd {
			final := tr
			if tr, err = d.await(ctx, id); err != nil {
				return final, err
			}
			if tr.Kind == level.Restart && final.Kind == level.Victory {
				tr.To = d.cfg.Game.StartLevel
				return tr, nil
			}
		}
		if tr.Kind != level.Restart {
			return tr, nil
		}
		if tr.To != id || d.reloadPending() {
			return tr, nil
		}
		if err := s.Reset(); err != nil {
			return tr, err
		}
	}
}

// runLoop ticks s until the first transition. The loop is stopped before
// runLoop returns, so s may be touched again by the caller.
func (d *Director) runLoop(ctx context.Context, s *level.Session) (level.Transition, error) {
	lp := level.NewLoop(s, d.cfg.Game.TickRate, d.opts.Log)
	d.setLoop(lp)
	go func() {
		if err := lp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.log.Error("level loop", zap.Error(err))
		}
	}()
	defer func() {
		lp.Stop()
		<-lp.Done()
	}()
	return d.await(ctx, s.Definition().ID)
}

// await returns the next transition of level id. Transitions still queued
// by an earlier level, such as a restart requested while it was being
// replaced, are dropped.
func (d *Director) await(ctx context.Context, id string) (level.Transition, error) {
	for {
		select {
		case <-ctx.Done():
			return level.Transition{}, ctx.Err()
		case <-d.quit:
			return level.Transition{}, errQuit
		case tr := <-d.transitions:
			if tr.From != id {
				d.log.Debug("stale transition dropped",
					zap.Stringer("kind", tr.Kind),
					zap.String("from", tr.From),
				)
				continue
			}
			d.log.Info("transition",
				zap.Stringer("kind", tr.Kind),
				zap.String("from", tr.From),
				zap.String("to", tr.To),
				zap.Int("score", tr.Score),
			)
			return tr, nil
		}
	}
}

func (d *Director) drainTransitions() {
	for {
		select {
		case <-d.transitions:
		default:
			return
		}
	}
}

func (d *Director) setLoop(lp *level.Loop) {
	d.mu.Lock()
	d.loop = lp
	d.mu.Unlock()
}

func (d *Director) current() *level.Loop {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loop
}

// Submit forwards an intent to the running level.
func (d *Director) Submit(in level.Intent) {
	if lp := d.current(); lp != nil {
		lp.Submit(in)
	}
}

// TogglePause pauses or resumes the running level.
func (d *Director) TogglePause() {
	lp := d.current()
	if lp == nil || lp.Stopped() {
		return
	}
	if lp.Paused() {
		lp.Resume()
	} else {
		lp.Pause()
	}
}

// Paused reports whether the running level is paused.
func (d *Director) Paused() bool {
	lp := d.current()
	return lp != nil && lp.Paused()
}

// Restart replays the current level, or the whole game after a victory.
func (d *Director) Restart() {
	if lp := d.current(); lp != nil {
		lp.Resume()
		lp.Session().RequestRestart()
	}
}

// Quit ends Run. Safe to call more than once.
func (d *Director) Quit() {
	d.quitOnce.Do(func() { close(d.quit) })
}

// Reload marks the file at path as changed. The new contents are loaded
// before the next level starts.
func (d *Director) Reload(path string) {
	files := d.cfg.Files
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case sameFile(path, files.Levels):
		d.reload.levels = true
	case sameFile(path, files.Actors):
		d.reload.actors = true
	case sameFile(path, files.DifficultyScript) || sameDir(path, files.DifficultyScript):
		d.reload.script = true
	default:
		return
	}
	d.log.Info("reload scheduled", zap.String("path", path))
}

func (d *Director) reloadPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reload.any()
}

// applyReload swaps in changed tables. A file that fails to load keeps the
// previous version.
func (d *Director) applyReload() {
	d.mu.Lock()
	pending := d.reload
	d.reload = reloadSet{}
	d.mu.Unlock()

	files := d.cfg.Files
	if pending.levels {
		if t, err := loadLevels(files.Levels, d.log); err != nil {
			d.log.Error("reload levels", zap.Error(err))
		} else {
			d.levels = t
		}
	}
	if pending.actors {
		if t, err := loadActors(files.Actors, d.log); err != nil {
			d.log.Error("reload actors", zap.Error(err))
		} else {
			d.tuning = t
		}
	}
	if pending.script {
		if e, diff, err := loadDifficulty(files.DifficultyScript, d.log); err != nil {
			d.log.Error("reload difficulty script", zap.Error(err))
		} else {
			d.closeEngine()
			d.engine, d.difficulty = e, diff
		}
	}
}

func (d *Director) closeEngine() {
	if d.engine != nil {
		d.engine.Close()
		d.engine = nil
	}
}

func sameFile(a, b string) bool {
	return b != "" && filepath.Clean(a) == filepath.Clean(b)
}

func sameDir(path, dir string) bool {
	return dir != "" && filepath.Ext(path) == ".lua" && filepath.Clean(filepath.Dir(path)) == filepath.Clean(dir)
}
