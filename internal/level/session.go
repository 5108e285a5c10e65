package level

import (
	"fmt"
	"time"

	"github.com/skyraid/skyraid/internal/collision"
	"github.com/skyraid/skyraid/internal/core/ecs"
	"github.com/skyraid/skyraid/internal/core/event"
	coresys "github.com/skyraid/skyraid/internal/core/system"
	"github.com/skyraid/skyraid/internal/entity"
	"github.com/skyraid/skyraid/internal/geom"
	"github.com/skyraid/skyraid/internal/system"
	"go.uber.org/zap"
)

// Options carries the collaborators of a session. Only Factory is required.
type Options struct {
	Width       float64 // play field, defaults to 1300x750
	Height      float64
	TickRate    time.Duration
	Factory     *entity.Factory
	Bus         *event.Bus
	Progression *Progression
	Renderer    Renderer
	Reporter    ScoreReporter
	Difficulty  Difficulty
	Cull        bool // destroy projectiles far outside the field
	InputQueue  int
	Log         *zap.Logger
}

// Session runs one level: it owns the entity registry, the tick pipeline and
// the RUNNING → WON/LOST state machine. All methods except Submit and
// RequestRestart must be called from the goroutine driving Tick.
type Session struct {
	def         Definition
	log         *zap.Logger
	width       float64
	height      float64
	dt          time.Duration
	factory     *entity.Factory
	rng         entity.Rand
	registry    *ecs.Registry
	runner      *coresys.Runner
	bus         *event.Bus
	progression *Progression
	renderer    Renderer
	reporter    ScoreReporter
	policy      policy
	intents     chan Intent

	player       *entity.Entity
	boss         *entity.Entity
	bossBehavior *entity.BossBehavior
	state        State
	kills        int
	tick         uint64
}

// NewSession validates def against the actor tuning and builds a running level.
func NewSession(def Definition, opts Options) (*Session, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if opts.Factory == nil {
		return nil, fmt.Errorf("level %s: factory required", def.ID)
	}
	pol, err := newPolicy(&def, opts.Difficulty)
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 {
		opts.Width = 1300
	}
	if opts.Height <= 0 {
		opts.Height = 750
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 50 * time.Millisecond
	}
	if opts.InputQueue <= 0 {
		opts.InputQueue = 64
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.Progression == nil {
		opts.Progression = NewProgression()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	if def.Kind != KindBoss {
		// unknown enemy classes are a construction error, not a mid-level one
		if _, err := opts.Factory.Enemy(def.enemyClass(), 0, 0); err != nil {
			return nil, fmt.Errorf("level %s: %w", def.ID, err)
		}
	}

	s := &Session{
		def:         def,
		log:         opts.Log.With(zap.String("level", def.ID)),
		width:       opts.Width,
		height:      opts.Height,
		dt:          opts.TickRate,
		factory:     opts.Factory,
		rng:         opts.Factory.Rand(),
		registry:    ecs.NewRegistry(),
		runner:      coresys.NewRunner(),
		bus:         opts.Bus,
		progression: opts.Progression,
		renderer:    opts.Renderer,
		reporter:    opts.Reporter,
		policy:      pol,
		intents:     make(chan Intent, opts.InputQueue),
	}
	if err := s.populate(); err != nil {
		return nil, err
	}

	resolver := collision.NewResolver(s.registry, s.width)
	s.runner.Register(system.NewInputSystem[Intent](s.intents, opts.InputQueue, s.apply))
	s.runner.Register(coresys.Func{P: coresys.PhaseSpawn, Fn: s.spawn})
	s.runner.Register(system.NewUpdateSystem(s.registry))
	s.runner.Register(system.NewFireSystem(s.registry))
	s.runner.Register(system.NewCollisionSystem(resolver, s.bus, s.Player))
	if opts.Cull {
		s.runner.Register(system.NewCullSystem(s.registry, geom.Rect{W: s.width, H: s.height}))
	}
	s.runner.Register(system.NewReapSystem(s.registry, s.bus, s.addKills))
	s.runner.Register(coresys.Func{P: coresys.PhaseEvaluate, Fn: s.evaluate})
	s.runner.Register(system.NewOutputSystem(s.bus, s.publish))

	s.log.Info("level started",
		zap.String("kind", string(def.Kind)),
		zap.Int("systems", s.runner.Len()),
	)
	return s, nil
}

// populate registers the player and lets the policy set up its actors.
func (s *Session) populate() error {
	player, err := s.factory.Player()
	if err != nil {
		return fmt.Errorf("level %s: %w", s.def.ID, err)
	}
	s.player = player
	s.registry.AddFriendly(player)
	if err := s.policy.start(s); err != nil {
		return fmt.Errorf("level %s: %w", s.def.ID, err)
	}
	return nil
}

// Tick runs one pass of the pipeline. Once the level has ended only the
// output phase runs.
func (s *Session) Tick() {
	s.tick++
	if s.state != Running {
		s.runner.TickPhase(coresys.PhaseOutput, s.dt)
		return
	}
	s.runner.Tick(s.dt)
}

// Submit queues an intent for the next tick. It is safe to call from any
// goroutine and returns false when the queue is full.
func (s *Session) Submit(in Intent) bool {
	select {
	case s.intents <- in:
		return true
	default:
		return false
	}
}

func (s *Session) apply(in Intent) {
	p := s.player
	if p == nil || p.Destroyed() {
		return
	}
	switch in {
	case MoveUp:
		p.MoveUp()
	case MoveDown:
		p.MoveDown()
	case MoveLeft:
		p.MoveLeft()
	case MoveRight:
		p.MoveRight()
	case StopVertical:
		p.StopVertical()
	case StopHorizontal:
		p.StopHorizontal()
	case Fire:
		if shot := p.Fire(); shot != nil {
			s.registry.AddPlayerProjectile(shot)
			event.Emit(s.bus, event.CuePlayed{Cue: event.CueShoot})
		}
	}
}

func (s *Session) spawn(time.Duration) {
	s.policy.spawn(s)
}

// spawnEnemy places one enemy at the right edge at a random height.
func (s *Session) spawnEnemy() {
	yRange := s.def.SpawnYRange
	if yRange <= 0 {
		yRange = s.height - 150
	}
	y := s.def.SpawnYMin + s.rng.Float64()*yRange
	e, err := s.factory.Enemy(s.def.enemyClass(), s.width, y)
	if err != nil {
		s.log.Error("spawn enemy", zap.Error(err))
		return
	}
	s.registry.AddEnemy(e)
}

func (s *Session) addKills(n int) int {
	s.kills += n
	return s.kills
}

func (s *Session) waveCleared(prev, next Wave) {
	s.log.Info("wave cleared",
		zap.Int("wave", prev.Number),
		zap.Int("max_enemies", next.MaxEnemies),
		zap.Float64("spawn_chance", next.SpawnChance),
		zap.Int("kills", s.kills),
	)
}

func (s *Session) evaluate(time.Duration) {
	if s.state != Running {
		return
	}
	switch {
	case s.player.Destroyed():
		s.lose()
	case s.policy.won(s):
		s.win()
	}
}

func (s *Session) win() {
	s.state = Won
	event.Emit(s.bus, event.CuePlayed{Cue: event.CueWin})
	event.Emit(s.bus, event.LevelEnded{Level: s.def.ID, Won: true, Kills: s.kills})

	t := Transition{Kind: Victory, From: s.def.ID, Score: s.kills}
	if s.def.Next != "" {
		t.Kind = Advance
		t.To = s.def.Next
	}
	s.log.Info("level won", zap.Int("kills", s.kills), zap.Stringer("transition", t.Kind))
	s.progression.Notify(t)
}

func (s *Session) lose() {
	s.state = Lost
	event.Emit(s.bus, event.CuePlayed{Cue: event.CueGameOver})
	event.Emit(s.bus, event.LevelEnded{Level: s.def.ID, Won: false, Kills: s.kills})

	if s.def.TrackScore && s.reporter != nil {
		s.reporter.ReportScore(s.kills)
	}
	s.log.Info("level lost", zap.Int("kills", s.kills))
	s.progression.Notify(Transition{Kind: Defeat, From: s.def.ID, Score: s.kills})
}

// RequestRestart asks the progression listeners to replay this level.
func (s *Session) RequestRestart() {
	s.progression.Notify(Transition{Kind: Restart, From: s.def.ID, To: s.def.ID})
}

// Reset returns the level to its starting state: enemies and projectiles
// are cleared, a fresh player is registered and the policy starts over.
func (s *Session) Reset() error {
	s.registry.ClearEnemies()
	s.registry.ClearAllProjectiles()
	if s.player != nil {
		s.registry.RemoveFriendly(s.player)
	}
	s.boss, s.bossBehavior = nil, nil
	s.kills = 0
	s.tick = 0
	s.state = Running
	s.bus.Discard()
	for len(s.intents) > 0 {
		<-s.intents
	}
	if err := s.populate(); err != nil {
		return err
	}
	s.log.Info("level reset")
	return nil
}

func (s *Session) publish() {
	if s.renderer != nil {
		s.renderer.Present(s.Frame())
	}
}

// Frame snapshots the current tick for rendering.
func (s *Session) Frame() Frame {
	f := Frame{
		Tick:         s.tick,
		Level:        s.def.ID,
		Name:         s.def.Name,
		State:        s.state,
		Width:        s.width,
		Height:       s.height,
		PlayerHealth: s.player.Health,
		Kills:        s.kills,
		BossHealth:   -1,
	}
	fr, en, ps, es := s.registry.Counts()
	f.Sprites = make([]Sprite, 0, fr+en+ps+es)
	add := func(e *entity.Entity) {
		f.Sprites = append(f.Sprites, Sprite{
			Kind:     e.Kind,
			Class:    e.Class,
			X:        e.X,
			Y:        e.Y,
			W:        e.Width,
			H:        e.Height,
			Shielded: e.Shielded(),
		})
	}
	s.registry.Friendlies().Each(add)
	s.registry.Enemies().Each(add)
	s.registry.PlayerProjectiles().Each(add)
	s.registry.EnemyProjectiles().Each(add)

	if s.boss != nil {
		f.BossHealth = s.boss.Health
		f.BossShielded = s.boss.Shielded()
	}
	s.policy.hud(&f)
	return f
}

func (s *Session) Definition() Definition             { return s.def }
func (s *Session) State() State                       { return s.state }
func (s *Session) Kills() int                         { return s.kills }
func (s *Session) Ticks() uint64                      { return s.tick }
func (s *Session) Player() *entity.Entity             { return s.player }
func (s *Session) Boss() *entity.Entity               { return s.boss }
func (s *Session) BossBehavior() *entity.BossBehavior { return s.bossBehavior }
func (s *Session) Registry() *ecs.Registry            { return s.registry }
func (s *Session) Bus() *event.Bus                    { return s.bus }
