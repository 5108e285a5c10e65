package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/skyraid/skyraid/internal/audio"
	"github.com/skyraid/skyraid/internal/config"
	"github.com/skyraid/skyraid/internal/data"
	"github.com/skyraid/skyraid/internal/game"
	"github.com/skyraid/skyraid/internal/level"
	"github.com/skyraid/skyraid/internal/persist"
	"github.com/skyraid/skyraid/internal/tui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	configFlag   = flag.String("config", "", "config file (default $SKYRAID_CONFIG or config/skyraid.toml)")
	levelFlag    = flag.String("level", "", "start level id")
	seedFlag     = flag.String("seed", "", "random seed, replays a run")
	headlessFlag = flag.Bool("headless", false, "run without a terminal UI; implies -autopilot")
	pilotFlag    = flag.Bool("autopilot", false, "let the autopilot fly")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *levelFlag != "" {
		cfg.Game.StartLevel = *levelFlag
	}
	if *seedFlag != "" {
		cfg.Game.Seed = *seedFlag
	}
	if *headlessFlag || *pilotFlag {
		cfg.Game.Autopilot = true
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Score store
	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := persist.Open(openCtx, cfg.Scores, log)
	cancel()
	if err != nil {
		return fmt.Errorf("score store: %w", err)
	}
	defer store.Close()
	board := persist.NewLeaderboard(store, cfg.Scores.TopN, cfg.Scores.Player, log)

	// 4. Game
	rng, seed := game.NewRand(cfg.Game.Seed)
	log.Info("seed", zap.String("seed", seed))

	director, err := game.NewDirector(cfg, game.Options{
		Rand:        rng,
		Leaderboard: board,
		HoldOnEnd:   !*headlessFlag,
		Log:         log,
	})
	if err != nil {
		return err
	}

	sound := audio.NewPlayer(cfg.Audio, log)
	if !*headlessFlag {
		sound.Init()
	}
	defer sound.Close()
	sound.Attach(director.Bus())

	// 5. Run
	var result level.Transition
	if *headlessFlag {
		result, err = runHeadless(ctx, cfg, director, log)
	} else {
		result, err = runTerminal(ctx, cfg, director, log)
	}
	if err != nil {
		return err
	}

	board.Flush()
	printResult(ctx, result, board, seed)
	return nil
}

func loadConfig() (*config.Config, error) {
	path := *configFlag
	if path == "" {
		path = os.Getenv("SKYRAID_CONFIG")
	}
	if path == "" {
		path = "config/skyraid.toml"
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runTerminal(ctx context.Context, cfg *config.Config, director *game.Director, log *zap.Logger) (level.Transition, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return level.Transition{}, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return level.Transition{}, fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ui := tui.New(screen, log)
	var renderer level.Renderer = ui
	if cfg.Game.Autopilot {
		renderer = game.NewAutopilot(director.Submit, ui, director.Tuning())
	}
	director.SetRenderer(renderer)

	return supervise(ctx, cfg, director, log, func(ctx context.Context) error {
		err := ui.Run(ctx, pauseBanner{director, ui})
		director.Quit()
		return err
	})
}

func runHeadless(ctx context.Context, cfg *config.Config, director *game.Director, log *zap.Logger) (level.Transition, error) {
	status := level.RendererFunc(func(f level.Frame) {
		if f.Tick%100 == 0 {
			log.Debug("frame",
				zap.String("level", f.Level),
				zap.Uint64("tick", f.Tick),
				zap.Int("health", f.PlayerHealth),
				zap.Int("kills", f.Kills),
			)
		}
	})
	director.SetRenderer(game.NewAutopilot(director.Submit, status, director.Tuning()))
	return supervise(ctx, cfg, director, log, nil)
}

// supervise runs the director next to the optional front-end and the file
// watcher. Whichever finishes first stops the others.
func supervise(ctx context.Context, cfg *config.Config, director *game.Director, log *zap.Logger, front func(context.Context) error) (level.Transition, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var result level.Transition
	g.Go(func() error {
		defer cancel()
		tr, err := director.Run(ctx)
		result = tr
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if front != nil {
		g.Go(func() error {
			defer cancel()
			return front(ctx)
		})
	}
	if cfg.Files.Watch {
		w, err := data.NewWatcher(watchDirs(cfg.Files)...)
		if err != nil {
			log.Warn("file watch disabled", zap.Error(err))
		} else {
			g.Go(func() error {
				defer w.Close()
				for {
					select {
					case <-ctx.Done():
						return nil
					case path, ok := <-w.Events:
						if !ok {
							return nil
						}
						director.Reload(path)
					case err, ok := <-w.Errors:
						if !ok {
							return nil
						}
						log.Warn("file watch", zap.Error(err))
					}
				}
			})
		}
	}
	err := g.Wait()
	return result, err
}

func watchDirs(files config.FilesConfig) []string {
	var dirs []string
	for _, p := range []string{files.Levels, files.Actors} {
		if p != "" {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	if p := files.DifficultyScript; p != "" {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		} else {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	return dirs
}

// pauseBanner shows a banner while the game is paused.
type pauseBanner struct {
	*game.Director
	ui *tui.UI
}

func (p pauseBanner) TogglePause() {
	p.Director.TogglePause()
	if p.Director.Paused() {
		p.ui.SetBanner("PAUSED  [p] resume")
	} else {
		p.ui.SetBanner("")
	}
}

func (p pauseBanner) Restart() {
	p.Director.Restart()
	p.ui.SetBanner("")
}

func printResult(ctx context.Context, tr level.Transition, board *persist.Leaderboard, seed string) {
	p := message.NewPrinter(language.English)
	switch tr.Kind {
	case level.Victory:
		p.Printf("Victory! Cleared %s.\n", tr.From)
	case level.Defeat:
		p.Printf("Game over in %s with %d kills.\n", tr.From, tr.Score)
	default:
		p.Printf("Left the game.\n")
	}
	p.Printf("Seed: %s\n", seed)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	top, err := board.Top(ctx)
	if err != nil || len(top) == 0 {
		return
	}
	p.Printf("\nTop scores\n")
	for i, s := range top {
		p.Printf("%2d. %-12s %-10s %8d\n", i+1, s.Player, s.Level, s.Kills)
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	// the terminal belongs to the UI, so logs go to a file when one is set
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
