package persist

import (
	"context"
	"fmt"

	"github.com/skyraid/skyraid/internal/config"
	"go.uber.org/zap"
)

// Open connects to the configured score store and applies migrations.
func Open(ctx context.Context, cfg config.ScoresConfig, log *zap.Logger) (ScoreStore, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("score store ready", zap.String("driver", "postgres"))
		return NewPGScoreRepo(db), nil
	case "sqlite":
		db, err := OpenSQLite(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunSQLiteMigrations(ctx, db.Conn); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("score store ready", zap.String("driver", "sqlite"), zap.String("path", cfg.DSN))
		return NewSQLScoreRepo(db), nil
	case "none", "":
		return nopStore{}, nil
	}
	return nil, fmt.Errorf("score driver %q not supported", cfg.Driver)
}
