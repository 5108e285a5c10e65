package persist

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Leaderboard records finished runs in a ScoreStore without blocking the
// caller and answers top-N queries.
type Leaderboard struct {
	store   ScoreStore
	topN    int
	player  string
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewLeaderboard(store ScoreStore, topN int, player string, log *zap.Logger) *Leaderboard {
	return &Leaderboard{
		store:   store,
		topN:    topN,
		player:  player,
		timeout: 5 * time.Second,
		log:     log,
	}
}

// Record stores a score in the background. Failures are logged and dropped.
func (l *Leaderboard) Record(levelID string, kills int) {
	s := &Score{
		RunID:  uuid.New(),
		Player: l.player,
		Level:  levelID,
		Kills:  kills,
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()
		if err := l.store.AddScore(ctx, s); err != nil {
			l.log.Error("record score", zap.Error(err), zap.String("level", levelID), zap.Int("kills", kills))
			return
		}
		l.log.Info("score recorded",
			zap.String("run", s.RunID.String()),
			zap.String("level", levelID),
			zap.Int("kills", kills),
		)
	}()
}

// Top returns the best topN scores.
func (l *Leaderboard) Top(ctx context.Context) ([]Score, error) {
	return l.store.TopScores(ctx, l.topN)
}

// Flush waits for scores still being written.
func (l *Leaderboard) Flush() {
	l.wg.Wait()
}

// Reporter binds the leaderboard to one level for the level session.
func (l *Leaderboard) Reporter(levelID string) *LevelReporter {
	return &LevelReporter{board: l, level: levelID}
}

// LevelReporter records the final score of one level.
type LevelReporter struct {
	board *Leaderboard
	level string
}

func (r *LevelReporter) ReportScore(score int) {
	r.board.Record(r.level, score)
}
