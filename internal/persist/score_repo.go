package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Score is one finished endless run.
type Score struct {
	ID        int64
	RunID     uuid.UUID
	Player    string
	Level     string
	Kills     int
	CreatedAt time.Time
}

// ScoreStore persists scores and answers leaderboard queries.
type ScoreStore interface {
	AddScore(ctx context.Context, s *Score) error
	TopScores(ctx context.Context, n int) ([]Score, error)
	Close() error
}

// PGScoreRepo stores scores in Postgres.
type PGScoreRepo struct {
	db *DB
}

func NewPGScoreRepo(db *DB) *PGScoreRepo {
	return &PGScoreRepo{db: db}
}

// AddScore inserts s and fills in its ID and CreatedAt.
func (r *PGScoreRepo) AddScore(ctx context.Context, s *Score) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO scores (run_id, player, level, kills)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		s.RunID.String(), s.Player, s.Level, s.Kills,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// TopScores returns the n best scores, highest kills first, earliest first on ties.
func (r *PGScoreRepo) TopScores(ctx context.Context, n int) ([]Score, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, run_id, player, level, kills, created_at
		 FROM scores ORDER BY kills DESC, created_at ASC, id ASC LIMIT $1`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var s Score
		var runID string
		if err := rows.Scan(&s.ID, &runID, &s.Player, &s.Level, &s.Kills, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if s.RunID, err = uuid.Parse(runID); err != nil {
			return nil, fmt.Errorf("score %d run id: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGScoreRepo) Close() error {
	r.db.Close()
	return nil
}

// SQLScoreRepo stores scores in a local SQLite database.
type SQLScoreRepo struct {
	db  *SQLiteDB
	now func() time.Time
}

func NewSQLScoreRepo(db *SQLiteDB) *SQLScoreRepo {
	return &SQLScoreRepo{db: db, now: time.Now}
}

func (r *SQLScoreRepo) AddScore(ctx context.Context, s *Score) error {
	s.CreatedAt = r.now().UTC().Truncate(time.Second)
	res, err := r.db.Conn.ExecContext(ctx,
		`INSERT INTO scores (run_id, player, level, kills, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.RunID.String(), s.Player, s.Level, s.Kills, s.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert score id: %w", err)
	}
	return nil
}

func (r *SQLScoreRepo) TopScores(ctx context.Context, n int) ([]Score, error) {
	rows, err := r.db.Conn.QueryContext(ctx,
		`SELECT id, run_id, player, level, kills, created_at
		 FROM scores ORDER BY kills DESC, created_at ASC, id ASC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var s Score
		var runID string
		var created int64
		if err := rows.Scan(&s.ID, &runID, &s.Player, &s.Level, &s.Kills, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if s.RunID, err = uuid.Parse(runID); err != nil {
			return nil, fmt.Errorf("score %d run id: %w", s.ID, err)
		}
		s.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLScoreRepo) Close() error {
	return r.db.Close()
}

// nopStore discards scores; used when persistence is disabled.
type nopStore struct{}

func (nopStore) AddScore(context.Context, *Score) error          { return nil }
func (nopStore) TopScores(context.Context, int) ([]Score, error) { return nil, nil }
func (nopStore) Close() error                                    { return nil }
