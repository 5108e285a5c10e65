package event

// Cue names an audio cue.
type Cue string

const (
	CueShoot     Cue = "shoot"
	CueExplosion Cue = "explosion"
	CueWin       Cue = "win"
	CueGameOver  Cue = "game_over"
)

// CuePlayed asks the audio collaborator to play a cue.
type CuePlayed struct {
	Cue Cue
}

// EnemiesKilled is emitted when a reap removes destroyed enemies.
type EnemiesKilled struct {
	Level string
	Count int
	Total int
}

// PlayerHit is emitted when the player loses health to a penetrating enemy.
type PlayerHit struct {
	Health int
}

// LevelEnded is emitted once when a level is won or lost.
type LevelEnded struct {
	Level string
	Won   bool
	Kills int
}
