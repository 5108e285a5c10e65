// skyraid-scores prints the leaderboard kept by skyraid.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/skyraid/skyraid/internal/config"
	"github.com/skyraid/skyraid/internal/persist"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

type entry struct {
	Rank   int       `yaml:"rank"`
	Player string    `yaml:"player"`
	Level  string    `yaml:"level"`
	Kills  int       `yaml:"kills"`
	RunID  string    `yaml:"run_id"`
	At     time.Time `yaml:"at"`
}

func main() {
	cfgPath := flag.String("config", "config/skyraid.toml", "config file")
	n := flag.Int("n", 0, "entries to show (default scores.top_n)")
	asYAML := flag.Bool("yaml", false, "print YAML instead of a table")
	lang := flag.String("lang", "en", "language tag for number formatting")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *n > 0 {
		cfg.Scores.TopN = *n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := persist.Open(ctx, cfg.Scores, zap.NewNop())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(ctx, cfg.Scores.TopN)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	entries := make([]entry, 0, len(scores))
	for i, s := range scores {
		entries = append(entries, entry{
			Rank:   i + 1,
			Player: s.Player,
			Level:  s.Level,
			Kills:  s.Kills,
			RunID:  s.RunID.String(),
			At:     s.CreatedAt,
		})
	}

	if *asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]entry{"scores": entries}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	tag, err := language.Parse(*lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	if len(entries) == 0 {
		p.Println("No scores yet.")
		return
	}
	p.Printf("%-4s %-12s %-10s %8s  %s\n", "#", "Player", "Level", "Kills", "Date")
	for _, e := range entries {
		p.Printf("%-4d %-12s %-10s %8d  %s\n", e.Rank, e.Player, e.Level, e.Kills, e.At.Local().Format("2006-01-02 15:04"))
	}
}
