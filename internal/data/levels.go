package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/skyraid/skyraid/internal/level"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLevel is returned when a level id is not in the table.
var ErrUnknownLevel = errors.New("unknown level")

type levelsFile struct {
	Levels []level.Definition `yaml:"levels"`
}

// LevelTable holds level definitions indexed by id, in file order.
type LevelTable struct {
	order []string
	defs  map[string]level.Definition
}

// Get returns the definition for id.
func (t *LevelTable) Get(id string) (level.Definition, error) {
	d, ok := t.defs[id]
	if !ok {
		return level.Definition{}, fmt.Errorf("level %q: %w", id, ErrUnknownLevel)
	}
	return d, nil
}

// IDs returns the level ids in file order.
func (t *LevelTable) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Count returns the number of levels.
func (t *LevelTable) Count() int {
	return len(t.defs)
}

// NewLevelTable indexes defs and checks that every "next" reference resolves.
func NewLevelTable(defs []level.Definition) (*LevelTable, error) {
	t := &LevelTable{defs: make(map[string]level.Definition, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.defs[d.ID]; dup {
			return nil, fmt.Errorf("level %q defined twice", d.ID)
		}
		t.defs[d.ID] = d
		t.order = append(t.order, d.ID)
	}
	for _, d := range defs {
		if d.Next == "" {
			continue
		}
		if _, ok := t.defs[d.Next]; !ok {
			return nil, fmt.Errorf("level %q next %q: %w", d.ID, d.Next, ErrUnknownLevel)
		}
	}
	return t, nil
}

// DefaultLevelTable returns the built-in campaign.
func DefaultLevelTable() *LevelTable {
	t, err := NewLevelTable(level.DefaultDefinitions())
	if err != nil {
		panic(err)
	}
	return t
}

// LoadLevelTable loads level definitions from a YAML file.
func LoadLevelTable(path string) (*LevelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	var f levelsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	t, err := NewLevelTable(f.Levels)
	if err != nil {
		return nil, fmt.Errorf("levels %s: %w", path, err)
	}
	return t, nil
}
