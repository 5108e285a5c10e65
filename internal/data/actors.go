package data

import (
	"fmt"
	"os"

	"github.com/skyraid/skyraid/internal/entity"
	"gopkg.in/yaml.v3"
)

type actorsFile struct {
	Actors map[string]*entity.ActorSpec `yaml:"actors"`
}

// LoadActorTable loads actor tuning from a YAML file. Entries replace the
// built-in defaults class by class; classes not in the file keep their defaults.
func LoadActorTable(path string) (*entity.Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read actors: %w", err)
	}
	var f actorsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse actors: %w", err)
	}
	t := entity.DefaultTuning()
	t.Merge(f.Actors)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("actors %s: %w", path, err)
	}
	return t, nil
}
