package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a config override file. Missing keys keep defaults.
type File struct {
	Motion MotionConfig `yaml:"motion"`
	Sim    SimConfig    `yaml:"sim"`
	Log    LogConfig    `yaml:"log"`
	Bot    BotTable     `yaml:"bot"`
}

// Defaults returns a File holding the built-in values.
func Defaults() File {
	return File{
		Motion: DefaultMotion(),
		Sim:    DefaultSim(),
		Log:    DefaultLog(),
		Bot:    DefaultBot().Difficulties,
	}
}

// Load reads a YAML override file on top of the defaults and validates the result.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(raw)
}

// Parse is Load without the file read.
func Parse(raw []byte) (File, error) {
	f := Defaults()
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("config yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) Validate() error {
	if err := f.Motion.Validate(); err != nil {
		return err
	}
	if err := f.Sim.Validate(); err != nil {
		return err
	}
	if err := f.Log.Validate(); err != nil {
		return err
	}
	for _, d := range slices.Sorted(maps.Keys(f.Bot)) {
		if err := f.Bot[d].Validate(); err != nil {
			return fmt.Errorf("bot difficulty %d: %w", d, err)
		}
	}
	return nil
}

// BotTable is the per-difficulty bot tuning of a config file. Overrides merge field
// by field into the entries already present.
type BotTable map[BotDifficulty]BotDifficultyConfig

func (t *BotTable) UnmarshalYAML(value *yaml.Node) error {
	var raw map[BotDifficulty]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}

	merged := maps.Clone(*t)
	if merged == nil {
		merged = make(BotTable, len(raw))
	}
	for d, node := range raw {
		c := merged[d]
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("bot difficulty %d: %w", d, err)
		}
		merged[d] = c
	}
	*t = merged
	return nil
}

// Apply installs f as the package-level configuration.
func Apply(f File) {
	Motion = f.Motion
	Sim = f.Sim
	Log = f.Log
	if f.Bot != nil {
		Bot = BotConfigData{Difficulties: f.Bot}
	}
}
