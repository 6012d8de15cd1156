package config

import "fmt"

// BotDifficulty affects how quickly patrolling bots react
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay int `yaml:"reaction_delay"` // Ticks before a bot searches its path again
	DwellTicks    int `yaml:"dwell_ticks"`    // Ticks to idle on a reached waypoint
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = DefaultBot()
}

func DefaultBot() BotConfigData {
	return BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 18, // 0.5 second at 36 ticks/s
				DwellTicks:    72,
			},
			BotDifficultyNormal: {
				ReactionDelay: 9,
				DwellTicks:    36,
			},
			BotDifficultyHard: {
				ReactionDelay: 0, // Decide every tick
				DwellTicks:    0,
			},
		},
	}
}

func (c BotDifficultyConfig) Validate() error {
	if c.ReactionDelay < 0 {
		return fmt.Errorf("%w: reaction_delay must not be negative, got %d", ErrInvalidConfig, c.ReactionDelay)
	}
	if c.DwellTicks < 0 {
		return fmt.Errorf("%w: dwell_ticks must not be negative, got %d", ErrInvalidConfig, c.DwellTicks)
	}
	return nil
}

// ForDifficulty returns the tuning for d, falling back to normal.
func (b BotConfigData) ForDifficulty(d BotDifficulty) BotDifficultyConfig {
	if c, ok := b.Difficulties[d]; ok {
		return c
	}
	return b.Difficulties[BotDifficultyNormal]
}
