// Package aggregate computes the derived tables of a contest snapshot:
// user exposure, name combos, team stacks, and game stacks. Every
// function here is a pure transform over fully loaded inputs; nothing
// blocks on I/O mid-computation.
package aggregate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ComboConfig bounds the combinatorial generation. Cost per size is
// O(entries x C(roster_size, size)), so the caps below are a contract the
// caller must keep explicit on large contests, not an optimization the
// engine applies on its own. TopNCap truncates each derived table after
// sorting; zero disables the cap.
type ComboConfig struct {
	MinSize      int `yaml:"min_size" envconfig:"MIN_SIZE" default:"2" validate:"gte=2"`
	MaxSize      int `yaml:"max_size" envconfig:"MAX_SIZE" default:"4" validate:"gte=2,lte=4,gtefield=MinSize"`
	TeamStackMax int `yaml:"team_stack_max" envconfig:"TEAM_STACK_MAX" default:"4" validate:"gte=2"`
	GameStackMax int `yaml:"game_stack_max" envconfig:"GAME_STACK_MAX" default:"7" validate:"gte=2"`
	TopNCap      int `yaml:"top_n_cap" envconfig:"TOP_N_CAP" default:"5000" validate:"gte=0"`
}

// DefaultComboConfig returns the standard configuration: combo sizes 2-4,
// team stacks up to 4, game stacks up to 7 (a two-team slate can supply
// the full roster), 5000 rows per derived table.
func DefaultComboConfig() ComboConfig {
	return ComboConfig{
		MinSize:      2,
		MaxSize:      4,
		TeamStackMax: 4,
		GameStackMax: 7,
		TopNCap:      5000,
	}
}

var comboValidator = validator.New()

// Validate checks the size bounds before any generation runs.
func (c ComboConfig) Validate() error {
	if err := comboValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid combo config: %w", err)
	}
	return nil
}

// cap truncates rows to TopNCap when the cap is enabled.
func (c ComboConfig) capRows(n int) int {
	if c.TopNCap > 0 && n > c.TopNCap {
		return c.TopNCap
	}
	return n
}
