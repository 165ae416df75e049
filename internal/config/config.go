// Package config loads the game configuration: rule knobs, pacing delays,
// and per-player key bindings. Values resolve in three layers, each
// overriding the previous one: built-in defaults, an optional YAML file,
// and DOD_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

// KeyBindings maps each action to the single lowercase key a player presses
// during the shout window.
type KeyBindings struct {
	Idle string `yaml:"idle"`
	Dare string `yaml:"dare"`
	Die  string `yaml:"die"`
	Done string `yaml:"done"`
	Draw string `yaml:"draw"`
}

// BottomLeftKeys is the z-x-c-v-b cluster, the red player's default.
func BottomLeftKeys() KeyBindings {
	return KeyBindings{Idle: "b", Dare: "z", Die: "x", Done: "c", Draw: "v"}
}

// TopLeftKeys is the q-w-e-r-t cluster.
func TopLeftKeys() KeyBindings {
	return KeyBindings{Idle: "t", Dare: "q", Die: "w", Done: "e", Draw: "r"}
}

// TopRightKeys is the y-u-i-o-p cluster, the black player's default.
func TopRightKeys() KeyBindings {
	return KeyBindings{Idle: "y", Dare: "u", Die: "i", Done: "o", Draw: "p"}
}

// Action returns the action bound to key, or ActionNone.
func (k KeyBindings) Action(key string) engine.Action {
	switch key {
	case k.Idle:
		return engine.ActionIdle
	case k.Dare:
		return engine.ActionDare
	case k.Die:
		return engine.ActionDie
	case k.Done:
		return engine.ActionDone
	case k.Draw:
		return engine.ActionDraw
	}
	return engine.ActionNone
}

func (k KeyBindings) validate(who string) error {
	seen := map[string]string{}
	for name, key := range map[string]string{
		"idle": k.Idle, "dare": k.Dare, "die": k.Die, "done": k.Done, "draw": k.Draw,
	} {
		if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
			return fmt.Errorf("%s %s key %q: use a single lowercase alphabet", who, name, key)
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("%s key %q bound to both %s and %s", who, key, other, name)
		}
		seen[key] = name
	}
	return nil
}

// PaceSeconds holds the display delays, in seconds, keyed by game moment.
// The action windows double as the time players have to press a key.
type PaceSeconds struct {
	BeforeCoinToss    float64 `yaml:"before_coin_toss" env:"DOD_PACE_BEFORE_COIN_TOSS"`
	AfterCoinToss     float64 `yaml:"after_coin_toss" env:"DOD_PACE_AFTER_COIN_TOSS"`
	BeforeGameStart   float64 `yaml:"before_game_start" env:"DOD_PACE_BEFORE_GAME_START"`
	BeforeDeckChoice  float64 `yaml:"before_deck_choice" env:"DOD_PACE_BEFORE_DECK_CHOICE"`
	AfterDeckChoice   float64 `yaml:"after_deck_choice" env:"DOD_PACE_AFTER_DECK_CHOICE"`
	BeforeAction      float64 `yaml:"before_action" env:"DOD_PACE_BEFORE_ACTION"`
	ActionWindow      float64 `yaml:"action_window" env:"DOD_PACE_ACTION_WINDOW"`
	FinalActionWindow float64 `yaml:"final_action_window" env:"DOD_PACE_FINAL_ACTION_WINDOW"`
	BeforeCardOpen    float64 `yaml:"before_card_open" env:"DOD_PACE_BEFORE_CARD_OPEN"`
	AfterDuelEnd      float64 `yaml:"after_duel_end" env:"DOD_PACE_AFTER_DUEL_END"`
	AfterGameEnd      float64 `yaml:"after_game_end" env:"DOD_PACE_AFTER_GAME_END"`
}

// Config is the resolved game configuration.
type Config struct {
	RequiredPoints uint8 `yaml:"required_points" env:"DOD_REQUIRED_POINTS"`
	MaxDie         uint8 `yaml:"max_die" env:"DOD_MAX_DIE"`
	MaxDraw        uint8 `yaml:"max_draw" env:"DOD_MAX_DRAW"`

	Pace PaceSeconds `yaml:"pace"`

	RedKeys   KeyBindings `yaml:"red_keys"`
	BlackKeys KeyBindings `yaml:"black_keys"`

	// Quiet suppresses pacing delays entirely, for scripted runs.
	Quiet bool `yaml:"quiet" env:"DOD_QUIET"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RequiredPoints: 5,
		MaxDie:         3,
		MaxDraw:        3,
		Pace: PaceSeconds{
			BeforeCoinToss:    1,
			AfterCoinToss:     2,
			BeforeGameStart:   3,
			BeforeDeckChoice:  1,
			AfterDeckChoice:   1,
			BeforeAction:      1,
			ActionWindow:      5,
			FinalActionWindow: 5,
			BeforeCardOpen:    3,
			AfterDuelEnd:      3,
			AfterGameEnd:      3,
		},
		RedKeys:   BottomLeftKeys(),
		BlackKeys: TopRightKeys(),
	}
}

// Load resolves the configuration: defaults, then the YAML file at path if
// non-empty, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	if c.RequiredPoints < 1 || c.RequiredPoints > engine.DecksPerPile {
		return fmt.Errorf("required_points %d: must be 1..%d", c.RequiredPoints, engine.DecksPerPile)
	}
	if err := c.RedKeys.validate("red"); err != nil {
		return err
	}
	if err := c.BlackKeys.validate("black"); err != nil {
		return err
	}
	return nil
}

// Rules converts the rule knobs for the engine.
func (c Config) Rules() engine.Rules {
	return engine.Rules{
		RequiredPoints: c.RequiredPoints,
		MaxDie:         c.MaxDie,
		MaxDraw:        c.MaxDraw,
	}
}

// Delay returns the display delay for a pacing hint. Quiet mode collapses
// every delay to zero.
func (c Config) Delay(p engine.Pace) time.Duration {
	if c.Quiet {
		return 0
	}
	seconds := 0.0
	switch p {
	case engine.PaceBeforeCoinToss:
		seconds = c.Pace.BeforeCoinToss
	case engine.PaceAfterCoinToss:
		seconds = c.Pace.AfterCoinToss
	case engine.PaceBeforeGameStart:
		seconds = c.Pace.BeforeGameStart
	case engine.PaceBeforeDeckChoice:
		seconds = c.Pace.BeforeDeckChoice
	case engine.PaceAfterDeckChoice:
		seconds = c.Pace.AfterDeckChoice
	case engine.PaceBeforeAction:
		seconds = c.Pace.BeforeAction
	case engine.PaceActionWindow:
		seconds = c.Pace.ActionWindow
	case engine.PaceFinalActionWindow:
		seconds = c.Pace.FinalActionWindow
	case engine.PaceBeforeCardOpen:
		seconds = c.Pace.BeforeCardOpen
	case engine.PaceAfterDuelEnd:
		seconds = c.Pace.AfterDuelEnd
	case engine.PaceAfterGameEnd:
		seconds = c.Pace.AfterGameEnd
	}
	return time.Duration(seconds * float64(time.Second))
}
