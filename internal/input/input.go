// Package input gathers everything the game asks of a human: names,
// strategy picks, deck choices, and the timed shout window.
package input

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/config"
)

// ValidateName accepts non-empty alphanumeric names that differ from the
// opponent's.
func ValidateName(name, forbidden string) error {
	if name == "" {
		return fmt.Errorf("enter at least one character")
	}
	for _, r := range name {
		alnum := r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if !alnum {
			return fmt.Errorf("only alphanumeric characters are allowed")
		}
	}
	if name == forbidden {
		return fmt.Errorf("that name is taken by your opponent")
	}
	return nil
}

// GenerateComputerName returns a fresh "ComputerN" name, dodging a collision
// with the opponent's name.
func GenerateComputerName(rng *rand.Rand, forbidden string) string {
	name := "Computer" + strconv.Itoa(1+rng.IntN(999999))
	if name == forbidden {
		name += "a"
	}
	return name
}

// ParseDeckIndex turns a 1-based deck number into its 0-based index,
// rejecting numbers outside the undisclosed set.
func ParseDeckIndex(s string, undisclosed []int8) (int8, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1, fmt.Errorf("enter a deck number")
	}
	idx := int8(n - 1)
	for _, u := range undisclosed {
		if u == idx {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("choose an undisclosed deck")
}

// CollectShouts reads single-key lines from r until the window closes and
// maps them to declarations. Keys that belong to neither player are dropped;
// ordering is preserved so the resolver can apply its first-heard rule.
func CollectShouts(r io.Reader, window time.Duration, redKeys, blackKeys config.KeyBindings) []engine.Shout {
	type keyed struct {
		player uint8
		action engine.Action
	}
	ch := make(chan keyed)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			key := strings.TrimSpace(scanner.Text())
			var k keyed
			if a := redKeys.Action(key); a != engine.ActionNone {
				k = keyed{engine.PlayerRed, a}
			} else if a := blackKeys.Action(key); a != engine.ActionNone {
				k = keyed{engine.PlayerBlack, a}
			} else {
				continue
			}
			select {
			case ch <- k:
			case <-done:
				return
			}
		}
	}()

	deadline := time.After(window)
	var shouts []engine.Shout
	for {
		select {
		case k, ok := <-ch:
			if !ok {
				return shouts
			}
			shouts = append(shouts, engine.Shout{Player: k.player, Action: k.action})
		case <-deadline:
			return shouts
		}
	}
}

// Prompter asks questions interactively through pterm. Tests exercise the
// validation helpers directly instead.
type Prompter struct{}

// Name keeps asking until the name passes validation.
func (Prompter) Name(prompt, forbidden string) (string, error) {
	for {
		name, err := pterm.DefaultInteractiveTextInput.Show(prompt)
		if err != nil {
			return "", fmt.Errorf("read name: %w", err)
		}
		if err := ValidateName(name, forbidden); err != nil {
			pterm.Warning.Println(err)
			continue
		}
		return name, nil
	}
}

// JokerValueStrategy shows the four value options.
func (Prompter) JokerValueStrategy(player string) (engine.JokerValueStrategy, error) {
	options := []engine.JokerValueStrategy{
		engine.JokerThirteen, engine.JokerSameAsMax,
		engine.JokerRandomValue, engine.JokerNextBiggest,
	}
	return pickStrategy(player, "joker value", options, engine.JokerValueStrategy.Describe)
}

// JokerPositionStrategy shows the four position options.
func (Prompter) JokerPositionStrategy(player string) (engine.JokerPositionStrategy, error) {
	options := []engine.JokerPositionStrategy{
		engine.JokerFirst, engine.JokerLast,
		engine.JokerAnywhere, engine.JokerNotFirst,
	}
	return pickStrategy(player, "joker position", options, engine.JokerPositionStrategy.Describe)
}

func pickStrategy[T comparable](player, what string, options []T, describe func(T) string) (T, error) {
	labels := make([]string, len(options))
	byLabel := make(map[string]T, len(options))
	for i, opt := range options {
		labels[i] = describe(opt)
		byLabel[labels[i]] = opt
	}
	prompt := fmt.Sprintf("%s, choose your %s strategy", player, what)
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(labels).Show(prompt)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read %s strategy: %w", what, err)
	}
	return byLabel[choice], nil
}

// DeckIndex keeps asking until the player names an undisclosed deck.
func (Prompter) DeckIndex(player string, opponent bool, undisclosed []int8) (int8, error) {
	possessive := "your"
	if opponent {
		possessive = "your opponent's"
	}
	prompt := fmt.Sprintf("%s, choose %s deck (1-%d)", player, possessive, engine.DecksPerPile)
	for {
		raw, err := pterm.DefaultInteractiveTextInput.Show(prompt)
		if err != nil {
			return -1, fmt.Errorf("read deck index: %w", err)
		}
		idx, err := ParseDeckIndex(raw, undisclosed)
		if err != nil {
			pterm.Warning.Println(err)
			continue
		}
		return idx, nil
	}
}
