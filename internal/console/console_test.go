package console

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

func testGame(seed uint64) *engine.Game {
	rng := rand.New(rand.NewPCG(seed, seed))
	red := engine.PlayerState{Name: "Ruby", Kind: engine.KindComputer, Strategy: engine.Presets()[0].Strategy}
	black := engine.PlayerState{Name: "Onyx", Kind: engine.KindComputer, Strategy: engine.Presets()[0].Strategy}
	g := engine.NewGame(red, black, engine.DefaultRules(), rng)
	g.Deal()
	return g
}

func plainRenderer(sb *strings.Builder) *Renderer {
	return &Renderer{W: sb, Colors: false}
}

func TestMessageBlock(t *testing.T) {
	var sb strings.Builder
	plainRenderer(&sb).Message("first line\nsecond line", engine.PaceNone)

	out := sb.String()
	assert.Contains(t, out, "Message:  first line")
	assert.Contains(t, out, indent+"second line")
	assert.True(t, strings.HasPrefix(out, strings.Repeat("-", totalWidth)))
}

func TestBoardShowsRolesAndDuelMarker(t *testing.T) {
	g := testGame(1)
	duel, err := g.ToNextDuel()
	require.NoError(t, err)
	_, _, err = g.CommitOffenseDeck(g.Offense().UndisclosedDecks()[0])
	require.NoError(t, err)

	var sb strings.Builder
	plainRenderer(&sb).Board(g, "pick a deck", engine.PaceNone)

	out := sb.String()
	assert.Contains(t, out, "Offense")
	assert.Contains(t, out, "Defense")
	assert.Contains(t, out, "[Duel #1]")
	assert.Contains(t, out, "Ruby (Red)")
	assert.Contains(t, out, "Onyx (Black)")
	assert.Contains(t, out, "< #1 >", "the committed deck is bracketed")
	assert.Contains(t, out, "Points 0 | Die 0")
	_ = duel
}

func TestBoardMasksHiddenCards(t *testing.T) {
	g := testGame(2)
	_, err := g.ToNextDuel()
	require.NoError(t, err)
	_, _, err = g.CommitOffenseDeck(0)
	require.NoError(t, err)
	_, _, err = g.CommitDefenseDeck(0)
	require.NoError(t, err)

	var sb strings.Builder
	plainRenderer(&sb).Board(g, "", engine.PaceNone)

	// Committed decks show their delegate and two masked slots.
	assert.Contains(t, sb.String(), "?")
}

func TestCenterFill(t *testing.T) {
	assert.Equal(t, "---", center("", 3, '-'))
	assert.Equal(t, " ab  ", center("ab", 5, ' '))
	assert.Equal(t, "toolong", center("toolong", 3, ' '))
}
