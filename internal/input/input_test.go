package input

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
	"github.com/Bartleby2718/DieOrDareOfflineCLI/internal/config"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice42", "Bob"))
	assert.Error(t, ValidateName("", "Bob"), "empty names are rejected")
	assert.Error(t, ValidateName("Al ice", "Bob"), "spaces are rejected")
	assert.Error(t, ValidateName("Ali-ce", "Bob"), "punctuation is rejected")
	assert.Error(t, ValidateName("Bob", "Bob"), "the opponent's name is taken")
}

func TestGenerateComputerName(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	name := GenerateComputerName(rng, "")
	assert.True(t, strings.HasPrefix(name, "Computer"))
	assert.NoError(t, ValidateName(name, ""))

	// Force a collision: the same seed regenerates the same number.
	rng2 := rand.New(rand.NewPCG(1, 1))
	dodged := GenerateComputerName(rng2, name)
	assert.Equal(t, name+"a", dodged)
}

func TestParseDeckIndex(t *testing.T) {
	undisclosed := []int8{0, 3, 8}

	idx, err := ParseDeckIndex("1", undisclosed)
	require.NoError(t, err)
	assert.Equal(t, int8(0), idx)

	idx, err = ParseDeckIndex(" 9 ", undisclosed)
	require.NoError(t, err)
	assert.Equal(t, int8(8), idx)

	_, err = ParseDeckIndex("2", undisclosed)
	assert.Error(t, err, "disclosed decks are rejected")
	_, err = ParseDeckIndex("x", undisclosed)
	assert.Error(t, err)
	_, err = ParseDeckIndex("", undisclosed)
	assert.Error(t, err)
}

func TestCollectShoutsMapsKeys(t *testing.T) {
	red, black := config.BottomLeftKeys(), config.TopRightKeys()
	in := strings.NewReader("x\ni\nq\n")

	shouts := CollectShouts(in, 500*time.Millisecond, red, black)
	require.Len(t, shouts, 2, "unbound keys are dropped")
	assert.Equal(t, engine.Shout{Player: engine.PlayerRed, Action: engine.ActionDie}, shouts[0])
	assert.Equal(t, engine.Shout{Player: engine.PlayerBlack, Action: engine.ActionDie}, shouts[1])
}

func TestCollectShoutsWindowCloses(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	start := time.Now()
	shouts := CollectShouts(pr, 50*time.Millisecond, config.BottomLeftKeys(), config.TopRightKeys())
	assert.Empty(t, shouts)
	assert.Less(t, time.Since(start), 2*time.Second, "the window must close without input")
}

func TestCollectShoutsPreservesOrder(t *testing.T) {
	red, black := config.BottomLeftKeys(), config.TopRightKeys()
	in := strings.NewReader("o\nc\n")

	shouts := CollectShouts(in, 500*time.Millisecond, red, black)
	require.Len(t, shouts, 2)
	assert.Equal(t, uint8(engine.PlayerBlack), shouts[0].Player, "black's done arrived first")
	assert.Equal(t, engine.ActionDone, shouts[0].Action)
	assert.Equal(t, uint8(engine.PlayerRed), shouts[1].Player)
}
