// Package console renders the game board and messages to the terminal.
// The board is a fixed 9-column monospace layout: red's decks on top, the
// duel marker in the middle, black's decks mirrored below.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/Bartleby2718/DieOrDareOfflineCLI/engine"
)

const (
	columnWidth = 9
	totalWidth  = columnWidth * engine.DecksPerPile
	indent      = "          "
)

// Renderer writes the board. Delay paces the output between steps; a nil
// Delay renders without pauses.
type Renderer struct {
	W      io.Writer
	Colors bool
	Delay  func(engine.Pace) time.Duration
}

// New returns a stdout renderer with colors on.
func New(delay func(engine.Pace) time.Duration) *Renderer {
	return &Renderer{W: os.Stdout, Colors: true, Delay: delay}
}

func (r *Renderer) pause(pace engine.Pace) {
	if r.Delay == nil {
		return
	}
	if d := r.Delay(pace); d > 0 {
		time.Sleep(d)
	}
}

// Banner prints the title screen.
func (r *Renderer) Banner() {
	title := "DIE OR DARE"
	if r.Colors {
		title = pterm.LightYellow(title)
	}
	fmt.Fprintln(r.W, center("", totalWidth, '='))
	fmt.Fprintln(r.W, center(title, totalWidth, ' '))
	fmt.Fprintln(r.W, center("", totalWidth, '='))
}

// Message prints a message block without the board and pauses.
func (r *Renderer) Message(msg string, pace engine.Pace) {
	fmt.Fprintln(r.W, center("", totalWidth, '-'))
	r.message(msg)
	r.pause(pace)
}

func (r *Renderer) message(msg string) {
	if msg == "" {
		return
	}
	lines := strings.Split(msg, "\n")
	fmt.Fprintf(r.W, "Message:  %s\n", lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(r.W, "%s%s\n", indent, line)
	}
}

// Board prints the full board with a trailing message block and pauses.
func (r *Renderer) Board(g *engine.Game, msg string, pace engine.Pace) {
	fmt.Fprintln(r.W, center("", totalWidth, '-'))

	duel := g.CurrentDuel()
	r.playerHalf(g, engine.PlayerRed, duel, false)

	duelStr := ""
	if duel != nil {
		duelStr = fmt.Sprintf("[Duel #%d]", duel.Index+1)
	}
	fmt.Fprintln(r.W)
	fmt.Fprintln(r.W, center(duelStr, totalWidth, ' '))
	fmt.Fprintln(r.W)

	r.playerHalf(g, engine.PlayerBlack, duel, true)
	r.message(msg)
	r.pause(pace)
}

// playerHalf prints one player's five board lines. The black half is
// mirrored so both players read their decks nearest the duel marker.
func (r *Renderer) playerHalf(g *engine.Game, id uint8, duel *engine.Duel, mirrored bool) {
	p := &g.Players[id]

	role := ""
	if duel != nil && !duel.Over {
		if id == duel.Offense() {
			role = "Offense"
		} else {
			role = "Defense"
		}
	}
	alias := "Red"
	if id == engine.PlayerBlack {
		alias = "Black"
	}
	header := center(role, columnWidth*2, ' ') +
		center(fmt.Sprintf("%s (%s)", p.Name, alias), columnWidth*5, ' ') +
		center(fmt.Sprintf("Points %d | Die %d", p.Points, p.DieShouts), columnWidth*2, ' ')

	numbers := make([]string, engine.DecksPerPile)
	undisclosed := make([]string, engine.DecksPerPile)
	var rows [engine.CardsPerDeck][]string
	for i := range rows {
		rows[i] = make([]string, engine.DecksPerPile)
	}
	for i := range p.Decks {
		deck := &p.Decks[i]
		if deck.IsInDuel() {
			numbers[i] = fmt.Sprintf("< #%d >", i+1)
		} else {
			numbers[i] = fmt.Sprintf("#%d", i+1)
		}
		undisclosed[i] = deck.UndisclosedDelegateLabel()
		labels := deck.Labels()
		for c := 0; c < engine.CardsPerDeck; c++ {
			rows[c][i] = labels[c]
		}
	}

	lines := []string{
		header,
		toLine(numbers),
		toLine(undisclosed),
		toLine(rows[0]),
		toLine(rows[1]),
		toLine(rows[2]),
	}
	if mirrored {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	paint := func(s string) string { return s }
	if r.Colors {
		if id == engine.PlayerRed {
			paint = func(s string) string { return pterm.LightRed(s) }
		} else {
			paint = func(s string) string { return pterm.LightBlue(s) }
		}
	}
	for _, line := range lines {
		fmt.Fprintln(r.W, paint(line))
	}
}

func toLine(cells []string) string {
	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(center(cell, columnWidth, ' '))
	}
	return strings.TrimRight(b.String(), " ")
}

func center(content string, width int, fill byte) string {
	if len(content) >= width {
		return content
	}
	pad := width - len(content)
	left := pad / 2
	right := pad - left
	return strings.Repeat(string(fill), left) + content + strings.Repeat(string(fill), right)
}
