package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/mancala/board"
)

const (
	startGameText   = "Let's start the game!"
	chooseCupText   = "%s, choose a starting cup: "
	retryNumberText = "Invalid entry. Please enter the number of a cup\n"
	maxRetriesText  = "\nMax retries exceeded: giving up on this game."
	joinedText      = "%s has joined the game!\n"

	cellWidth = 4
	rowIndent = "    "
)

// SendText writes formatted text to a player
func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// RenderBoard draws the board from player A's seat: B's pits run right to
// left along the top, the stores sit at either end of the middle line and
// A's pits run left to right along the bottom. Cup numbers frame the rows.
func RenderBoard(pits []int) string {
	if len(pits) != board.NumPits {
		return ""
	}

	a, b := board.SideOf(board.PlayerA), board.SideOf(board.PlayerB)

	topCups := []int{}
	for i := b.Last; i >= b.First; i-- {
		topCups = append(topCups, i)
	}
	bottomCups := []int{}
	for i := a.First; i <= a.Last; i++ {
		bottomCups = append(bottomCups, i)
	}

	counts := func(cups []int) []int {
		out := make([]int, len(cups))
		for i, c := range cups {
			out[i] = pits[c]
		}
		return out
	}

	var sb strings.Builder
	sb.WriteString(rowIndent + renderRow(topCups) + "\n")
	sb.WriteString(rowIndent + renderRow(counts(topCups)) + "\n")
	sb.WriteString(fmt.Sprintf("%3d %s %d\n", pits[b.Store], strings.Repeat("-", cellWidth*len(topCups)), pits[a.Store]))
	sb.WriteString(rowIndent + renderRow(counts(bottomCups)) + "\n")
	sb.WriteString(rowIndent + renderRow(bottomCups) + "\n")
	sb.WriteString("\n")

	return sb.String()
}

func renderRow(values []int) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(fmt.Sprintf("%*d", cellWidth, v))
	}
	return sb.String()
}
