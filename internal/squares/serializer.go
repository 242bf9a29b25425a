// internal/squares/serializer.go
//
// Structural inverse of the parser: renders boards back into the
// canonical text grammar. Round-trip law: parsing the output of
// SerializeBoards reproduces the same semantic content (formatting
// details like a dropped "full" keyword are re-derived, data never
// changes).

package squares

import (
	"fmt"
	"strconv"
	"strings"
)

// SerializeBoards renders a list of boards, blocks joined by a "---"
// separator line.
func SerializeBoards(boards []Board) string {
	blocks := make([]string, 0, len(boards))
	for i := range boards {
		blocks = append(blocks, SerializeBoard(&boards[i]))
	}
	return strings.Join(blocks, "\n---\n\n")
}

// SerializeBoard renders one board block.
func SerializeBoard(b *Board) string {
	var out strings.Builder
	out.WriteString(headerLine(b))
	out.WriteByte('\n')
	out.WriteString(teamsLine(b))
	out.WriteByte('\n')
	if len(b.Config.Payouts) > 0 {
		out.WriteString("Payouts " + joinInts(b.Config.Payouts) + "\n")
	}
	if b.FullBoard != nil {
		writeFullBoard(&out, b)
	} else {
		writeMySquares(&out, b)
	}
	return out.String()
}

func headerLine(b *Board) string {
	parts := []string{b.Config.Name}
	if b.Config.BuyIn != nil {
		parts = append(parts, "$"+strconv.Itoa(*b.Config.BuyIn))
	}
	parts = append(parts, fmt.Sprintf("%dx%d", b.Config.Cols, b.Config.Rows))
	if b.Config.Reroll {
		parts = append(parts, "reroll")
	}
	if b.FullBoard != nil {
		parts = append(parts, "full")
	}
	return strings.Join(parts, " ")
}

// teamsLine writes "(top)"/"(left)" annotations only for full boards,
// where the axis mapping matters to readers of the grid.
func teamsLine(b *Board) string {
	if b.FullBoard != nil {
		return fmt.Sprintf("%s (top) vs %s (left)", b.Config.TopTeam, b.Config.LeftTeam)
	}
	return b.Config.TopTeam + " vs " + b.Config.LeftTeam
}

func writeMySquares(out *strings.Builder, b *Board) {
	for _, sq := range b.MySquares {
		tops := make([]string, 0, len(sq.Quarters))
		lefts := make([]string, 0, len(sq.Quarters))
		for _, q := range sq.Quarters {
			tops = append(tops, FormatDigits(q.TopDigits))
			lefts = append(lefts, FormatDigits(q.LeftDigits))
		}
		fmt.Fprintf(out, "%s %s, %s %s\n",
			b.Config.TopTeam, strings.Join(tops, " "),
			b.Config.LeftTeam, strings.Join(lefts, " "))
	}
}

func writeFullBoard(out *strings.Builder, b *Board) {
	fb := b.FullBoard
	if b.Config.Reroll {
		for q, qn := range fb.Quarters {
			fmt.Fprintf(out, "Q%d Top %s, Left %s\n",
				q+1, joinGroups(qn.TopNumbers), joinGroups(qn.LeftNumbers))
		}
	} else {
		fmt.Fprintf(out, "Top %s\n", joinGroups(fb.Quarters[0].TopNumbers))
		fmt.Fprintf(out, "Left %s\n", joinGroups(fb.Quarters[0].LeftNumbers))
	}
	for _, row := range fb.Grid {
		out.WriteString(strings.Join(row, ", ") + "\n")
	}
	if len(fb.MySquareNames) > 0 {
		out.WriteString("Mine " + strings.Join(fb.MySquareNames, ", ") + "\n")
	}
}

func joinGroups(groups []DigitGroup) string {
	toks := make([]string, 0, len(groups))
	for _, g := range groups {
		toks = append(toks, FormatDigits(g))
	}
	return strings.Join(toks, " ")
}

func joinInts(ns []int) string {
	toks := make([]string, 0, len(ns))
	for _, n := range ns {
		toks = append(toks, strconv.Itoa(n))
	}
	return strings.Join(toks, " ")
}
