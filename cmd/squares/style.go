package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/nicolekc/super-bowl-squares/internal/squares"
)

// renderAll prints the current status of every loaded board.
func renderAll(boards []squares.Board, state squares.GameState) {
	pterm.DefaultSection.Printfln("Q%d — %s %d : %d %s",
		state.Quarter+1,
		boards[0].Config.TopTeam, state.Score.Top,
		state.Score.Left, boards[0].Config.LeftTeam)
	for i := range boards {
		renderBoard(&boards[i], state)
	}
}

func renderBoard(b *squares.Board, state squares.GameState) {
	title := fmt.Sprintf("%s (%dx%d)", b.Config.Name, b.Config.Cols, b.Config.Rows)
	box := pterm.DefaultBox.WithTitle(pterm.LightYellow(title)).WithTitleTopCenter()
	if b.IsFullBoard() {
		box.Println(fullBoardSummary(b, state))
		return
	}
	box.Println(mySquaresSummary(b, state))
}

// mySquaresSummary renders one row per tracked square.
func mySquaresSummary(b *squares.Board, state squares.GameState) string {
	statuses := squares.CheckAllMySquares(b, state)
	if len(statuses) == 0 {
		return "no squares tracked yet"
	}
	qi := squares.QuarterIndex(b, state.Quarter)
	data := pterm.TableData{{"Square", "Status"}}
	for i, st := range statuses {
		d := b.MySquares[i].Quarters[qi]
		label := fmt.Sprintf("%s %s / %s %s",
			b.Config.TopTeam, squares.FormatDigits(d.TopDigits),
			b.Config.LeftTeam, squares.FormatDigits(d.LeftDigits))
		data = append(data, []string{label, statusText(st)})
	}
	out, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	return out
}

func statusText(st squares.SquareStatus) string {
	if st.IsWinner {
		return pterm.LightGreen("WINNER")
	}
	if len(st.NearMisses) == 0 {
		return pterm.Gray("-")
	}
	parts := make([]string, 0, len(st.NearMisses))
	for _, nm := range st.NearMisses {
		parts = append(parts, fmt.Sprintf("%s +%d", nm.Team, nm.Points))
	}
	return pterm.LightYellow("near: " + strings.Join(parts, ", "))
}

// fullBoardSummary names the winning owner and every near-miss cell.
func fullBoardSummary(b *squares.Board, state squares.GameState) string {
	cells := squares.FullBoardCellStatuses(b, state)
	keys := make([]squares.Position, 0, len(cells))
	for pos := range cells {
		keys = append(keys, pos)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})

	var sb strings.Builder
	for _, pos := range keys {
		c := cells[pos]
		owner := c.Owner
		if c.IsMine {
			owner = pterm.LightCyan(owner + " (mine)")
		}
		switch {
		case c.IsWinner:
			fmt.Fprintf(&sb, "%s  row %d col %d — %s\n",
				pterm.LightGreen("WINNER"), pos.Row, pos.Col, owner)
		default:
			parts := make([]string, 0, len(c.NearMisses))
			for _, nm := range c.NearMisses {
				parts = append(parts, fmt.Sprintf("%s +%d", nm.Team, nm.Points))
			}
			fmt.Fprintf(&sb, "%s    row %d col %d — %s (%s)\n",
				pterm.LightYellow("near"), pos.Row, pos.Col, owner, strings.Join(parts, ", "))
		}
	}
	if sb.Len() == 0 {
		return "no winner on the grid for this score"
	}
	return strings.TrimRight(sb.String(), "\n")
}
