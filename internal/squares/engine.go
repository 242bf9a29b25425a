// internal/squares/engine.go
//
// Scoring engine: given a board and a running game score, computes
// which squares are current winners and which are one common scoring
// play (a field goal or a touchdown with the extra point) away from
// winning. Pure functions; inputs are never mutated and every call
// returns freshly allocated results.

package squares

import "strings"

// scoringDeltas are the two point swings a near miss is tracked for:
// a field goal (3) and a converted touchdown (7).
var scoringDeltas = [2]int{3, 7}

// LastDigit reduces a running score to its trailing digit, the only
// part that matters for square matching.
func LastDigit(score int) int {
	if score < 0 {
		score = -score
	}
	return score % 10
}

// QuarterIndex maps a game quarter to the index into a board's
// per-quarter data: always 0 when numbers are fixed for the whole
// game, the quarter itself on a reroll board.
func QuarterIndex(b *Board, quarter int) int {
	if !b.Config.Reroll {
		return 0
	}
	return quarter
}

// CheckMySquare evaluates one tracked square's digits against a score.
// A winning square is never also reported as near anything; otherwise
// each scoring delta is checked per team, gated on the other axis
// already matching, so up to four near misses can come back.
func CheckMySquare(d QuarterDigits, topScore, leftScore int, topTeam, leftTeam string) SquareStatus {
	td, ld := LastDigit(topScore), LastDigit(leftScore)
	topHit := d.TopDigits.Contains(td)
	leftHit := d.LeftDigits.Contains(ld)
	if topHit && leftHit {
		return SquareStatus{IsWinner: true}
	}
	var near []NearMiss
	for _, delta := range scoringDeltas {
		if leftHit && d.TopDigits.Contains(LastDigit(topScore+delta)) {
			near = append(near, NearMiss{Team: topTeam, Points: delta})
		}
		if topHit && d.LeftDigits.Contains(LastDigit(leftScore+delta)) {
			near = append(near, NearMiss{Team: leftTeam, Points: delta})
		}
	}
	return SquareStatus{NearMisses: near}
}

// CheckAllMySquares evaluates every tracked square of a my-squares
// board for the given game state.
func CheckAllMySquares(b *Board, state GameState) []SquareStatus {
	out := make([]SquareStatus, 0, len(b.MySquares))
	qi := QuarterIndex(b, state.Quarter)
	for _, sq := range b.MySquares {
		out = append(out, CheckMySquare(sq.Quarters[qi],
			state.Score.Top, state.Score.Left,
			b.Config.TopTeam, b.Config.LeftTeam))
	}
	return out
}

// FindPosition returns the first axis slot whose digit group contains
// digit, or -1 if no slot does.
func FindPosition(groups []DigitGroup, digit int) int {
	for i, g := range groups {
		if g.Contains(digit) {
			return i
		}
	}
	return -1
}

// CheckFullBoard locates the winning cell and the near-miss cells for
// one quarter's axis numbers. On a 5-slot axis two digits share a
// slot, so a delta that lands in the same slot as the current winner
// is not a distinct outcome and is suppressed.
func CheckFullBoard(qn QuarterNumbers, topScore, leftScore int, topTeam, leftTeam string) FullBoardStatus {
	td, ld := LastDigit(topScore), LastDigit(leftScore)
	winCol := FindPosition(qn.TopNumbers, td)
	winRow := FindPosition(qn.LeftNumbers, ld)
	st := FullBoardStatus{Winner: Position{Row: winRow, Col: winCol}}
	for _, delta := range scoringDeltas {
		if c := FindPosition(qn.TopNumbers, LastDigit(topScore+delta)); c >= 0 && c != winCol {
			st.NearMisses = append(st.NearMisses, PositionedNearMiss{
				Pos:      Position{Row: winRow, Col: c},
				NearMiss: NearMiss{Team: topTeam, Points: delta},
			})
		}
		if r := FindPosition(qn.LeftNumbers, LastDigit(leftScore+delta)); r >= 0 && r != winRow {
			st.NearMisses = append(st.NearMisses, PositionedNearMiss{
				Pos:      Position{Row: r, Col: winCol},
				NearMiss: NearMiss{Team: leftTeam, Points: delta},
			})
		}
	}
	return st
}

// FullBoardCellStatuses resolves a full-board check to grid cells:
// winner and near-miss positions are mapped to their owners, multiple
// near misses landing on the same cell are merged, and IsMine is set
// by case-insensitive membership in the tracked-owner names. The
// winner cell is present whenever its position is on the grid, even
// with no near misses. Positions off the grid (an axis that does not
// cover the score's digit) are skipped.
func FullBoardCellStatuses(b *Board, state GameState) map[Position]*CellStatus {
	fb := b.FullBoard
	qn := fb.Quarters[QuarterIndex(b, state.Quarter)]
	res := CheckFullBoard(qn, state.Score.Top, state.Score.Left,
		b.Config.TopTeam, b.Config.LeftTeam)

	mine := make(map[string]bool, len(fb.MySquareNames))
	for _, name := range fb.MySquareNames {
		mine[strings.ToLower(name)] = true
	}

	cells := make(map[Position]*CellStatus)
	cellAt := func(p Position) *CellStatus {
		if p.Row < 0 || p.Row >= len(fb.Grid) || p.Col < 0 || p.Col >= len(fb.Grid[p.Row]) {
			return nil
		}
		if c, ok := cells[p]; ok {
			return c
		}
		owner := fb.Grid[p.Row][p.Col]
		c := &CellStatus{Owner: owner, IsMine: mine[strings.ToLower(owner)]}
		cells[p] = c
		return c
	}

	if c := cellAt(res.Winner); c != nil {
		c.IsWinner = true
	}
	for _, nm := range res.NearMisses {
		if c := cellAt(nm.Pos); c != nil {
			c.NearMisses = append(c.NearMisses, nm.NearMiss)
		}
	}
	return cells
}
