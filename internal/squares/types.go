// internal/squares/types.go
//
// Core type definitions for the squares engine.
// Defines:
//   - AxisSize: number of slots along one edge of the grid (5 or 10).
//   - DigitGroup: the digit(s) assigned to one axis slot.
//   - BoardConfig / Board: a parsed pool, in one of two visibility modes.
//   - GameState / Score: a running game score at a given quarter.
//   - Result types returned by the scoring engine.

package squares

// AxisSize is the number of slots along one edge of the grid.
// Only 5 and 10 are valid.
type AxisSize int

const (
	Axis5  AxisSize = 5
	Axis10 AxisSize = 10
)

// DigitGroup holds the digit(s) assigned to a single axis slot:
// one digit on a 10-slot axis, two (distinct) digits on a 5-slot axis.
// Digits keep the left-to-right order they were written in.
type DigitGroup []int

// Contains reports whether d is one of the group's digits.
func (g DigitGroup) Contains(d int) bool {
	for _, x := range g {
		if x == d {
			return true
		}
	}
	return false
}

// BoardConfig is the header-level configuration shared by both board modes.
type BoardConfig struct {
	Name     string   `json:"name"`             // Free-text board name ("Board" if none given).
	BuyIn    *int     `json:"buyIn,omitempty"`  // Optional per-square buy-in in whole dollars.
	Cols     AxisSize `json:"cols"`             // Axis owned by the top team.
	Rows     AxisSize `json:"rows"`             // Axis owned by the left team.
	Reroll   bool     `json:"reroll"`           // Numbers reassigned every quarter vs. fixed.
	TopTeam  string   `json:"topTeam"`          // Team along the top edge.
	LeftTeam string   `json:"leftTeam"`         // Team along the left edge.
	Payouts  []int    `json:"payouts,omitempty"` // Optional per-quarter payouts, index = quarter.
}

// QuarterDigits is the digit assignment of a single tracked square for
// one quarter.
type QuarterDigits struct {
	TopDigits  DigitGroup `json:"topDigits"`
	LeftDigits DigitGroup `json:"leftDigits"`
}

// MySquare is one square the caller is tracking. Quarters has length 1
// on a fixed-numbers board (the same digits apply all game) and length 4
// on a reroll board (index = quarter).
type MySquare struct {
	Quarters []QuarterDigits `json:"quarters"`
}

// QuarterNumbers is the full axis assignment for one quarter:
// TopNumbers[i] belongs to column i, LeftNumbers[i] to row i.
type QuarterNumbers struct {
	TopNumbers  []DigitGroup `json:"topNumbers"`
	LeftNumbers []DigitGroup `json:"leftNumbers"`
}

// FullBoardData is the fully visible board: axis numbers per quarter
// (length 1 or 4, same rule as MySquare.Quarters), the owner grid
// (Grid[row][col]), and the owner names the caller is tracking
// (compared case-insensitively).
type FullBoardData struct {
	Quarters      []QuarterNumbers `json:"quarters"`
	Grid          [][]string       `json:"grid"`
	MySquareNames []string         `json:"mySquareNames,omitempty"`
}

// Board is one parsed pool. Exactly one of FullBoard and MySquares is
// set: FullBoard != nil for a fully visible board, MySquares != nil
// (possibly empty) for a tracked-squares-only board.
type Board struct {
	Config    BoardConfig    `json:"config"`
	FullBoard *FullBoardData `json:"fullBoard,omitempty"`
	MySquares []MySquare     `json:"mySquares,omitempty"`
}

// IsFullBoard reports whether the board is in full-board mode.
func (b *Board) IsFullBoard() bool { return b.FullBoard != nil }

// Validate checks the structural invariants the engine and serializer
// index by: a known axis size, exactly one board mode, quarter counts
// matching the reroll flag, and axis/grid dimensions. Boards built by
// ParseBoards always pass; boards decoded from JSON may not.
func (b *Board) Validate() error {
	cfg := b.Config
	if cfg.Cols != Axis5 && cfg.Cols != Axis10 {
		return formatErrf("board %q: cols must be 5 or 10, got %d", cfg.Name, cfg.Cols)
	}
	if cfg.Rows != Axis5 && cfg.Rows != Axis10 {
		return formatErrf("board %q: rows must be 5 or 10, got %d", cfg.Name, cfg.Rows)
	}
	if (b.FullBoard == nil) == (b.MySquares == nil) {
		return formatErrf("board %q: exactly one of fullBoard and mySquares must be set", cfg.Name)
	}
	want := groupsPerSide(cfg.Reroll)
	if fb := b.FullBoard; fb != nil {
		if len(fb.Quarters) != want {
			return formatErrf("board %q: %d quarter assignments, want %d", cfg.Name, len(fb.Quarters), want)
		}
		for _, qn := range fb.Quarters {
			if err := validateAxis(qn.TopNumbers, cfg.Cols, cfg.Name); err != nil {
				return err
			}
			if err := validateAxis(qn.LeftNumbers, cfg.Rows, cfg.Name); err != nil {
				return err
			}
		}
		if len(fb.Grid) != int(cfg.Rows) {
			return formatErrf("board %q: grid has %d rows, want %d", cfg.Name, len(fb.Grid), cfg.Rows)
		}
		for r, row := range fb.Grid {
			if len(row) != int(cfg.Cols) {
				return formatErrf("board %q: grid row %d has %d cells, want %d", cfg.Name, r, len(row), cfg.Cols)
			}
		}
		return nil
	}
	for i, sq := range b.MySquares {
		if len(sq.Quarters) != want {
			return formatErrf("board %q: square %d has %d quarter entries, want %d", cfg.Name, i, len(sq.Quarters), want)
		}
		for _, q := range sq.Quarters {
			if err := validateGroup(q.TopDigits, cfg.Cols, cfg.Name); err != nil {
				return err
			}
			if err := validateGroup(q.LeftDigits, cfg.Rows, cfg.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateAxis(groups []DigitGroup, axis AxisSize, boardName string) error {
	if len(groups) != int(axis) {
		return formatErrf("board %q: axis has %d digit groups, want %d", boardName, len(groups), axis)
	}
	for _, g := range groups {
		if err := validateGroup(g, axis, boardName); err != nil {
			return err
		}
	}
	return nil
}

func validateGroup(g DigitGroup, axis AxisSize, boardName string) error {
	if len(g) != axisGroupLen(axis) {
		return formatErrf("board %q: digit group %v has %d digits, want %d", boardName, g, len(g), axisGroupLen(axis))
	}
	for _, d := range g {
		if d < 0 || d > 9 {
			return formatErrf("board %q: %d is not a digit", boardName, d)
		}
	}
	if len(g) == 2 && g[0] == g[1] {
		return formatErrf("board %q: digit group %v repeats a digit", boardName, g)
	}
	return nil
}

// Score is a running game score.
type Score struct {
	Top  int `json:"top"`
	Left int `json:"left"`
}

// GameState is the point in the game a check is evaluated at.
type GameState struct {
	Quarter int   `json:"quarter"` // 0..3
	Score   Score `json:"score"`
}

// NearMiss records that one more common scoring play (3 or 7 points)
// by Team would make the square a winner.
type NearMiss struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

// SquareStatus is the check result for a single tracked square.
// A winning square never carries near misses.
type SquareStatus struct {
	IsWinner   bool       `json:"isWinner"`
	NearMisses []NearMiss `json:"nearMisses,omitempty"`
}

// Position addresses a cell of the full-board grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionedNearMiss pairs a near miss with the cell it would pay out at.
type PositionedNearMiss struct {
	Pos Position `json:"pos"`
	NearMiss
}

// FullBoardStatus is the check result for a fully visible board.
// Winner coordinates are -1 on an axis whose numbers do not cover the
// score's trailing digit.
type FullBoardStatus struct {
	Winner     Position             `json:"winner"`
	NearMisses []PositionedNearMiss `json:"nearMisses,omitempty"`
}

// CellStatus is the per-cell view of a full-board check, resolved to
// the owner written in the grid.
type CellStatus struct {
	Owner      string     `json:"owner"`
	IsWinner   bool       `json:"isWinner"`
	IsMine     bool       `json:"isMine"`
	NearMisses []NearMiss `json:"nearMisses,omitempty"`
}
