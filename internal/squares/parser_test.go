package squares_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nicolekc/super-bowl-squares/internal/squares"
)

const mySquaresText = `# office pool, two tracked squares
Vegas Trip $50 10x10
Chiefs vs Eagles
Payouts 100 100 100 200
Chiefs 4, Eagles 7
Chiefs 0, Eagles 0
`

const fullBoardText = `Family Board 5x5 full
Chiefs (top) vs Eagles (left)
Top 03 19 28 46 57
Left 65 12 39 47 80
Nana, Uncle Rob, Dad, Mom, Kim
Dad, Kim, Nana, Uncle Rob, Mom
Mom, Dad, Kim, Nana, Uncle Rob
Uncle Rob, Mom, Dad, Kim, Nana
Kim, Nana, Uncle Rob, Mom, Dad
Mine Kim, Dad
`

func mustParseOne(t *testing.T, text string) squares.Board {
	t.Helper()
	boards, err := squares.ParseBoards(text)
	if err != nil {
		t.Fatalf("ParseBoards failed: %v", err)
	}
	if len(boards) != 1 {
		t.Fatalf("got %d boards, want 1", len(boards))
	}
	return boards[0]
}

func TestParseMySquaresBoard(t *testing.T) {
	b := mustParseOne(t, mySquaresText)

	cfg := b.Config
	if cfg.Name != "Vegas Trip" {
		t.Errorf("name = %q, want %q", cfg.Name, "Vegas Trip")
	}
	if cfg.BuyIn == nil || *cfg.BuyIn != 50 {
		t.Errorf("buy-in = %v, want 50", cfg.BuyIn)
	}
	if cfg.Cols != squares.Axis10 || cfg.Rows != squares.Axis10 {
		t.Errorf("size = %dx%d, want 10x10", cfg.Cols, cfg.Rows)
	}
	if cfg.Reroll {
		t.Error("reroll = true, want false")
	}
	if cfg.TopTeam != "Chiefs" || cfg.LeftTeam != "Eagles" {
		t.Errorf("teams = %q/%q, want Chiefs/Eagles", cfg.TopTeam, cfg.LeftTeam)
	}
	if !reflect.DeepEqual(cfg.Payouts, []int{100, 100, 100, 200}) {
		t.Errorf("payouts = %v", cfg.Payouts)
	}
	if b.FullBoard != nil {
		t.Fatal("board parsed as full board, want my-squares")
	}
	if len(b.MySquares) != 2 {
		t.Fatalf("got %d squares, want 2", len(b.MySquares))
	}
	sq := b.MySquares[0]
	if len(sq.Quarters) != 1 {
		t.Fatalf("non-reroll square has %d quarter entries, want 1", len(sq.Quarters))
	}
	want := squares.QuarterDigits{
		TopDigits:  squares.DigitGroup{4},
		LeftDigits: squares.DigitGroup{7},
	}
	if !reflect.DeepEqual(sq.Quarters[0], want) {
		t.Errorf("square digits = %+v, want %+v", sq.Quarters[0], want)
	}
}

func TestParseFullBoard(t *testing.T) {
	b := mustParseOne(t, fullBoardText)

	if b.FullBoard == nil {
		t.Fatal("board parsed as my-squares, want full board")
	}
	fb := b.FullBoard
	if len(fb.Quarters) != 1 {
		t.Fatalf("non-reroll board has %d quarter entries, want 1", len(fb.Quarters))
	}
	qn := fb.Quarters[0]
	if len(qn.TopNumbers) != 5 || len(qn.LeftNumbers) != 5 {
		t.Fatalf("axis lengths = %d/%d, want 5/5", len(qn.TopNumbers), len(qn.LeftNumbers))
	}
	if !reflect.DeepEqual(qn.TopNumbers[0], squares.DigitGroup{0, 3}) {
		t.Errorf("top[0] = %v, want [0 3]", qn.TopNumbers[0])
	}
	if len(fb.Grid) != 5 {
		t.Fatalf("grid has %d rows, want 5", len(fb.Grid))
	}
	for r, row := range fb.Grid {
		if len(row) != 5 {
			t.Fatalf("grid row %d has %d cells, want 5", r, len(row))
		}
	}
	if fb.Grid[0][1] != "Uncle Rob" {
		t.Errorf("grid[0][1] = %q, want %q", fb.Grid[0][1], "Uncle Rob")
	}
	if !reflect.DeepEqual(fb.MySquareNames, []string{"Kim", "Dad"}) {
		t.Errorf("mine = %v", fb.MySquareNames)
	}
}

func TestParseRerollFullBoard(t *testing.T) {
	text := `Rolling 5x5 reroll full
Chiefs (top) vs Eagles (left)
Q1 Top 03 19 28 46 57, Left 65 12 39 47 80
Q2 Top 12 39 47 80 65, Left 03 19 28 46 57
Q3 Top 28 46 57 03 19, Left 47 80 65 12 39
Q4 Top 46 57 03 19 28, Left 80 65 12 39 47
A, B, C, D, E
B, C, D, E, A
C, D, E, A, B
D, E, A, B, C
E, A, B, C, D
`
	b := mustParseOne(t, text)
	if !b.Config.Reroll {
		t.Fatal("reroll flag not detected")
	}
	if b.FullBoard == nil || len(b.FullBoard.Quarters) != 4 {
		t.Fatalf("reroll board must carry 4 quarter assignments")
	}
	if !reflect.DeepEqual(b.FullBoard.Quarters[1].TopNumbers[0], squares.DigitGroup{1, 2}) {
		t.Errorf("Q2 top[0] = %v, want [1 2]", b.FullBoard.Quarters[1].TopNumbers[0])
	}
	if b.FullBoard.MySquareNames != nil {
		t.Errorf("mine should be empty without a Mine line, got %v", b.FullBoard.MySquareNames)
	}
}

func TestParseRerollMySquares(t *testing.T) {
	text := `10x10 reroll
Chiefs vs Eagles
Chiefs 7 3 2 1, Eagles 4 5 6 0
`
	b := mustParseOne(t, text)
	if b.Config.Name != "Board" {
		t.Errorf("empty name should default to Board, got %q", b.Config.Name)
	}
	if len(b.MySquares) != 1 || len(b.MySquares[0].Quarters) != 4 {
		t.Fatalf("reroll square must carry 4 quarter entries")
	}
	q2 := b.MySquares[0].Quarters[2]
	if !reflect.DeepEqual(q2.TopDigits, squares.DigitGroup{2}) ||
		!reflect.DeepEqual(q2.LeftDigits, squares.DigitGroup{6}) {
		t.Errorf("quarter 2 digits = %+v", q2)
	}
}

func TestParseAnnotationOverridesOrder(t *testing.T) {
	text := `Board 10x10
Eagles (left) vs Chiefs
Chiefs 4, Eagles 7
`
	b := mustParseOne(t, text)
	if b.Config.TopTeam != "Chiefs" || b.Config.LeftTeam != "Eagles" {
		t.Errorf("annotation must win over position: top=%q left=%q",
			b.Config.TopTeam, b.Config.LeftTeam)
	}
}

func TestParseSquaresShorthand(t *testing.T) {
	tests := []struct {
		header string
		cols   squares.AxisSize
		rows   squares.AxisSize
	}{
		{"Pool 25 squares", squares.Axis5, squares.Axis5},
		{"Pool 50 squares", squares.Axis5, squares.Axis10},
		{"Pool 100 squares", squares.Axis10, squares.Axis10},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			b := mustParseOne(t, tt.header+"\nA vs B\n")
			if b.Config.Cols != tt.cols || b.Config.Rows != tt.rows {
				t.Errorf("size = %dx%d, want %dx%d",
					b.Config.Cols, b.Config.Rows, tt.cols, tt.rows)
			}
			if b.Config.Name != "Pool" {
				t.Errorf("name = %q, want Pool", b.Config.Name)
			}
		})
	}
}

func TestParseMultipleBoards(t *testing.T) {
	text := mySquaresText + "\n---\n\n" + fullBoardText
	boards, err := squares.ParseBoards(text)
	if err != nil {
		t.Fatalf("ParseBoards failed: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards, want 2", len(boards))
	}
	if boards[0].FullBoard != nil || boards[1].FullBoard == nil {
		t.Error("board modes did not survive the split")
	}
}

// The separator is honored wherever it sits on its own line; blank
// lines around it are conventional, not required.
func TestParseSeparatorWithoutBlankLines(t *testing.T) {
	text := strings.TrimRight(mySquaresText, "\n") + "\n---\n" + fullBoardText
	boards, err := squares.ParseBoards(text)
	if err != nil {
		t.Fatalf("ParseBoards failed: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards, want 2", len(boards))
	}
	if boards[1].FullBoard == nil {
		t.Error("second board did not survive the split")
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing vs", "Board 10x10\nChiefs and Eagles\nChiefs 4, Eagles 7\n"},
		{"two groups on non-reroll board", "Board 10x10\nChiefs vs Eagles\nChiefs 4 2, Eagles 7 1\n"},
		{"three groups on reroll board", "Board 10x10 reroll\nChiefs vs Eagles\nChiefs 4 2 1, Eagles 7 1 0 3\n"},
		{"square line without comma", "Board 10x10\nChiefs vs Eagles\nChiefs 4 Eagles 7\n"},
		{"bad digit token", "Board 10x10\nChiefs vs Eagles\nChiefs x, Eagles 7\n"},
		{"one digit on a five axis", "Board 5x5\nChiefs vs Eagles\nChiefs 4, Eagles 71\n"},
		{"repeated digit in a five-axis group", "Board 5x5\nChiefs vs Eagles\nChiefs 33, Eagles 71\n"},
		{"grid row too short", "Board 5x5 full\nA (top) vs B (left)\nTop 03 19 28 46 57\nLeft 65 12 39 47 80\na, b, c\na, b, c, d, e\na, b, c, d, e\na, b, c, d, e\na, b, c, d, e\n"},
		{"too few grid rows", "Board 5x5 full\nA (top) vs B (left)\nTop 03 19 28 46 57\nLeft 65 12 39 47 80\na, b, c, d, e\n"},
		{"wrong top count", "Board 5x5 full\nA (top) vs B (left)\nTop 03 19 28 46\nLeft 65 12 39 47 80\na, b, c, d, e\na, b, c, d, e\na, b, c, d, e\na, b, c, d, e\na, b, c, d, e\n"},
		{"payout with non-integer", "Board 10x10\nA vs B\nPayouts 100 ten 100 100\nA 4, B 7\n"},
		{"empty input", "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := squares.ParseBoards(tt.text)
			if err == nil {
				t.Fatal("parse succeeded, want FormatError")
			}
			var fe *squares.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a FormatError", err)
			}
			if fe.Msg == "" {
				t.Error("FormatError carries no message")
			}
		})
	}
}

func TestParseTeamSplitPrefersLeftTeamName(t *testing.T) {
	// The first comma sits inside the top clause; the split must land
	// on the comma that precedes the registered left-team name.
	text := `Board 10x10
Tampa Bay, FL vs Eagles
Tampa Bay, FL 4, Eagles 7
`
	b := mustParseOne(t, text)
	if len(b.MySquares) != 1 {
		t.Fatalf("got %d squares, want 1", len(b.MySquares))
	}
	q := b.MySquares[0].Quarters[0]
	if !reflect.DeepEqual(q.TopDigits, squares.DigitGroup{4}) ||
		!reflect.DeepEqual(q.LeftDigits, squares.DigitGroup{7}) {
		t.Errorf("digits = %+v", q)
	}
}

func TestParseIgnoresCommentsAndBlankLines(t *testing.T) {
	text := "# a comment\n\n" + strings.ReplaceAll(mySquaresText, "Payouts", "# gone\nPayouts")
	b := mustParseOne(t, text)
	if len(b.MySquares) != 2 {
		t.Errorf("got %d squares, want 2", len(b.MySquares))
	}
}
