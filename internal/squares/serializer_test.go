package squares_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nicolekc/super-bowl-squares/internal/squares"
)

// Round-trip law: parse -> serialize -> parse must reproduce the same
// semantic content for every board the parser can produce.
func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"my squares", mySquaresText},
		{"full board", fullBoardText},
		{"reroll my squares", "Rollers $25 10x10 reroll\nChiefs vs Eagles\nChiefs 7 3 2 1, Eagles 4 5 6 0\n"},
		{"reroll full board", `Rolling 5x5 reroll full
Chiefs (top) vs Eagles (left)
Payouts 50 50 50 150
Q1 Top 03 19 28 46 57, Left 65 12 39 47 80
Q2 Top 12 39 47 80 65, Left 03 19 28 46 57
Q3 Top 28 46 57 03 19, Left 47 80 65 12 39
Q4 Top 46 57 03 19 28, Left 80 65 12 39 47
A, B, C, D, E
B, C, D, E, A
C, D, E, A, B
D, E, A, B, C
E, A, B, C, D
Mine A, C
`},
		{"mixed axes 5x10", "Half $10 5x10\nChiefs vs Eagles\nChiefs 46, Eagles 7\n"},
		{"no squares yet", "Waiting 10x10\nChiefs vs Eagles\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := squares.ParseBoards(tt.text)
			if err != nil {
				t.Fatalf("first parse failed: %v", err)
			}
			out := squares.SerializeBoards(first)
			second, err := squares.ParseBoards(out)
			if err != nil {
				t.Fatalf("reparse failed: %v\nserialized:\n%s", err, out)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed data\nfirst:  %+v\nsecond: %+v\nserialized:\n%s",
					first, second, out)
			}
		})
	}
}

func TestSerializeMultipleBoards(t *testing.T) {
	first, err := squares.ParseBoards(mySquaresText + "\n---\n\n" + fullBoardText)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out := squares.SerializeBoards(first)
	if !strings.Contains(out, "\n---\n") {
		t.Fatalf("serialized output is missing the board separator:\n%s", out)
	}
	second, err := squares.ParseBoards(out)
	if err != nil {
		t.Fatalf("reparse failed: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("multi-board round trip changed data\nserialized:\n%s", out)
	}
}

func TestSerializeHeaderContent(t *testing.T) {
	b := mustParseOne(t, fullBoardText)
	out := squares.SerializeBoard(&b)
	header := strings.SplitN(out, "\n", 2)[0]
	for _, want := range []string{"Family Board", "5x5", "full"} {
		if !strings.Contains(header, want) {
			t.Errorf("header %q is missing %q", header, want)
		}
	}
	if strings.Contains(header, "reroll") {
		t.Errorf("header %q claims reroll on a fixed board", header)
	}
	if !strings.Contains(out, "(top)") || !strings.Contains(out, "(left)") {
		t.Error("full-board teams line must carry axis annotations")
	}
}
