// internal/squares/parser.go
//
// Text-format parser for squares pools.
// Grammar (per block; blocks separated by a lone "---" line):
//   header line:  free-form name with embedded, order-independent tokens
//                 $<buyIn>, <5|10>x<5|10> (or <25|50|100> squares),
//                 reroll/re-roll, full
//   teams line:   <Team1> [(top|left)] vs[.] <Team2> [(top|left)]
//   payouts line: payout[s] <int>... (optional)
//   body:         either one my-squares line per tracked square, or a
//                 full-board block (axis number lines, grid rows, and an
//                 optional "Mine ..." trailer)
// Blank lines and lines starting with '#' are ignored everywhere.
//
// Parsing either fully succeeds or fails with a *FormatError; no
// partial boards are ever returned.

package squares

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	separatorRe = regexp.MustCompile(`^\s*---\s*$`)
	buyInRe     = regexp.MustCompile(`\$(\d+)`)
	sizeRe      = regexp.MustCompile(`(?i)\b(5|10)\s*x\s*(5|10)\b`)
	shorthandRe = regexp.MustCompile(`(?i)\b(25|50|100)\s+squares\b`)
	rerollRe    = regexp.MustCompile(`(?i)\bre[- ]?roll\b`)
	fullRe      = regexp.MustCompile(`(?i)\bfull\b`)
	teamsRe     = regexp.MustCompile(`(?i)^(.+?)\s+vs\.?\s+(.+)$`)
	annotRe     = regexp.MustCompile(`(?i)\((top|left)\)`)
	payoutsRe   = regexp.MustCompile(`(?i)^payouts?\b`)
	topLineRe   = regexp.MustCompile(`(?i)^top\s`)
	quarterRe   = regexp.MustCompile(`(?i)^q[1-4]\s+`)
	mineRe      = regexp.MustCompile(`(?i)^mine\b\s*`)
	spacesRe    = regexp.MustCompile(`\s+`)
)

// ParseBoards parses one or more boards from text. Blocks are split on
// lone "---" lines; each block is parsed independently and the first
// failure aborts the whole batch.
func ParseBoards(text string) ([]Board, error) {
	var blocks [][]string
	cur := []string{}
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = []string{}
		}
	}
	for _, raw := range strings.Split(text, "\n") {
		if separatorRe.MatchString(raw) {
			flush()
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cur = append(cur, line)
	}
	flush()

	if len(blocks) == 0 {
		return nil, formatErrf("no board found in input")
	}
	boards := make([]Board, 0, len(blocks))
	for _, block := range blocks {
		b, err := parseSingleBoard(block)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// parseSingleBoard parses one pre-cleaned block (no blanks, no
// comments, lines trimmed).
func parseSingleBoard(lines []string) (Board, error) {
	cfg, err := parseHeader(lines[0])
	if err != nil {
		return Board{}, err
	}
	if len(lines) < 2 {
		return Board{}, formatErrf("board %q is missing a teams line", cfg.Name)
	}
	if err := parseTeams(lines[1], &cfg); err != nil {
		return Board{}, err
	}
	body := lines[2:]
	if len(body) > 0 && payoutsRe.MatchString(body[0]) {
		payouts, err := parsePayouts(body[0])
		if err != nil {
			return Board{}, err
		}
		cfg.Payouts = payouts
		body = body[1:]
	}

	b := Board{Config: cfg}
	// The "full" header keyword is informational; actual mode comes
	// from what the body looks like.
	if len(body) > 0 && (topLineRe.MatchString(body[0]) || quarterRe.MatchString(body[0])) {
		fb, err := parseFullBoard(body, cfg)
		if err != nil {
			return Board{}, err
		}
		b.FullBoard = fb
	} else {
		sqs, err := parseMySquares(body, cfg)
		if err != nil {
			return Board{}, err
		}
		b.MySquares = sqs
	}
	return b, nil
}

// takeFirst removes the first match of re from s, returning the
// submatch groups and the remainder.
func takeFirst(re *regexp.Regexp, s string) (groups []string, rest string) {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil, s
	}
	for i := 0; i < len(loc)/2; i++ {
		if loc[2*i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, s[loc[2*i]:loc[2*i+1]])
	}
	return groups, s[:loc[0]] + " " + s[loc[1]:]
}

// compact collapses runs of whitespace and trims.
func compact(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// parseHeader extracts the order-independent header tokens; whatever
// text is left over becomes the board name.
func parseHeader(line string) (BoardConfig, error) {
	cfg := BoardConfig{Cols: Axis10, Rows: Axis10}
	rest := line

	if m, r := takeFirst(buyInRe, rest); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return cfg, formatErrf("bad buy-in in header %q", line)
		}
		cfg.BuyIn = &n
		rest = r
	}

	if m, r := takeFirst(sizeRe, rest); m != nil {
		c, _ := strconv.Atoi(m[1])
		rows, _ := strconv.Atoi(m[2])
		cfg.Cols, cfg.Rows = AxisSize(c), AxisSize(rows)
		rest = r
	} else if m, r := takeFirst(shorthandRe, rest); m != nil {
		switch m[1] {
		case "25":
			cfg.Cols, cfg.Rows = Axis5, Axis5
		case "50":
			cfg.Cols, cfg.Rows = Axis5, Axis10
		default: // 100
			cfg.Cols, cfg.Rows = Axis10, Axis10
		}
		rest = r
	}

	if m, r := takeFirst(rerollRe, rest); m != nil {
		cfg.Reroll = true
		rest = r
	}
	if m, r := takeFirst(fullRe, rest); m != nil {
		rest = r // presence only; mode is inferred from the body
	}

	cfg.Name = compact(rest)
	if cfg.Name == "" {
		cfg.Name = "Board"
	}
	return cfg, nil
}

// parseTeams fills TopTeam/LeftTeam from a "<Team1> vs <Team2>" line.
// A (top)/(left) annotation on either side wins over positional order;
// without annotations Team1 is the top team.
func parseTeams(line string, cfg *BoardConfig) error {
	m := teamsRe.FindStringSubmatch(line)
	if m == nil {
		return formatErrf("teams line %q must look like \"Team1 vs Team2\"", line)
	}
	team1, annot1 := stripAnnotation(m[1])
	team2, annot2 := stripAnnotation(m[2])
	if team1 == "" || team2 == "" {
		return formatErrf("teams line %q has an empty team name", line)
	}
	top, left := team1, team2
	if annot1 == "left" || annot2 == "top" {
		top, left = team2, team1
	}
	cfg.TopTeam, cfg.LeftTeam = top, left
	return nil
}

// stripAnnotation removes a "(top)"/"(left)" marker from a team name
// and reports which one was present ("" if none).
func stripAnnotation(side string) (name, annot string) {
	if m, rest := takeFirst(annotRe, side); m != nil {
		return compact(rest), strings.ToLower(m[1])
	}
	return compact(side), ""
}

// parsePayouts reads the whitespace-separated amounts after the
// payout[s] keyword.
func parsePayouts(line string) ([]int, error) {
	rest := payoutsRe.ReplaceAllString(line, "")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, formatErrf("payouts line %q has no amounts", line)
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, formatErrf("payouts line %q: %q is not an integer", line, f)
		}
		out = append(out, n)
	}
	return out, nil
}

// groupsPerSide is the number of digit groups each clause of a
// my-squares line must carry: one for fixed numbers, four (one per
// quarter) on a reroll board.
func groupsPerSide(reroll bool) int {
	if reroll {
		return 4
	}
	return 1
}

// parseMySquares reads one tracked square per body line.
func parseMySquares(body []string, cfg BoardConfig) ([]MySquare, error) {
	want := groupsPerSide(cfg.Reroll)
	squares := make([]MySquare, 0, len(body))
	for _, line := range body {
		topClause, leftClause, err := splitSquareLine(line, cfg.LeftTeam)
		if err != nil {
			return nil, err
		}
		topGroups, err := parseSquareClause(topClause, cfg.TopTeam, cfg.Cols, want, line)
		if err != nil {
			return nil, err
		}
		leftGroups, err := parseSquareClause(leftClause, cfg.LeftTeam, cfg.Rows, want, line)
		if err != nil {
			return nil, err
		}
		sq := MySquare{Quarters: make([]QuarterDigits, want)}
		for q := 0; q < want; q++ {
			sq.Quarters[q] = QuarterDigits{TopDigits: topGroups[q], LeftDigits: leftGroups[q]}
		}
		squares = append(squares, sq)
	}
	return squares, nil
}

// splitSquareLine finds the boundary between the top-team clause and
// the left-team clause: a comma immediately followed by the registered
// left-team name, falling back to the first comma in the line.
func splitSquareLine(line, leftTeam string) (topClause, leftClause string, err error) {
	re := regexp.MustCompile(`(?i),\s*` + regexp.QuoteMeta(leftTeam))
	if loc := re.FindStringIndex(line); loc != nil {
		return line[:loc[0]], line[loc[0]+1:], nil
	}
	if i := strings.Index(line, ","); i >= 0 {
		return line[:i], line[i+1:], nil
	}
	return "", "", formatErrf("square line %q has no top/left boundary comma", line)
}

// parseSquareClause strips the team-name prefix from one clause and
// parses the remaining whitespace-separated digit groups.
func parseSquareClause(clause, team string, axis AxisSize, want int, line string) ([]DigitGroup, error) {
	clause = strings.TrimSpace(clause)
	if len(clause) >= len(team) && strings.EqualFold(clause[:len(team)], team) {
		clause = clause[len(team):]
	}
	tokens := strings.Fields(clause)
	if len(tokens) != want {
		return nil, formatErrf("square line %q: %s side has %d digit groups, want %d",
			line, team, len(tokens), want)
	}
	groups := make([]DigitGroup, 0, want)
	for _, tok := range tokens {
		g, err := parseAxisGroup(tok, axis)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// parseAxisGroup parses a digit token and checks it fits the axis:
// one digit on a 10-slot axis, two distinct digits on a 5-slot axis.
func parseAxisGroup(token string, axis AxisSize) (DigitGroup, error) {
	g, err := ParseDigitGroup(token)
	if err != nil {
		return nil, err
	}
	if len(g) != axisGroupLen(axis) {
		return nil, formatErrf("digit group %q has %d digits, want %d for a %d-slot axis",
			token, len(g), axisGroupLen(axis), axis)
	}
	if len(g) == 2 && g[0] == g[1] {
		return nil, formatErrf("digit group %q repeats a digit", token)
	}
	return g, nil
}

// axisGroupLen is 2 on a 5-slot axis (two digits share each slot) and
// 1 on a 10-slot axis.
func axisGroupLen(axis AxisSize) int {
	if axis == Axis5 {
		return 2
	}
	return 1
}

// parseFullBoard reads the axis-number lines, the owner grid, and the
// optional Mine trailer.
func parseFullBoard(body []string, cfg BoardConfig) (*FullBoardData, error) {
	fb := &FullBoardData{}
	numberLines := 2
	if cfg.Reroll {
		numberLines = 4
	}
	if len(body) < numberLines {
		return nil, formatErrf("full board needs %d number lines, found %d", numberLines, len(body))
	}

	if cfg.Reroll {
		// One "Q<n> Top ..., Left ..." line per quarter. The Q label is
		// not cross-checked against line position; line order alone
		// determines the quarter index.
		fb.Quarters = make([]QuarterNumbers, 4)
		for q := 0; q < 4; q++ {
			line := body[q]
			if !quarterRe.MatchString(line) {
				return nil, formatErrf("expected a Q1-Q4 numbers line, got %q", line)
			}
			rest := quarterRe.ReplaceAllString(line, "")
			i := strings.Index(rest, ",")
			if i < 0 {
				return nil, formatErrf("numbers line %q is missing the Top/Left comma", line)
			}
			top, err := parseNumberLine(rest[:i], cfg.Cols)
			if err != nil {
				return nil, err
			}
			left, err := parseNumberLine(rest[i+1:], cfg.Rows)
			if err != nil {
				return nil, err
			}
			fb.Quarters[q] = QuarterNumbers{TopNumbers: top, LeftNumbers: left}
		}
	} else {
		top, err := parseNumberLine(body[0], cfg.Cols)
		if err != nil {
			return nil, err
		}
		left, err := parseNumberLine(body[1], cfg.Rows)
		if err != nil {
			return nil, err
		}
		fb.Quarters = []QuarterNumbers{{TopNumbers: top, LeftNumbers: left}}
	}

	rows := int(cfg.Rows)
	gridLines := body[numberLines:]
	if len(gridLines) < rows {
		return nil, formatErrf("full board needs %d grid rows, found %d", rows, len(gridLines))
	}
	fb.Grid = make([][]string, rows)
	for r := 0; r < rows; r++ {
		row, err := parseGridRow(gridLines[r], int(cfg.Cols))
		if err != nil {
			return nil, err
		}
		fb.Grid[r] = row
	}

	trailer := gridLines[rows:]
	if len(trailer) > 0 {
		if !mineRe.MatchString(trailer[0]) {
			return nil, formatErrf("unexpected line after grid: %q", trailer[0])
		}
		fb.MySquareNames = splitNames(mineRe.ReplaceAllString(trailer[0], ""))
		trailer = trailer[1:]
	}
	if len(trailer) > 0 {
		return nil, formatErrf("unexpected line after board: %q", trailer[0])
	}
	return fb, nil
}

// parseNumberLine parses one axis-number line. Anything before the
// first digit (a Top/Left label, an optional team name) is stripped;
// the remainder must split into exactly one digit group per axis slot.
func parseNumberLine(line string, axis AxisSize) ([]DigitGroup, error) {
	start := strings.IndexFunc(line, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return nil, formatErrf("numbers line %q has no digits", line)
	}
	n := int(axis)
	tokens := strings.Fields(line[start:])
	if len(tokens) != n {
		return nil, formatErrf("numbers line %q has %d digit groups, want %d", line, len(tokens), n)
	}
	groups := make([]DigitGroup, 0, n)
	for _, tok := range tokens {
		g, err := parseAxisGroup(tok, axis)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// parseGridRow splits one grid line into exactly cols owner names,
// preferring commas and falling back to whitespace.
func parseGridRow(line string, cols int) ([]string, error) {
	names := splitNames(line)
	if len(names) != cols {
		names = strings.Fields(line)
	}
	if len(names) != cols {
		return nil, formatErrf("grid row %q has %d names, want %d", line, len(names), cols)
	}
	return names, nil
}

// splitNames splits a comma-separated name list, trimming each entry
// and dropping empties.
func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
