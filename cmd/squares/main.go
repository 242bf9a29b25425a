package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nicolekc/super-bowl-squares/internal/samples"
	"github.com/nicolekc/super-bowl-squares/internal/squares"
)

// Terminal front end: load a pool (pasted text, a file, or the
// embedded sample), then a prompt loop that re-checks the boards on
// every score update. All parsing and scoring goes through the core.
func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Sq", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("uares", pterm.FgDarkGray.ToStyle()),
	).Render()

	boards, err := loadBoards()
	if err != nil {
		pterm.Error.Printfln("could not load a pool: %v", err)
		os.Exit(1)
	}
	pterm.Success.Printfln("Loaded %d board(s)", len(boards))

	state := squares.GameState{}
	renderAll(boards, state)

	for {
		line, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("score <top> <left> | q <1-4> | show | text | save <path> | quit").
			Show()
		pterm.Println()
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return
		case "show":
			renderAll(boards, state)
		case "text":
			pterm.Println(squares.SerializeBoards(boards))
		case "save":
			if len(fields) != 2 {
				pterm.Warning.Println("usage: save <path>")
				continue
			}
			if err := os.WriteFile(fields[1], []byte(squares.SerializeBoards(boards)), 0o644); err != nil {
				pterm.Error.Printfln("save failed: %v", err)
				continue
			}
			pterm.Success.Printfln("saved to %s", fields[1])
		case "q", "quarter":
			if len(fields) != 2 {
				pterm.Warning.Println("usage: q <1-4>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > 4 {
				pterm.Warning.Println("quarter must be 1-4")
				continue
			}
			state.Quarter = n - 1
			renderAll(boards, state)
		case "score":
			if len(fields) != 3 {
				pterm.Warning.Println("usage: score <top> <left>")
				continue
			}
			top, err1 := strconv.Atoi(fields[1])
			left, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil || top < 0 || left < 0 {
				pterm.Warning.Println("scores must be non-negative integers")
				continue
			}
			state.Score = squares.Score{Top: top, Left: left}
			renderAll(boards, state)
		default:
			pterm.Warning.Printfln("unknown command %q", fields[0])
		}
	}
}

// loadBoards picks the pool source: a file path argument, pasted
// text, or the embedded sample.
func loadBoards() ([]squares.Board, error) {
	if len(os.Args) == 2 {
		b, err := os.ReadFile(os.Args[1])
		if err != nil {
			return nil, err
		}
		return squares.ParseBoards(string(b))
	}

	choice, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Press enter to paste a pool, or type 'sample' for the demo pool").
		Show()
	pterm.Println()
	if strings.EqualFold(strings.TrimSpace(choice), "sample") {
		boards, err := samples.Boards()
		if err != nil {
			log.Error().Err(err).Msg("sample pool unavailable")
			return nil, err
		}
		return boards, nil
	}

	pterm.Info.Println("Paste your pool text. Finish with a single '.' on its own line.")
	var sb strings.Builder
	for {
		line, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("").Show()
		if strings.TrimSpace(line) == "." {
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	boards, err := squares.ParseBoards(sb.String())
	if err != nil {
		return nil, fmt.Errorf("that text did not parse: %w", err)
	}
	return boards, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
