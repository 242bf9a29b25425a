// internal/samples/samples.go
//
// Ships a small demo pool in the text grammar so both front ends can
// start without any input.
//
// Initialization behavior (Init):
//   1. If SAMPLE_POOL_FILE is set, load the pool text from that file.
//   2. Otherwise fall back to the embedded default_pool.txt.
// The loaded text is validated through the parser once; a file that
// does not parse is an Init error. Initialization runs once (sync.Once).

package samples

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/nicolekc/super-bowl-squares/internal/squares"
)

//go:embed default_pool.txt
var embeddedPool string

var (
	initOnce   sync.Once
	poolText   string
	initialErr error
)

// Init loads and validates the sample pool exactly once.
func Init() error {
	initOnce.Do(func() {
		text := embeddedPool
		if path := os.Getenv("SAMPLE_POOL_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("read sample pool: %w", err)
				return
			}
			text = string(b)
		}
		if _, err := squares.ParseBoards(text); err != nil {
			initialErr = fmt.Errorf("sample pool does not parse: %w", err)
			return
		}
		poolText = text
	})
	return initialErr
}

// Text returns the sample pool text. Init must have succeeded.
func Text() string {
	_ = Init()
	return poolText
}

// Boards returns the parsed sample boards.
func Boards() ([]squares.Board, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return squares.ParseBoards(poolText)
}
