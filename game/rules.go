package game

import (
	"fmt"

	"github.com/domino14/gomoku/config"
)

// Rules are the dimensions of the grid and the run length that wins.
type Rules struct {
	Cols      int
	Rows      int
	WinLength int
}

func DefaultRules() Rules {
	return Rules{
		Cols:      config.DefaultCols,
		Rows:      config.DefaultRows,
		WinLength: config.DefaultWinLength,
	}
}

// NewRules reads the board settings out of cfg.
func NewRules(cfg *config.Config) (Rules, error) {
	r := Rules{
		Cols:      cfg.GetInt(config.ConfigCols),
		Rows:      cfg.GetInt(config.ConfigRows),
		WinLength: cfg.GetInt(config.ConfigWinLength),
	}
	return r, r.Validate()
}

func (r Rules) Validate() error {
	if r.Cols < 1 || r.Rows < 1 || r.WinLength < 1 {
		return fmt.Errorf("%w: %dx%d board, win length %d", ErrBadRules, r.Cols, r.Rows, r.WinLength)
	}
	return nil
}

func (r Rules) String() string {
	return fmt.Sprintf("%dx%d, %d in a row", r.Cols, r.Rows, r.WinLength)
}
