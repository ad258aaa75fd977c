package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrBadCoords = errors.New("could not parse coordinates")
)

// Move places Mark at (Col, Row). Columns and rows are zero-based.
type Move struct {
	Col  int
	Row  int
	Mark Mark
}

func New(col, row int, mark Mark) Move {
	return Move{Col: col, Row: row, Mark: mark}
}

// SameCell returns true if both moves target the same cell, regardless of mark.
func (m Move) SameCell(o Move) bool {
	return m.Col == o.Col && m.Row == o.Row
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", ToBoardGameCoords(m.Col, m.Row), m.Mark)
}

var reLettered, reNumeric *regexp.Regexp

func init() {
	reLettered = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
	reNumeric = regexp.MustCompile(`^(?P<col>[0-9]+)\s*[,\s]\s*(?P<row>[0-9]+)$`)
}

// ToBoardGameCoords renders a cell the way a player reads it off the board:
// column letter and one-based row, e.g. H8. Grids wider than 26 columns
// fall back to a numeric "col,row" pair.
func ToBoardGameCoords(col, row int) string {
	if col < 0 || col >= 26 {
		return strconv.Itoa(col) + "," + strconv.Itoa(row)
	}
	return string(rune('A'+col)) + strconv.Itoa(row+1)
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords above.
// It also accepts a zero-based "col,row" or "col row" pair.
func FromBoardGameCoords(c string) (int, int, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if m := reLettered.FindStringSubmatch(c); len(m) == 3 {
		row, err := strconv.Atoi(m[2])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
		}
		return int(m[1][0] - 'A'), row - 1, nil
	}
	if m := reNumeric.FindStringSubmatch(c); len(m) == 3 {
		col, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
		}
		row, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
		}
		return col, row, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
}
