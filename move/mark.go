package move

// Mark is what occupies a cell of the grid.
type Mark uint8

const (
	Empty Mark = iota
	// MarkA moves first. Its potentials count positively towards the board
	// score, so it is the maximizing side.
	MarkA
	// MarkB moves second; its potentials count negatively.
	MarkB
)

func (m Mark) String() string {
	switch m {
	case MarkA:
		return "O"
	case MarkB:
		return "X"
	}
	return "."
}

// Opponent returns the other player's mark. The opponent of Empty is Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	}
	return Empty
}

// Sign is +1 for MarkA and -1 for MarkB. It converts a MarkA-perspective
// score into the perspective of m.
func (m Mark) Sign() float64 {
	if m == MarkB {
		return -1
	}
	return 1
}

// MarkFromString parses "O"/"A" or "X"/"B" (case-insensitive).
func MarkFromString(s string) (Mark, bool) {
	switch s {
	case "O", "o", "A", "a":
		return MarkA, true
	case "X", "x", "B", "b":
		return MarkB, true
	}
	return Empty, false
}
