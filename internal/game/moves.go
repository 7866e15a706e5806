package game

import "errors"

// ErrUnknownPiece is returned when a move names a piece type outside the
// six known kinds.
var ErrUnknownPiece = errors.New("tipo de pieza no válido")

// Coord is a 0-based (column, row) pair on the 8x8 grid.
type Coord struct {
	X int
	Y int
}

// LegalTargets returns every square the given piece type could reach from
// (x, y) by pure geometry. Generation is deliberately occupancy-blind:
// sliding pieces run to the board edge regardless of blockers and pawns
// always offer both the one- and two-square advance. Board-aware filtering
// is the client's job in this system; do not add blocking here.
func LegalTargets(tipo PieceType, x, y int, color Color) ([]Coord, error) {
	switch tipo {
	case Knight:
		return knightTargets(x, y), nil
	case Bishop:
		return rayTargets(x, y, diagonalDirs), nil
	case Rook:
		return rayTargets(x, y, orthogonalDirs), nil
	case Queen:
		return rayTargets(x, y, append(append([]Coord{}, diagonalDirs...), orthogonalDirs...)), nil
	case King:
		return kingTargets(x, y), nil
	case Pawn:
		return pawnTargets(x, y, color), nil
	}
	return nil, ErrUnknownPiece
}

// Reaches reports whether (tx, ty) is among the piece's geometric targets.
func Reaches(tipo PieceType, x, y, tx, ty int, color Color) (bool, error) {
	targets, err := LegalTargets(tipo, x, y, color)
	if err != nil {
		return false, err
	}
	for _, t := range targets {
		if t.X == tx && t.Y == ty {
			return true, nil
		}
	}
	return false, nil
}

var (
	knightOffsets = []Coord{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = []Coord{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
	diagonalDirs   = []Coord{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonalDirs = []Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func inBounds(x, y int) bool { return x >= 0 && x < 8 && y >= 0 && y < 8 }

func knightTargets(x, y int) []Coord {
	out := make([]Coord, 0, 8)
	for _, o := range knightOffsets {
		if inBounds(x+o.X, y+o.Y) {
			out = append(out, Coord{x + o.X, y + o.Y})
		}
	}
	return out
}

func kingTargets(x, y int) []Coord {
	out := make([]Coord, 0, 8)
	for _, o := range kingOffsets {
		if inBounds(x+o.X, y+o.Y) {
			out = append(out, Coord{x + o.X, y + o.Y})
		}
	}
	return out
}

func rayTargets(x, y int, dirs []Coord) []Coord {
	var out []Coord
	for _, d := range dirs {
		cx, cy := x+d.X, y+d.Y
		for inBounds(cx, cy) {
			out = append(out, Coord{cx, cy})
			cx += d.X
			cy += d.Y
		}
	}
	return out
}

// pawnTargets offers the forward single and double advance for the pawn's
// color. White moves toward decreasing row index (up the rendered board),
// black toward increasing. The double step is offered from any rank.
func pawnTargets(x, y int, color Color) []Coord {
	dir := -1
	if color == Black {
		dir = 1
	}
	out := make([]Coord, 0, 2)
	for _, dy := range []int{dir, 2 * dir} {
		if inBounds(x, y+dy) {
			out = append(out, Coord{x, y + dy})
		}
	}
	return out
}
