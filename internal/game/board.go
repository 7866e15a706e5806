package game

// Square is one board cell as sent to the client: algebraic position, the
// display color of the cell itself, and the occupying piece if any.
type Square struct {
	Pos   string `json:"pos"`
	Color string `json:"color"`
	Pieza *Piece `json:"pieza"`
}

var files = [8]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}

// startingPieces maps algebraic coordinates to the standard opening layout.
var startingPieces = map[string]Piece{
	"a8": {Rook, Black}, "b8": {Knight, Black}, "c8": {Bishop, Black}, "d8": {Queen, Black},
	"e8": {King, Black}, "f8": {Bishop, Black}, "g8": {Knight, Black}, "h8": {Rook, Black},
	"a7": {Pawn, Black}, "b7": {Pawn, Black}, "c7": {Pawn, Black}, "d7": {Pawn, Black},
	"e7": {Pawn, Black}, "f7": {Pawn, Black}, "g7": {Pawn, Black}, "h7": {Pawn, Black},
	"a2": {Pawn, White}, "b2": {Pawn, White}, "c2": {Pawn, White}, "d2": {Pawn, White},
	"e2": {Pawn, White}, "f2": {Pawn, White}, "g2": {Pawn, White}, "h2": {Pawn, White},
	"a1": {Rook, White}, "b1": {Knight, White}, "c1": {Bishop, White}, "d1": {Queen, White},
	"e1": {King, White}, "f1": {Bishop, White}, "g1": {Knight, White}, "h1": {Rook, White},
}

// GenerateBoard builds the 8x8 starting position, rank 8 first so row index
// i and column index j give the square at FormatCoord(j, i). Display colors
// alternate by coordinate parity, matching the client's CSS classes.
func GenerateBoard() [][]Square {
	board := make([][]Square, 8)
	for i := 0; i < 8; i++ {
		row := make([]Square, 8)
		for j := 0; j < 8; j++ {
			pos := FormatCoord(j, i)
			cell := "blanco"
			if (i+j)%2 == 1 {
				cell = "negro"
			}
			sq := Square{Pos: pos, Color: cell}
			if p, ok := startingPieces[pos]; ok {
				pc := p
				sq.Pieza = &pc
			}
			row[j] = sq
		}
		board[i] = row
	}
	return board
}

// ParseCoord converts a two-character algebraic coordinate ("e2") to grid
// indices: x is the column 0..7 for files a..h, y is the row 0..7 counted
// from rank 8 down (y = 8 - rank).
func ParseCoord(s string) (x, y int, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	x = int(s[0] - 'a')
	rank := int(s[1] - '0')
	if x < 0 || x > 7 || rank < 1 || rank > 8 {
		return 0, 0, false
	}
	return x, 8 - rank, true
}

// FormatCoord is the inverse of ParseCoord.
func FormatCoord(x, y int) string {
	return string([]byte{files[x], byte('0' + (8 - y))})
}
