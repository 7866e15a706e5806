package game

// Color identifies a side using the wire vocabulary of the web client.
type Color string

const (
	White Color = "blanca"
	Black Color = "negra"
)

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool { return c == White || c == Black }

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Plural returns the form used in game-over states ("blancas-ganan").
func (c Color) Plural() string {
	if c == White {
		return "blancas"
	}
	return "negras"
}

// PieceType is one of the six chess piece kinds, wire-encoded in Spanish.
type PieceType string

const (
	Pawn   PieceType = "peon"
	Knight PieceType = "caballo"
	Bishop PieceType = "alfil"
	Rook   PieceType = "torre"
	Queen  PieceType = "reina"
	King   PieceType = "rey"
)

// Valid reports whether p names a known piece type.
func (p PieceType) Valid() bool {
	switch p {
	case Pawn, Knight, Bishop, Rook, Queen, King:
		return true
	}
	return false
}

// Piece is an immutable piece placement. Squares swap whole pieces on
// capture, they never mutate one in place.
type Piece struct {
	Tipo  PieceType `json:"tipo"`
	Color Color     `json:"color"`
}
