package game

import "testing"

func TestGenerateBoardShape(t *testing.T) {
	board := GenerateBoard()
	if len(board) != 8 {
		t.Fatalf("rows = %d, want 8", len(board))
	}
	seen := make(map[string]bool, 64)
	kings := map[Color]int{}
	for i, row := range board {
		if len(row) != 8 {
			t.Fatalf("row %d has %d squares", i, len(row))
		}
		for j, sq := range row {
			if seen[sq.Pos] {
				t.Fatalf("duplicate square %s", sq.Pos)
			}
			seen[sq.Pos] = true
			wantColor := "blanco"
			if (i+j)%2 == 1 {
				wantColor = "negro"
			}
			if sq.Color != wantColor {
				t.Fatalf("square %s display color = %s, want %s", sq.Pos, sq.Color, wantColor)
			}
			if sq.Pieza != nil && sq.Pieza.Tipo == King {
				kings[sq.Pieza.Color]++
			}
		}
	}
	if len(seen) != 64 {
		t.Fatalf("squares = %d, want 64", len(seen))
	}
	if kings[White] != 1 || kings[Black] != 1 {
		t.Fatalf("kings = %v, want one per color", kings)
	}
}

func TestStartingPlacement(t *testing.T) {
	board := GenerateBoard()
	// Rank 8 is row 0: black back rank.
	if p := board[0][4].Pieza; p == nil || p.Tipo != King || p.Color != Black {
		t.Fatalf("e8 = %+v, want black king", board[0][4].Pieza)
	}
	if p := board[6][0].Pieza; p == nil || p.Tipo != Pawn || p.Color != White {
		t.Fatalf("a2 = %+v, want white pawn", board[6][0].Pieza)
	}
	if board[4][4].Pieza != nil {
		t.Fatalf("e4 should start empty, got %+v", board[4][4].Pieza)
	}
}

func TestCoordRoundTrip(t *testing.T) {
	x, y, ok := ParseCoord("e2")
	if !ok || x != 4 || y != 6 {
		t.Fatalf("ParseCoord(e2) = (%d,%d,%v)", x, y, ok)
	}
	if s := FormatCoord(4, 6); s != "e2" {
		t.Fatalf("FormatCoord(4,6) = %s", s)
	}
	for _, bad := range []string{"", "e", "e9", "i2", "22", "e22"} {
		if _, _, ok := ParseCoord(bad); ok {
			t.Fatalf("ParseCoord(%q) should fail", bad)
		}
	}
}
