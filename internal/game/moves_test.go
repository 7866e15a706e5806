package game

import (
	"sort"
	"testing"
)

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].X != cs[j].X {
			return cs[i].X < cs[j].X
		}
		return cs[i].Y < cs[j].Y
	})
}

func TestKnightCorner(t *testing.T) {
	got, err := LegalTargets(Knight, 0, 0, White)
	if err != nil {
		t.Fatalf("LegalTargets: %v", err)
	}
	sortCoords(got)
	want := []Coord{{1, 2}, {2, 1}}
	if len(got) != len(want) {
		t.Fatalf("knight a8: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("knight a8: got %v, want %v", got, want)
		}
	}
}

func TestRookRunsThroughOccupiedSquares(t *testing.T) {
	// Occupancy-blind: the rook on its home square still sees the whole
	// file and rank, 14 squares total.
	got, err := LegalTargets(Rook, 0, 7, White)
	if err != nil {
		t.Fatalf("LegalTargets: %v", err)
	}
	if len(got) != 14 {
		t.Fatalf("rook a1 target count = %d, want 14", len(got))
	}
	for _, c := range got {
		if !inBounds(c.X, c.Y) {
			t.Fatalf("rook target out of bounds: %v", c)
		}
	}
}

func TestQueenCombinesRookAndBishop(t *testing.T) {
	q, err := LegalTargets(Queen, 3, 3, White)
	if err != nil {
		t.Fatalf("queen: %v", err)
	}
	r, _ := LegalTargets(Rook, 3, 3, White)
	b, _ := LegalTargets(Bishop, 3, 3, White)
	if len(q) != len(r)+len(b) {
		t.Fatalf("queen d5 target count = %d, want %d", len(q), len(r)+len(b))
	}
}

func TestKingCenterAndEdge(t *testing.T) {
	center, _ := LegalTargets(King, 4, 4, White)
	if len(center) != 8 {
		t.Fatalf("king e4 target count = %d, want 8", len(center))
	}
	corner, _ := LegalTargets(King, 7, 7, White)
	if len(corner) != 3 {
		t.Fatalf("king h1 target count = %d, want 3", len(corner))
	}
}

func TestPawnDirectionByColor(t *testing.T) {
	white, _ := LegalTargets(Pawn, 4, 6, White) // e2
	sortCoords(white)
	if len(white) != 2 || white[0] != (Coord{4, 4}) || white[1] != (Coord{4, 5}) {
		t.Fatalf("white pawn e2: got %v", white)
	}
	black, _ := LegalTargets(Pawn, 4, 1, Black) // e7
	sortCoords(black)
	if len(black) != 2 || black[0] != (Coord{4, 2}) || black[1] != (Coord{4, 3}) {
		t.Fatalf("black pawn e7: got %v", black)
	}
	// Near the edge only the single advance fits.
	edge, _ := LegalTargets(Pawn, 0, 1, White) // a7 moving up
	if len(edge) != 1 || edge[0] != (Coord{0, 0}) {
		t.Fatalf("white pawn a7: got %v", edge)
	}
}

func TestAllTargetsInBounds(t *testing.T) {
	for _, tipo := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				for _, c := range []Color{White, Black} {
					targets, err := LegalTargets(tipo, x, y, c)
					if err != nil {
						t.Fatalf("%s (%d,%d): %v", tipo, x, y, err)
					}
					for _, tc := range targets {
						if !inBounds(tc.X, tc.Y) {
							t.Fatalf("%s (%d,%d) produced out-of-bounds %v", tipo, x, y, tc)
						}
					}
				}
			}
		}
	}
}

func TestUnknownPiece(t *testing.T) {
	if _, err := LegalTargets("dragon", 0, 0, White); err != ErrUnknownPiece {
		t.Fatalf("expected ErrUnknownPiece, got %v", err)
	}
}

func TestReaches(t *testing.T) {
	ok, err := Reaches(Pawn, 4, 6, 4, 4, White) // e2 -> e4
	if err != nil || !ok {
		t.Fatalf("pawn e2e4 should reach: ok=%v err=%v", ok, err)
	}
	ok, err = Reaches(Pawn, 4, 6, 5, 5, White) // e2 -> f3
	if err != nil || ok {
		t.Fatalf("pawn e2f3 should not reach: ok=%v err=%v", ok, err)
	}
}
