package boardimg

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"ajedrez-online/internal/game"
)

func TestRenderPNGStartingPosition(t *testing.T) {
	r := NewRenderer()
	data, err := r.RenderPNG(context.Background(), game.GenerateBoard(), Options{})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	wantW := boardSize + sideMargin*2
	wantH := boardSize + topMargin + bottomMargin
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderPNGWithHighlight(t *testing.T) {
	r := NewRenderer()
	opts := Options{Highlight: &Highlight{From: "e2", To: "e4"}}
	data, err := r.RenderPNG(context.Background(), game.GenerateBoard(), opts)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}

func TestRenderPNGRejectsBadBoard(t *testing.T) {
	r := NewRenderer()
	if _, err := r.RenderPNG(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error for nil board")
	}
}

func TestPieceAssetsComplete(t *testing.T) {
	colors := []game.Color{game.White, game.Black}
	tipos := []game.PieceType{game.Pawn, game.Knight, game.Bishop, game.Rook, game.Queen, game.King}
	for _, c := range colors {
		for _, tp := range tipos {
			img, err := renderPieceImage(game.Piece{Tipo: tp, Color: c}, 48)
			if err != nil {
				t.Fatalf("render %s %s: %v", c, tp, err)
			}
			if img.Bounds().Dx() != 48 {
				t.Fatalf("piece sprite size = %d", img.Bounds().Dx())
			}
		}
	}
}
