// Package boardimg renders a position as a PNG image, square colors and
// piece sprites matching the web board.
package boardimg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"ajedrez-online/internal/game"
)

// Highlight marks the squares of the move to emphasize, in algebraic
// coordinates.
type Highlight struct {
	From string
	To   string
}

// Options adjust a single render.
type Options struct {
	Highlight *Highlight
}

const (
	squareSize   = 72
	boardSquares = 8
	boardSize    = squareSize * boardSquares
	sideMargin   = 24
	bottomMargin = 24
	topMargin    = 12
)

var (
	lightSquare         = color.RGBA{233, 207, 163, 255}
	darkSquare          = color.RGBA{187, 136, 96, 255}
	highlightFill       = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	coordinateTextColor = color.NRGBA{R: 60, G: 42, B: 28, A: 255}
)

// Renderer draws boards produced by game.GenerateBoard plus the move
// history applied on top of them.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// RenderPNG draws the 8x8 board with rank 8 in the first row, the layout
// game.GenerateBoard uses.
func (r *Renderer) RenderPNG(ctx context.Context, board [][]game.Square, opts Options) ([]byte, error) {
	if len(board) != boardSquares {
		return nil, fmt.Errorf("board has %d ranks, want %d", len(board), boardSquares)
	}

	totalWidth := boardSize + sideMargin*2
	totalHeight := boardSize + topMargin + bottomMargin
	origin := image.Point{X: sideMargin, Y: topMargin}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, imagedraw.Src)

	drawSquares(img, board, origin)
	drawHighlight(img, opts.Highlight, origin)
	if err := drawPieces(img, board, origin); err != nil {
		return nil, err
	}
	drawCoordinates(img, origin)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSquares(dst imagedraw.Image, board [][]game.Square, origin image.Point) {
	for row := range board {
		for col := range board[row] {
			clr := lightSquare
			if board[row][col].Color == "negro" {
				clr = darkSquare
			}
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			imagedraw.Draw(dst, image.Rect(x, y, x+squareSize, y+squareSize),
				image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, board [][]game.Square, origin image.Point) error {
	for row := range board {
		for col := range board[row] {
			p := board[row][col].Pieza
			if p == nil {
				continue
			}
			img, err := renderPieceImage(*p, squareSize)
			if err != nil {
				return err
			}
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			imagedraw.Draw(dst, image.Rect(x, y, x+squareSize, y+squareSize),
				img, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

func drawHighlight(img *image.RGBA, h *Highlight, origin image.Point) {
	if h == nil {
		return
	}
	for _, pos := range []string{h.From, h.To} {
		x, y, ok := game.ParseCoord(pos)
		if !ok {
			continue
		}
		px := origin.X + x*squareSize
		py := origin.Y + y*squareSize
		imagedraw.Draw(img, image.Rect(px, py, px+squareSize, py+squareSize),
			image.NewUniform(highlightFill), image.Point{}, imagedraw.Over)
	}
}

func drawCoordinates(img *image.RGBA, origin image.Point) {
	drawer := &font.Drawer{
		Dst:  img,
		Face: basicfont.Face7x13,
		Src:  image.NewUniform(coordinateTextColor),
	}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()

	for row := 0; row < boardSquares; row++ {
		label := fmt.Sprintf("%d", 8-row)
		baseline := origin.Y + row*squareSize + squareSize/2 + ascent/2
		drawCenteredText(drawer, label, origin.X-sideMargin/2, baseline)
	}
	for col := 0; col < boardSquares; col++ {
		label := string(rune('a' + col))
		centerX := origin.X + col*squareSize + squareSize/2
		baseline := origin.Y + boardSize + ascent + 4
		drawCenteredText(drawer, label, centerX, baseline)
	}
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	if text == "" {
		return
	}
	width := drawer.MeasureString(text).Round()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}
