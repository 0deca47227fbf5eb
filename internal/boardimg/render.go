package boardimg

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	boardFiles  = 8
	boardRanks  = 8
	squareSize  = 80
	borderWidth = 30
	imageSize   = boardFiles*squareSize + 2*borderWidth
	pieceRadius = squareSize * 0.34
)

// Цветовая схема
var (
	borderColor       = color.RGBA{74, 58, 42, 255}
	lightSquareColor  = color.RGBA{240, 217, 181, 255}
	darkSquareColor   = color.RGBA{181, 136, 99, 255}
	labelColor        = color.RGBA{235, 226, 208, 255}
	whitePieceColor   = color.RGBA{248, 248, 248, 255}
	whiteOutlineColor = color.RGBA{60, 60, 60, 255}
	blackPieceColor   = color.RGBA{40, 40, 40, 255}
	blackOutlineColor = color.RGBA{210, 210, 210, 255}
)

// Render draws the placement field of a board encoding as a PNG image.
// Pieces are drawn as lettered discs; the rest of the encoding (side to
// move, castling rights and so on) is ignored.
func Render(fen string) ([]byte, error) {
	board, err := parsePlacement(fen)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(imageSize, imageSize)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(borderColor)
	dc.Clear()

	drawSquares(dc)
	drawLabels(dc)
	drawPieces(dc, board)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode board image: %w", err)
	}

	return buf.Bytes(), nil
}

func drawSquares(dc *gg.Context) {
	for rank := 0; rank < boardRanks; rank++ {
		for file := 0; file < boardFiles; file++ {
			if (rank+file)%2 == 0 {
				dc.SetColor(lightSquareColor)
			} else {
				dc.SetColor(darkSquareColor)
			}
			dc.DrawRectangle(
				float64(borderWidth+file*squareSize),
				float64(borderWidth+rank*squareSize),
				squareSize,
				squareSize,
			)
			dc.Fill()
		}
	}
}

func drawLabels(dc *gg.Context) {
	dc.SetColor(labelColor)
	for file := 0; file < boardFiles; file++ {
		label := string(rune('a' + file))
		x := float64(borderWidth + file*squareSize + squareSize/2)
		dc.DrawStringAnchored(label, x, float64(imageSize)-borderWidth/2, 0.5, 0.5)
		dc.DrawStringAnchored(label, x, borderWidth/2, 0.5, 0.5)
	}
	for rank := 0; rank < boardRanks; rank++ {
		label := fmt.Sprintf("%d", boardRanks-rank)
		y := float64(borderWidth + rank*squareSize + squareSize/2)
		dc.DrawStringAnchored(label, borderWidth/2, y, 0.5, 0.5)
		dc.DrawStringAnchored(label, float64(imageSize)-borderWidth/2, y, 0.5, 0.5)
	}
}

func drawPieces(dc *gg.Context, board [boardRanks][boardFiles]rune) {
	for rank := 0; rank < boardRanks; rank++ {
		for file := 0; file < boardFiles; file++ {
			piece := board[rank][file]
			if piece == 0 {
				continue
			}

			x := float64(borderWidth + file*squareSize + squareSize/2)
			y := float64(borderWidth + rank*squareSize + squareSize/2)

			white := piece >= 'A' && piece <= 'Z'
			if white {
				dc.SetColor(whitePieceColor)
			} else {
				dc.SetColor(blackPieceColor)
			}
			dc.DrawCircle(x, y, pieceRadius)
			dc.Fill()

			if white {
				dc.SetColor(whiteOutlineColor)
			} else {
				dc.SetColor(blackOutlineColor)
			}
			dc.DrawCircle(x, y, pieceRadius)
			dc.Stroke()
			dc.DrawStringAnchored(strings.ToUpper(string(piece)), x, y, 0.5, 0.5)
		}
	}
}

// parsePlacement expands the placement field of a FEN-style encoding into
// an 8x8 grid. Zero cells are empty squares.
func parsePlacement(fen string) ([boardRanks][boardFiles]rune, error) {
	var board [boardRanks][boardFiles]rune

	placement, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	ranks := strings.Split(placement, "/")
	if len(ranks) != boardRanks {
		return board, fmt.Errorf("board encoding must have %d ranks, got %d", boardRanks, len(ranks))
	}

	for r, rank := range ranks {
		file := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				if file >= boardFiles {
					return board, fmt.Errorf("rank %d overflows the board", r+1)
				}
				board[r][file] = c
				file++
			default:
				return board, fmt.Errorf("unexpected character %q in board encoding", c)
			}
		}
		if file != boardFiles {
			return board, fmt.Errorf("rank %d covers %d files", r+1, file)
		}
	}

	return board, nil
}
