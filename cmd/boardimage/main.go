package main

import (
	"fmt"
	"os"

	"github.com/avoronov/chessmentor/internal/boardimg"
)

const startingPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func main() {
	fen := startingPosition
	if len(os.Args) > 1 {
		fen = os.Args[1]
	}

	png, err := boardimg.Render(fen)
	if err != nil {
		fmt.Printf("❌ Failed to render board: %v\n", err)
		os.Exit(1)
	}

	filename := "board.png"
	if err := os.WriteFile(filename, png, 0644); err != nil {
		fmt.Printf("❌ Failed to save image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Board image saved to %s (%d bytes)\n", filename, len(png))
}
