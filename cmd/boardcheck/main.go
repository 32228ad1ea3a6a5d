// boardcheck renders a position to HTML and PNG files for a quick
// visual smoke check of the layout and the sprite set.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/kapu/boardwidget/internal/board"
	"github.com/kapu/boardwidget/internal/position"
	"github.com/kapu/boardwidget/internal/render/boardhtml"
	"github.com/kapu/boardwidget/internal/render/boardpng"
	"github.com/kapu/boardwidget/internal/sprite"
	"github.com/kapu/boardwidget/internal/theme"
)

func main() {
	fen := flag.String("fen", "start", "FEN or alias (start, empty)")
	flip := flag.Bool("flip", false, "show the board from black's side")
	size := flag.Int("size", board.DefaultSquareSize, "square size in pixels")
	coords := flag.Bool("coords", true, "show coordinate labels")
	themeName := flag.String("theme", theme.DefaultName, "theme name")
	outHTML := flag.String("html", "board.html", "HTML output file")
	outPNG := flag.String("png", "board.png", "PNG output file")
	flag.Parse()

	pos, err := position.Parse(*fen)
	if err != nil {
		log.Fatalf("parse error: %v", err)
	}

	themes, err := theme.New("")
	if err != nil {
		log.Fatalf("theme error: %v", err)
	}
	th, err := themes.Get(*themeName)
	if err != nil {
		log.Fatalf("theme error: %v", err)
	}

	opts := board.DisplayOptions{
		Flip:            *flip,
		SquareSize:      board.ValidateSquareSize(size),
		ShowCoordinates: *coords,
	}
	layout := board.ComputeLayout(pos, opts)
	log.Printf("position %s: %s to move, %dpx squares", pos.FEN(), pos.SideToMove(), opts.SquareSize)

	htmlRenderer, err := boardhtml.NewRenderer(sprite.NewURLResolver("/sprites"), th)
	if err != nil {
		log.Fatalf("html renderer: %v", err)
	}
	html, err := htmlRenderer.Render(layout)
	if err != nil {
		log.Fatalf("html render: %v", err)
	}
	if err := os.WriteFile(*outHTML, html, 0o644); err != nil {
		log.Fatalf("write %s: %v", *outHTML, err)
	}
	log.Printf("wrote %s (%d bytes)", *outHTML, len(html))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pngRenderer := boardpng.NewRenderer(sprite.NewRasterizer(), th)
	img, err := pngRenderer.RenderPNG(ctx, layout)
	if err != nil {
		log.Fatalf("png render: %v", err)
	}
	if err := os.WriteFile(*outPNG, img, 0o644); err != nil {
		log.Fatalf("write %s: %v", *outPNG, err)
	}
	log.Printf("wrote %s (%d bytes)", *outPNG, len(img))
}
