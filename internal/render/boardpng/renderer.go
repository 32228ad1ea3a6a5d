// Package boardpng rasterizes a computed board layout to a PNG image:
// squares, piece sprites, coordinate labels and the turn marker disc.
// It draws whatever the layout says and nothing else; orientation, label
// text and marker placement were all decided when the layout was
// computed.
package boardpng

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

	"github.com/kapu/boardwidget/internal/board"
	"github.com/kapu/boardwidget/internal/sprite"
	"github.com/kapu/boardwidget/internal/theme"
)

const (
	coordMargin  = 20
	markerMargin = 20
	markerRadius = 5
)

// Renderer draws board layouts with a fixed theme and sprite set.
type Renderer struct {
	sprites *sprite.Rasterizer
	theme   theme.Theme
}

func NewRenderer(sprites *sprite.Rasterizer, th theme.Theme) *Renderer {
	return &Renderer{sprites: sprites, theme: th}
}

// RenderPNG rasterizes the layout and encodes it as PNG.
func (r *Renderer) RenderPNG(ctx context.Context, layout *board.Layout) ([]byte, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is nil")
	}

	squareSize := layout.Options.SquareSize
	boardSize := squareSize * 8

	leftMargin, bottomMargin := 0, 0
	if layout.Options.ShowCoordinates {
		leftMargin = coordMargin
		bottomMargin = coordMargin
	}
	totalWidth := leftMargin + boardSize + markerMargin
	totalHeight := boardSize + bottomMargin
	origin := image.Point{X: leftMargin, Y: 0}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(r.theme.BackgroundColor()), image.Point{}, imagedraw.Src)

	r.drawSquares(img, layout, squareSize, origin)
	if err := r.drawPieces(img, layout, squareSize, origin); err != nil {
		return nil, err
	}
	r.drawMarker(img, layout, squareSize, origin)
	if layout.Options.ShowCoordinates {
		r.drawCoordinates(img, layout, squareSize, origin)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

func (r *Renderer) drawSquares(img *image.RGBA, layout *board.Layout, squareSize int, origin image.Point) {
	light := image.NewUniform(r.theme.LightSquareColor())
	dark := image.NewUniform(r.theme.DarkSquareColor())
	for row, rowLayout := range layout.Rows {
		for col, cell := range rowLayout.Cells {
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			fill := dark
			if cell.Shade == board.Light {
				fill = light
			}
			imagedraw.Draw(img, image.Rect(x, y, x+squareSize, y+squareSize), fill, image.Point{}, imagedraw.Src)
		}
	}
}

func (r *Renderer) drawPieces(img *image.RGBA, layout *board.Layout, squareSize int, origin image.Point) error {
	for row, rowLayout := range layout.Rows {
		for col, cell := range rowLayout.Cells {
			if !cell.Occupied {
				continue
			}
			pieceImg, err := r.sprites.Resolve(cell.SpriteKey, squareSize)
			if err != nil {
				return err
			}
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			imagedraw.Draw(img, image.Rect(x, y, x+squareSize, y+squareSize), pieceImg, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

func (r *Renderer) drawMarker(img *image.RGBA, layout *board.Layout, squareSize int, origin image.Point) {
	for row, rowLayout := range layout.Rows {
		if rowLayout.Marker == nil {
			continue
		}
		center := image.Point{
			X: origin.X + 8*squareSize + markerMargin/2,
			Y: origin.Y + row*squareSize + squareSize/2,
		}
		drawDisc(img, center, markerRadius, r.theme.MarkerColor())
	}
}

func (r *Renderer) drawCoordinates(img *image.RGBA, layout *board.Layout, squareSize int, origin image.Point) {
	drawer := &font.Drawer{
		Dst:  img,
		Face: basicfont.Face7x13,
		Src:  image.NewUniform(r.theme.CoordinateColor()),
	}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()

	for row, rowLayout := range layout.Rows {
		if rowLayout.Label == "" {
			continue
		}
		baseline := origin.Y + row*squareSize + squareSize/2 + ascent/2
		drawCenteredText(drawer, rowLayout.Label, origin.X-coordMargin/2, baseline)
	}

	if layout.Header != nil {
		baseline := origin.Y + 8*squareSize + ascent + 2
		for col, label := range layout.Header.Labels {
			centerX := origin.X + col*squareSize + squareSize/2
			drawCenteredText(drawer, label, centerX, baseline)
		}
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

func drawDisc(img *image.RGBA, center image.Point, radius int, clr color.Color) {
	if radius <= 0 {
		blendPixel(img, center.X, center.Y, clr)
		return
	}
	rSquared := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > rSquared {
				continue
			}
			blendPixel(img, center.X+x, center.Y+y, clr)
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, clr color.Color) {
	if img == nil {
		return
	}
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}

	sr, sg, sb, sa := clr.RGBA()
	srcA := float64(sa) / 65535.0
	if srcA <= 0 {
		return
	}
	srcR := float64(sr) / 65535.0
	srcG := float64(sg) / 65535.0
	srcB := float64(sb) / 65535.0

	dst := img.RGBAAt(x, y)
	dstA := float64(dst.A) / 255.0

	var dstR, dstG, dstB float64
	if dstA > 0 {
		inv := 1.0 / dstA
		dstR = float64(dst.R) / 255.0 * inv
		dstG = float64(dst.G) / 255.0 * inv
		dstB = float64(dst.B) / 255.0 * inv
	}

	outA := srcA + dstA*(1-srcA)
	if outA <= 0 {
		img.SetRGBA(x, y, color.RGBA{})
		return
	}

	outR := (srcR*srcA + dstR*dstA*(1-srcA)) / outA
	outG := (srcG*srcA + dstG*dstA*(1-srcA)) / outA
	outB := (srcB*srcA + dstB*dstA*(1-srcA)) / outA

	img.SetRGBA(x, y, color.RGBA{
		R: floatToUint8(outR * outA * 255.0),
		G: floatToUint8(outG * outA * 255.0),
		B: floatToUint8(outB * outA * 255.0),
		A: floatToUint8(outA * 255.0),
	})
}

func floatToUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
