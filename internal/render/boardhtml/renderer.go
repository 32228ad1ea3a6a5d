// Package boardhtml builds the widget DOM from a computed board layout.
// It walks the layout row by row and emits an HTML table: rank labels,
// square cells with piece images, the turn marker column and the
// trailing file-label row. Piece images are referenced by URL through
// the sprite resolver, never inlined.
package boardhtml

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/kapu/boardwidget/internal/board"
	"github.com/kapu/boardwidget/internal/sprite"
	"github.com/kapu/boardwidget/internal/theme"
)

//go:embed template/widget.html
var templates embed.FS

type widgetData struct {
	Layout *board.Layout
	Theme  theme.Theme
}

// Renderer renders board layouts with a fixed theme and sprite base URL.
type Renderer struct {
	tmpl    *template.Template
	sprites sprite.URLResolver
	theme   theme.Theme
}

func NewRenderer(sprites sprite.URLResolver, th theme.Theme) (*Renderer, error) {
	funcs := template.FuncMap{
		"spriteURL": func(key string, size int) string {
			return sprites.Resolve(key, size)
		},
		"pieceAlt": func(p board.Piece) string {
			return p.Color.String() + " " + p.Type.String()
		},
	}
	tmpl, err := template.New("widget").Funcs(funcs).ParseFS(templates, "template/widget.html")
	if err != nil {
		return nil, fmt.Errorf("widget template parse: %w", err)
	}
	return &Renderer{tmpl: tmpl, sprites: sprites, theme: th}, nil
}

// Render emits the widget HTML for one layout.
func (r *Renderer) Render(layout *board.Layout) ([]byte, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is nil")
	}
	var b bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&b, "widget", &widgetData{Layout: layout, Theme: r.theme}); err != nil {
		return nil, fmt.Errorf("render widget: %w", err)
	}
	return b.Bytes(), nil
}
