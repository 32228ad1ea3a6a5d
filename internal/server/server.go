// Package server exposes the widget over HTTP: rendered widget HTML,
// board PNGs, sprite assets and the stored display defaults.
package server

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/boardwidget/internal/board"
	"github.com/kapu/boardwidget/internal/position"
	"github.com/kapu/boardwidget/internal/render/boardhtml"
	"github.com/kapu/boardwidget/internal/render/boardpng"
	"github.com/kapu/boardwidget/internal/settings"
	"github.com/kapu/boardwidget/internal/sprite"
)

const spritePathPrefix = "/sprites/"

type Server struct {
	log     *zap.Logger
	store   settings.Store
	scope   string
	html    *boardhtml.Renderer
	png     *boardpng.Renderer
	sprites *sprite.Rasterizer
}

func New(log *zap.Logger, store settings.Store, scope string, html *boardhtml.Renderer, png *boardpng.Renderer, sprites *sprite.Rasterizer) *Server {
	return &Server{
		log:     log,
		store:   store,
		scope:   scope,
		html:    html,
		png:     png,
		sprites: sprites,
	}
}

func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		switch {
		case path == "/widget":
			s.handleWidget(ctx)
		case path == "/board.png":
			s.handleBoardPNG(ctx)
		case strings.HasPrefix(path, spritePathPrefix):
			s.handleSprite(ctx)
		case path == "/defaults":
			s.handleDefaults(ctx)
		case path == "/healthz":
			ctx.SetStatusCode(fasthttp.StatusOK)
			ctx.SetBodyString("ok")
		default:
			ctx.Error("not found", fasthttp.StatusNotFound)
		}
	}
}

// requestLayout resolves the request into a computed layout: stored
// defaults first, query overrides on top, then the position.
func (s *Server) requestLayout(ctx *fasthttp.RequestCtx) (*board.Layout, bool) {
	opts, err := s.store.Defaults(ctx, s.scope)
	if err != nil {
		s.log.Warn("load stored defaults", zap.Error(err))
		opts = board.DefaultOptions()
	}

	args := ctx.QueryArgs()
	if v := args.Peek("flip"); len(v) > 0 {
		if b, err := strconv.ParseBool(string(v)); err == nil {
			opts.Flip = b
		}
	}
	if v := args.Peek("size"); len(v) > 0 {
		opts.SquareSize = board.ValidateSquareSizeString(string(v))
	}
	if v := args.Peek("coords"); len(v) > 0 {
		if b, err := strconv.ParseBool(string(v)); err == nil {
			opts.ShowCoordinates = b
		}
	}

	fen := string(args.Peek("fen"))
	pos, err := position.Parse(fen)
	if err != nil {
		s.log.Debug("bad position", zap.String("fen", fen), zap.Error(err))
		ctx.Error("invalid position: "+err.Error(), fasthttp.StatusBadRequest)
		return nil, false
	}
	return board.ComputeLayout(pos, opts), true
}

func (s *Server) handleWidget(ctx *fasthttp.RequestCtx) {
	layout, ok := s.requestLayout(ctx)
	if !ok {
		return
	}
	html, err := s.html.Render(layout)
	if err != nil {
		s.log.Error("render widget", zap.Error(err))
		ctx.Error("render failed", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(html)
}

func (s *Server) handleBoardPNG(ctx *fasthttp.RequestCtx) {
	layout, ok := s.requestLayout(ctx)
	if !ok {
		return
	}
	img, err := s.png.RenderPNG(ctx, layout)
	if err != nil {
		s.log.Error("render board png", zap.Error(err))
		ctx.Error("render failed", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("image/png")
	ctx.SetBody(img)
}

func (s *Server) handleSprite(ctx *fasthttp.RequestCtx) {
	name := strings.TrimPrefix(string(ctx.Path()), spritePathPrefix)
	key, size, err := sprite.ParseAssetName(name)
	if err != nil {
		ctx.Error("unknown sprite", fasthttp.StatusNotFound)
		return
	}
	img, err := s.sprites.EncodePNG(key, size)
	if err != nil {
		s.log.Error("rasterize sprite", zap.String("key", key), zap.Error(err))
		ctx.Error("sprite failed", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("image/png")
	ctx.Response.Header.Set("Cache-Control", "public, max-age=86400")
	ctx.SetBody(img)
}

type defaultsDTO struct {
	Flip            bool `json:"flip"`
	SquareSize      int  `json:"squareSize"`
	ShowCoordinates bool `json:"showCoordinates"`
}

type defaultsUpdate struct {
	Flip            *bool `json:"flip"`
	SquareSize      *int  `json:"squareSize"`
	ShowCoordinates *bool `json:"showCoordinates"`
}

func (s *Server) handleDefaults(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Method()) {
	case fasthttp.MethodGet:
		opts, err := s.store.Defaults(ctx, s.scope)
		if err != nil {
			s.log.Error("load stored defaults", zap.Error(err))
			ctx.Error("settings unavailable", fasthttp.StatusInternalServerError)
			return
		}
		s.writeDefaults(ctx, opts)
	case fasthttp.MethodPost:
		var update defaultsUpdate
		if err := json.Unmarshal(ctx.PostBody(), &update); err != nil {
			ctx.Error("invalid body: "+err.Error(), fasthttp.StatusBadRequest)
			return
		}
		opts, err := s.store.Defaults(ctx, s.scope)
		if err != nil {
			s.log.Warn("load stored defaults", zap.Error(err))
			opts = board.DefaultOptions()
		}
		if update.Flip != nil {
			opts.Flip = *update.Flip
		}
		if update.SquareSize != nil {
			opts.SquareSize = board.ValidateSquareSize(update.SquareSize)
		}
		if update.ShowCoordinates != nil {
			opts.ShowCoordinates = *update.ShowCoordinates
		}
		if err := s.store.SaveDefaults(ctx, s.scope, opts); err != nil {
			s.log.Error("save stored defaults", zap.Error(err))
			ctx.Error("settings unavailable", fasthttp.StatusInternalServerError)
			return
		}
		s.writeDefaults(ctx, opts)
	default:
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
	}
}

func (s *Server) writeDefaults(ctx *fasthttp.RequestCtx, opts board.DisplayOptions) {
	body, err := json.Marshal(defaultsDTO{
		Flip:            opts.Flip,
		SquareSize:      opts.SquareSize,
		ShowCoordinates: opts.ShowCoordinates,
	})
	if err != nil {
		ctx.Error("encode failed", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
