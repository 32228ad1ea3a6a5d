package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	appcfg "github.com/kapu/boardwidget/internal/config"
	"github.com/kapu/boardwidget/internal/live"
	"github.com/kapu/boardwidget/internal/obslog"
	"github.com/kapu/boardwidget/internal/position"
	"github.com/kapu/boardwidget/internal/render/boardhtml"
	"github.com/kapu/boardwidget/internal/render/boardpng"
	"github.com/kapu/boardwidget/internal/server"
	"github.com/kapu/boardwidget/internal/settings"
	"github.com/kapu/boardwidget/internal/sprite"
	"github.com/kapu/boardwidget/internal/theme"
	"github.com/kapu/boardwidget/internal/widget"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("log init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	themes, err := theme.New(cfg.ThemeDir)
	if err != nil {
		logger.Fatal("load themes", zap.Error(err))
	}
	th, err := themes.Get(cfg.Theme)
	if err != nil {
		logger.Fatal("select theme", zap.String("theme", cfg.Theme), zap.Error(err))
	}

	store := openStore(cfg, logger)
	defer func() { _ = store.Close() }()

	if cfg.SeedDefaults {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.SaveDefaults(ctx, cfg.SettingsScope, cfg.BoardDefaults); err != nil {
			logger.Warn("seed stored defaults", zap.Error(err))
		}
		cancel()
	}

	rasterizer := sprite.NewRasterizer()
	htmlRenderer, err := boardhtml.NewRenderer(sprite.NewURLResolver(cfg.AssetBasePath), th)
	if err != nil {
		logger.Fatal("html renderer", zap.Error(err))
	}
	pngRenderer := boardpng.NewRenderer(rasterizer, th)

	srv := server.New(logger, store, cfg.SettingsScope, htmlRenderer, pngRenderer, rasterizer)
	httpSrv := &fasthttp.Server{Handler: srv.Handler(), Name: "boardwidget"}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := httpSrv.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	var liveSrv *http.Server
	if cfg.LiveAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defaults, err := store.Defaults(ctx, cfg.SettingsScope)
		cancel()
		if err != nil {
			logger.Warn("load stored defaults", zap.Error(err))
		}
		w := widget.New(position.MustParse("start"), defaults, htmlRenderer)
		mux := http.NewServeMux()
		mux.Handle("/live", live.NewPreview(w, logger))
		liveSrv = &http.Server{Addr: cfg.LiveAddr, Handler: mux}
		go func() {
			logger.Info("live preview listening", zap.String("addr", cfg.LiveAddr))
			if err := liveSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("live server", zap.Error(err))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if liveSrv != nil {
		_ = liveSrv.Shutdown(shutdownCtx)
	}
	_ = httpSrv.ShutdownWithContext(shutdownCtx)
}

func openStore(cfg *appcfg.AppConfig, logger *zap.Logger) settings.Store {
	if cfg.RedisURL != "" {
		s, err := settings.NewRedisStore(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis settings store", zap.Error(err))
		}
		return s
	}
	if cfg.DatabaseURL != "" {
		s, err := settings.NewRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database settings store", zap.Error(err))
		}
		return s
	}
	logger.Info("no settings backend configured, using in-memory store")
	return settings.NewMemoryStore()
}
