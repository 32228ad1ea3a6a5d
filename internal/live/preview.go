// Package live pushes re-rendered widget HTML over a websocket whenever
// the backing widget changes, and applies option commands sent by the
// client. One connection follows one widget.
package live

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/kapu/boardwidget/internal/widget"
)

// OptionCommand is the client-to-server message: set one widget option.
type OptionCommand struct {
	Option string `json:"option"`
	Value  string `json:"value"`
}

type Preview struct {
	log          *zap.Logger
	widget       *widget.Widget
	pingInterval time.Duration
}

func NewPreview(w *widget.Widget, log *zap.Logger) *Preview {
	return &Preview{
		log:          log,
		widget:       w,
		pingInterval: 30 * time.Second,
	}
}

func (p *Preview) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	conn, err := websocket.Accept(rw, req, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		p.log.Warn("ws accept", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusGoingAway, "closed")

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	updates := make(chan []byte, 8)
	unsubscribe := p.widget.Subscribe(func(rendered []byte) {
		// Drop intermediate frames when the client is slow, the next
		// full render supersedes them anyway.
		select {
		case updates <- rendered:
		default:
		}
	})
	defer unsubscribe()

	go p.readLoop(ctx, cancel, conn)

	if initial, err := p.widget.Render(); err == nil {
		if err := conn.Write(ctx, websocket.MessageText, initial); err != nil {
			return
		}
	}

	ticker := time.NewTicker(p.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case rendered := <-updates:
			if err := conn.Write(ctx, websocket.MessageText, rendered); err != nil {
				return
			}
		case <-ticker.C:
			pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
			err := conn.Ping(pingCtx)
			pingCancel()
			if err != nil {
				p.log.Debug("ws ping", zap.Error(err))
				return
			}
		}
	}
}

func (p *Preview) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()
	for {
		var cmd OptionCommand
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			return
		}
		if err := p.widget.SetOption(cmd.Option, cmd.Value); err != nil {
			p.log.Debug("ws option rejected",
				zap.String("option", cmd.Option),
				zap.String("value", cmd.Value),
				zap.Error(err))
		}
	}
}
