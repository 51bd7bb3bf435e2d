package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mvoss/signalhub/internal/app"
	"github.com/mvoss/signalhub/internal/config"
	"github.com/mvoss/signalhub/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// SignalWSController owns the websocket side of signaling: it upgrades
// connections, assigns session ids, and feeds validated messages into the
// router. All room semantics live in app.SignalRouter.
type SignalWSController struct {
	Router  *app.SignalRouter
	Limiter *JoinRateLimiter

	readLimit  int64
	writeWait  time.Duration
	pingPeriod time.Duration
}

func NewSignalWSController(cfg *config.Config, router *app.SignalRouter) *SignalWSController {
	return &SignalWSController{
		Router:     router,
		Limiter:    NewJoinRateLimiter(cfg.JoinRate, cfg.JoinInterval),
		readLimit:  cfg.ReadLimit,
		writeWait:  cfg.WriteWait,
		pingPeriod: cfg.PingPeriod,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and starts the session's pumps. Each
// websocket gets a fresh session id; the long-lived client token from the
// cookie is kept only for log correlation.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client_token", token).Msg("new WS connection")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Router.Sessions.Bind(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
