package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/watch"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/web"
)

const (
	watchWriteWait  = 10 * time.Second
	watchPongWait   = 60 * time.Second
	watchPingPeriod = (watchPongWait * 9) / 10
)

// WatchHandler 档案变更推送处理器
// 把 Redis 频道上的档案快照桥接到 WebSocket 连接,
// 客户端用每条完整快照重算本地倒计时
type WatchHandler struct {
	watcher  *watch.Watcher
	upgrader *websocket.Upgrader
	logger   logger.Logger
	metrics  *metrics.GameMetrics
}

// NewWatchHandler 创建推送处理器
func NewWatchHandler(watcher *watch.Watcher, l logger.Logger, m *metrics.GameMetrics) *WatchHandler {
	return &WatchHandler{
		watcher: watcher,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// 浏览器客户端跨域连接,鉴权走 JWT
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  l.Named("handler.watch"),
		metrics: m,
	}
}

// Register 注册路由
func (h *WatchHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/profile/watch", h.Watch)
}

// Watch 升级为 WebSocket 并持续推送档案快照
func (h *WatchHandler) Watch(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		web.Error(c, http.StatusUnauthorized, web.CodeTokenMissing, "not signed in")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			"profile_id", uid,
			"error", err,
		)
		return
	}
	defer conn.Close()

	h.metrics.WatchSessions.Inc()
	defer h.metrics.WatchSessions.Dec()

	ctx := c.Request.Context()
	snapshots := h.watcher.Watch(ctx, uid)

	// 读循环只消费控制帧,客户端断开时结束会话
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(watchPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(watchPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(watchPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
				h.logger.Debug("watch write failed, closing session",
					"profile_id", uid,
					"error", err,
				)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
