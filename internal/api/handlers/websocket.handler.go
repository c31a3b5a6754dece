package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/regsight/regsight-core/internal/config"
	"github.com/regsight/regsight-core/internal/metrics"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/logger"
)

// WebSocketHandler pushes periodic scorecard snapshots to dashboard clients
// so wall-mounted displays stay live without polling.
type WebSocketHandler struct {
	upgrader  websocket.Upgrader
	scorecard *services.ScorecardService
	cfg       config.WebSocketConfig
	logger    logger.Logger

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func NewWebSocketHandler(scorecard *services.ScorecardService, cfg config.WebSocketConfig, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// TODO: tighten in prod (check Origin against CORS config)
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		scorecard: scorecard,
		cfg:       cfg,
		logger:    log,
		clients:   make(map[string]*websocket.Conn),
	}
}

// HandleScorecardStream - WebSocket endpoint for live scorecard snapshots
func (h *WebSocketHandler) HandleScorecardStream(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		c.JSON(http.StatusUpgradeRequired, gin.H{
			"status": "error",
			"error":  "WebSocket upgrade required",
			"detail": "Connect with a WebSocket client (e.g., ws://host/api/v1/ws/scorecard).",
		})
		return
	}

	if h.cfg.MaxConnections > 0 && h.clientCount() >= h.cfg.MaxConnections {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "too many stream connections",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	clientID := generateClientID()
	h.addClient(clientID, conn)
	defer h.removeClient(clientID)

	h.logger.Info("Scorecard stream client connected", "clientId", clientID)

	pushInterval := time.Duration(h.cfg.PushInterval) * time.Second
	if pushInterval <= 0 {
		pushInterval = 15 * time.Second
	}
	pingInterval := time.Duration(h.cfg.PingInterval) * time.Second
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}

	// First frame immediately so clients render without waiting a full tick.
	if err := h.writeSnapshot(conn); err != nil {
		h.logger.Error("Scorecard stream write failed", "clientId", clientID, "error", err)
		return
	}

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	heartbeat := time.NewTicker(pingInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.writeSnapshot(conn); err != nil {
				h.logger.Error("Scorecard stream write failed", "clientId", clientID, "error", err)
				return
			}

		case <-heartbeat.C:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			_ = conn.WriteJSON(map[string]interface{}{
				"type": "heartbeat",
				"data": map[string]interface{}{"ts": time.Now().UnixMilli()},
			})

		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *WebSocketHandler) writeSnapshot(conn *websocket.Conn) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(map[string]interface{}{
		"type": "scorecard_update",
		"data": map[string]interface{}{
			"summary":            h.scorecard.Summary(),
			"statusDistribution": h.scorecard.StatusDistribution(),
			"functionScores":     h.scorecard.FunctionScores().Scores,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *WebSocketHandler) addClient(id string, conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
	metrics.WebSocketConnections.Inc()
}

func (h *WebSocketHandler) removeClient(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
	metrics.WebSocketConnections.Dec()
}

func (h *WebSocketHandler) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func generateClientID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
