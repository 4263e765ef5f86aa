package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mentesana-server/auth"
	"mentesana-server/logger"
	"mentesana-server/middleware"
	"mentesana-server/ws"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// incomingMessage is the envelope of client frames.
type incomingMessage struct {
	Type string `json:"type"` // ping
}

// WSHandler groups dependencies for websocket flows
type WSHandler struct {
	mgr      *ws.Manager
	tokens   *auth.TokenIssuer
	upgrader websocket.Upgrader
}

// NewWSHandler accepts upgrades from allowedOrigins, or from any origin
// when the list is empty.
func NewWSHandler(mgr *ws.Manager, tokens *auth.TokenIssuer, allowedOrigins []string) *WSHandler {
	h := &WSHandler{mgr: mgr, tokens: tokens}
	h.upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
		if len(allowedOrigins) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}}
	return h
}

// HandleUserWS upgrades to websocket and keeps the connection registered
// for event push until the client goes away.
// GET /ws?token=<session token>
func (h *WSHandler) HandleUserWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		return
	}
	userID := claims.UserID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "user", userID, "err", err)
		return
	}
	h.mgr.Register(userID, conn)
	logger.Info("user connected", "user", userID)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.mgr.Unregister(userID, conn)
		logger.Info("user disconnected", "user", userID)
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go h.keepAlive(userID, conn, done)

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read error", "user", userID, "err", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var base incomingMessage
		if err := json.Unmarshal(message, &base); err != nil {
			logger.Debug("invalid websocket frame", "user", userID, "err", err)
			continue
		}
		switch base.Type {
		case "ping":
			_ = h.mgr.Send(userID, []byte(`{"type":"pong"}`))
		default:
			logger.Debug("unknown websocket message", "user", userID, "type", base.Type)
		}
	}
}

// keepAlive pings conn until done is closed or conn is replaced.
func (h *WSHandler) keepAlive(userID int64, conn ws.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.mgr.Ping(userID, conn); err != nil {
				return
			}
		}
	}
}

// GetConnectionStatus GET /api/realtime/status
func (h *WSHandler) GetConnectionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected": h.mgr.IsConnected(middleware.UserID(c)),
		"count":     h.mgr.Count(),
	})
}
