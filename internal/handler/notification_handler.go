package handler

import (
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/pkg/serverutils"
	internalWS "ml-discovery-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// NotificationHandler upgrades authenticated clients to the realtime
// notification stream for their session.
type NotificationHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/v1/notifications", h.ServeWs)
}

// ServeWs handles websocket requests from the peer. Browsers cannot set an
// Authorization header on the upgrade request, so the token rides in the
// query string.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	sessionIdStr, err := serverutils.ParseSessionTokenFromQuery(c)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
			internalWS.ServeWs(h.hub, conn, sessionId)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
