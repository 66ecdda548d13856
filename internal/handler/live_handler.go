package handler

import (
	"strconv"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	internalWS "github.com/redcow77/module-5-test/internal/websocket"
	"github.com/redcow77/module-5-test/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveHandler upgrades clients to a websocket that streams workspace events.
type LiveHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *LiveHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
}

// ServeWs follows the whole workspace, or a single page with ?page_id=.
func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	topic, err := topicFor(c.Query("page_id"))
	if err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LiveHandler", "Starting WebSocket session", map[string]interface{}{"topic": topic})
		internalWS.ServeWs(h.hub, conn, topic)
		h.logger.Info("LiveHandler", "WebSocket session ended", map[string]interface{}{"topic": topic})
	})(c)
}

func topicFor(pageId string) (string, error) {
	if pageId == "" {
		return events.WorkspaceTopic, nil
	}
	id, err := strconv.ParseInt(pageId, 10, 64)
	if err != nil || id <= 0 {
		return "", serverutils.BadRequest("Invalid page_id")
	}
	return events.PageTopic(id), nil
}
