package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	internalWS "github.com/redcow77/module-5-test/internal/websocket"
)

func TestTopicFor(t *testing.T) {
	topic, err := topicFor("")
	require.NoError(t, err)
	assert.Equal(t, "workspace", topic)

	topic, err = topicFor("12")
	require.NoError(t, err)
	assert.Equal(t, "page:12", topic)

	_, err = topicFor("nope")
	assert.Error(t, err)
}

func TestLiveHandler_RequiresUpgrade(t *testing.T) {
	log := logger.NewNopLogger()
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	NewLiveHandler(internalWS.NewHub(nil, log), log).RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/ws?page_id=x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
