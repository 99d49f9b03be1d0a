package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"hippo/services"
)

func newChatRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	amadeus := services.NewAmadeusClient(services.AmadeusConfig{BaseURL: "http://127.0.0.1:0"}, log)
	h := NewChatHandler(
		services.NewComparisonService(amadeus, log),
		services.NewCompletionClient(log),
		services.NewWebSearchClient(log),
		log,
	)

	r := gin.New()
	r.POST("/api/chat", h.Chat)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChat_InvalidBody(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	r := newChatRouter(t)

	w := postJSON(r, "/api/chat", `{"mode": 42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_CompletionsNotConfigured(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	r := newChatRouter(t)

	w := postJSON(r, "/api/chat", `{
		"mode": "live-prices",
		"trip": {"origin": "JFK", "cityA": "LIS", "cityB": "BCN"},
		"messages": [{"id": "1", "role": "user", "content": "hi"}]
	}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "OPENAI_API_KEY is not configured")
}

func TestChat_RequiresMessages(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	r := newChatRouter(t)

	w := postJSON(r, "/api/chat", `{
		"mode": "live-prices",
		"trip": {"origin": "JFK", "cityA": "LIS", "cityB": "BCN"},
		"messages": []
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least one user message is required")
}
