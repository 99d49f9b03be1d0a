package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hippo/models"
	"hippo/services"
)

// ChatHandler is the boundary layer: it decides per request whether to
// gather live price data or web context, then hands everything to the
// completion collaborator. Lookup failures degrade inside the services;
// the only errors surfaced here are bad input and a failed completion.
type ChatHandler struct {
	comparisons *services.ComparisonService
	completions *services.CompletionClient
	webSearch   *services.WebSearchClient
	log         *zap.Logger
}

func NewChatHandler(comparisons *services.ComparisonService, completions *services.CompletionClient, webSearch *services.WebSearchClient, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		comparisons: comparisons,
		completions: completions,
		webSearch:   webSearch,
		log:         log,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !h.completions.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OPENAI_API_KEY is not configured on the server."})
		return
	}

	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one user message is required."})
		return
	}

	ctx := c.Request.Context()

	liveDataContext := ""
	switch req.Mode {
	case models.ModeWebAssisted:
		liveDataContext = h.webSearch.Context(ctx, req.Trip)
	case models.ModeLivePrices:
		comparison := h.comparisons.Compare(ctx, req.Trip)
		if data, err := json.Marshal(comparison); err == nil {
			liveDataContext = string(data)
		}
	}

	content, err := h.completions.Complete(ctx,
		req.Mode,
		services.BuildSystemPrompt(req.Mode),
		services.BuildTripContext(req.Trip),
		liveDataContext,
		req.Messages,
	)
	if err != nil {
		h.log.Error("chat completion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while generating a response."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}
