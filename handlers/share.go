package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hippo/database"
	"hippo/models"
	"hippo/services"
)

// ShareHandler persists conversation snapshots under short ids and replays
// them, either as JSON or as a PDF export.
type ShareHandler struct {
	baseURL string
	log     *zap.Logger
}

func NewShareHandler(baseURL string, log *zap.Logger) *ShareHandler {
	return &ShareHandler{baseURL: baseURL, log: log}
}

// Create handles POST /api/share.
func (h *ShareHandler) Create(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Mode == "" || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: mode, trip, messages"})
		return
	}

	trip, err := json.Marshal(req.Trip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip payload"})
		return
	}
	messages, err := json.Marshal(req.Messages)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid messages payload"})
		return
	}

	id := newShareID()
	if err := database.SaveSharedChat(&database.SharedChat{
		ID:       id,
		Mode:     string(req.Mode),
		Trip:     trip,
		Messages: messages,
	}); err != nil {
		h.log.Error("failed to save shared chat", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shareable link"})
		return
	}

	base := h.baseURL
	if base == "" {
		base = c.GetHeader("Origin")
	}
	if base == "" {
		base = "http://localhost:8080"
	}

	c.JSON(http.StatusOK, gin.H{
		"id":  id,
		"url": base + "/chat/" + id,
	})
}

// Get handles GET /api/shared/:id.
func (h *ShareHandler) Get(c *gin.Context) {
	chat, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":      chat.Mode,
		"trip":      chat.Trip,
		"messages":  chat.Messages,
		"createdAt": chat.CreatedAt,
	})
}

// Download handles GET /api/shared/:id/pdf.
func (h *ShareHandler) Download(c *gin.Context) {
	chat, ok := h.load(c)
	if !ok {
		return
	}

	var trip models.TripInput
	var messages []models.Message
	if err := json.Unmarshal(chat.Trip, &trip); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored conversation"})
		return
	}
	if err := json.Unmarshal(chat.Messages, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored conversation"})
		return
	}

	pdfBytes, err := services.GenerateTranscriptPDF(services.TranscriptPDFData{
		ID:        chat.ID,
		Mode:      models.Mode(chat.Mode),
		Trip:      trip,
		Messages:  messages,
		CreatedAt: chat.CreatedAt,
	})
	if err != nil {
		h.log.Error("transcript PDF generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=hippo-conversation.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *ShareHandler) load(c *gin.Context) (*database.SharedChat, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
		return nil, false
	}

	chat, err := database.GetSharedChat(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return nil, false
	}
	if err != nil {
		h.log.Error("failed to load shared chat", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat"})
		return nil, false
	}
	return chat, true
}

// newShareID returns a short url-friendly id. The column is VARCHAR(12), so
// ten hex characters leave headroom.
func newShareID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}
