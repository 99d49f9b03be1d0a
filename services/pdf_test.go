package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hippo/models"
)

func TestGenerateTranscriptPDF(t *testing.T) {
	data := TranscriptPDFData{
		ID:   "abc1234567",
		Mode: models.ModeLivePrices,
		Trip: models.TripInput{
			Origin:    "New York",
			CityA:     "Lisbon",
			CityB:     "Barcelona",
			StartDate: "2024-03-01",
			EndDate:   "2024-03-05",
			Budget:    "$2000",
		},
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "Lisbon or Barcelona in March?"},
			{Role: models.RoleAssistant, Content: "## Quick take\n**Lisbon** is the cheaper splash this March."},
			{Role: models.RoleSystem, Content: "internal note, must not be rendered"},
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	pdfBytes, err := GenerateTranscriptPDF(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerateTranscriptPDF_EmptyConversation(t *testing.T) {
	pdfBytes, err := GenerateTranscriptPDF(TranscriptPDFData{Mode: models.ModeWebAssisted})
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}

func TestSanitizeForPDF(t *testing.T) {
	in := "## Heading\n- **bold** item\nplain"
	assert.Equal(t, "Heading\n- bold item\nplain", sanitizeForPDF(in))
}
