package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hippo/models"
)

type TranscriptPDFData struct {
	ID        string
	Mode      models.Mode
	Trip      models.TripInput
	Messages  []models.Message
	CreatedAt time.Time
}

// GenerateTranscriptPDF renders a shared conversation as a PDF and returns
// the raw bytes (nothing touches the filesystem).
func GenerateTranscriptPDF(data TranscriptPDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Hippo", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Shared Trip Comparison", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	if data.Trip.Origin != "" {
		row("Origin", data.Trip.Origin)
	}
	cityA := orDefault(data.Trip.CityA, "City A")
	cityB := orDefault(data.Trip.CityB, "City B")
	row("Destinations", cityA+" vs "+cityB)
	if data.Trip.StartDate != "" || data.Trip.EndDate != "" {
		row("Dates", fmt.Sprintf("%s to %s",
			orDefault(data.Trip.StartDate, "flexible"),
			orDefault(data.Trip.EndDate, "flexible")))
	}
	if data.Trip.Theme != "" {
		row("Theme", data.Trip.Theme)
	}
	if data.Trip.Budget != "" {
		row("Budget", data.Trip.Budget)
	}
	row("Mode", string(data.Mode))
	if !data.CreatedAt.IsZero() {
		row("Shared", data.CreatedAt.UTC().Format("02 Jan 2006, 15:04 UTC"))
	}
	pdf.Ln(4)

	// ── Conversation ──────────────────────────────────────────
	sectionHeader("Conversation")
	for _, m := range data.Messages {
		speaker := "Traveler"
		if m.Role == models.RoleAssistant {
			speaker = "Hippo"
		} else if m.Role == models.RoleSystem {
			continue
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(13, 24, 37)
		pdf.CellFormat(170, 6, speaker, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, sanitizeForPDF(m.Content), "", "L", false)
		pdf.Ln(3)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Shared via Hippo · Prices were current when the conversation happened and are subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// sanitizeForPDF strips the light markdown the assistant emits so the
// transcript reads as plain prose in the PDF.
func sanitizeForPDF(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, "## ")
		line = strings.TrimPrefix(line, "# ")
		line = strings.ReplaceAll(line, "**", "")
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
