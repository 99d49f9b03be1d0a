package models

// Mode selects how a chat turn is grounded before the completion call.
type Mode string

const (
	ModeWebAssisted Mode = "web-assisted"
	ModeLivePrices  Mode = "live-prices"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message is a single conversation turn as the UI stores it.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt int64       `json:"createdAt"`
	Mode      Mode        `json:"mode,omitempty"`
}

// TripInput is the structured trip form sent alongside the conversation.
// All fields are optional free text; dates use YYYY-MM-DD.
type TripInput struct {
	Origin    string `json:"origin"`
	CityA     string `json:"cityA"`
	CityB     string `json:"cityB"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Theme     string `json:"theme"`
	Budget    string `json:"budget"`
}

// ChatRequest is the body of POST /api/chat and POST /api/share.
type ChatRequest struct {
	Mode     Mode      `json:"mode"`
	Trip     TripInput `json:"trip"`
	Messages []Message `json:"messages"`
}
