package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"hippo/models"
)

// Fixed fallback strings handed to the model when web search is unavailable.
// They double as instructions: the model is told to label its numbers as
// estimates instead of pretending they are live.
const (
	webSearchNotConfigured = "No web search API is currently configured. Use your general knowledge but clearly note that prices are approximate and not live."
	webSearchErrored       = "Web search API responded with an error. Fall back to general price ranges and clearly label estimates."
	webSearchFailed        = "Web search API failed. Fall back to general price ranges and clearly label estimates."
)

// WebSearchClient fetches loose price context from a configurable search
// endpoint. Strictly best-effort: every failure mode returns a usable
// fallback string, never an error.
type WebSearchClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewWebSearchClient(log *zap.Logger) *WebSearchClient {
	return &WebSearchClient{
		endpoint: os.Getenv("WEB_SEARCH_API_ENDPOINT"),
		apiKey:   os.Getenv("WEB_SEARCH_API_KEY"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

// Context returns a JSON context string for the trip, or a fallback message.
func (w *WebSearchClient) Context(ctx context.Context, trip models.TripInput) string {
	if w.apiKey == "" || w.endpoint == "" {
		return webSearchNotConfigured
	}

	u, err := url.Parse(w.endpoint)
	if err != nil {
		return webSearchFailed
	}
	q := u.Query()
	q.Set("origin", trip.Origin)
	q.Set("cityA", trip.CityA)
	q.Set("cityB", trip.CityB)
	if trip.StartDate != "" {
		q.Set("startDate", trip.StartDate)
	}
	if trip.EndDate != "" {
		q.Set("endDate", trip.EndDate)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return webSearchFailed
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.log.Warn("web search request failed", zap.Error(err))
		return webSearchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		w.log.Warn("web search request rejected", zap.Int("status", resp.StatusCode))
		return webSearchErrored
	}

	var payload interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return webSearchFailed
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return webSearchFailed
	}
	return string(data)
}
